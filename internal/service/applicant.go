package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/talentwire/intake-api/internal/store"
	"github.com/talentwire/intake-api/internal/store/model"
)

type ApplicantService struct {
	store store.Store
}

func NewApplicantService(s store.Store) *ApplicantService {
	return &ApplicantService{store: s}
}

func (s *ApplicantService) GetApplicant(ctx context.Context, id uuid.UUID) (*model.Applicant, error) {
	applicant, err := s.store.Applicant().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrApplicantNotFound(id)
		}
		return nil, err
	}
	return applicant, nil
}

func (s *ApplicantService) ListApplicants(ctx context.Context, filter *store.ApplicantQueryFilter) (model.ApplicantList, error) {
	return s.store.Applicant().List(ctx, filter)
}
