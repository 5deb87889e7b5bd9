package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/talentwire/intake-api/internal/handlers/validator"
	"github.com/talentwire/intake-api/internal/service/mappers"
	"github.com/talentwire/intake-api/internal/store"
	"github.com/talentwire/intake-api/internal/store/model"
)

type JobService struct {
	store     store.Store
	validator *validator.Validator
}

func NewJobService(s store.Store) *JobService {
	v := validator.NewValidator()
	v.Register(validator.NewJobValidationRules()...)

	return &JobService{store: s, validator: v}
}

func (s *JobService) CreateJob(ctx context.Context, form mappers.JobCreateForm) (model.Job, error) {
	if err := s.validator.Struct(form); err != nil {
		return model.Job{}, NewErrValidation(err)
	}

	ctx, err := s.store.NewTransactionContext(ctx)
	if err != nil {
		return model.Job{}, err
	}

	job, err := s.store.Job().Create(ctx, form.ToJob(uuid.New()))
	if err != nil {
		_, _ = store.Rollback(ctx)
		return model.Job{}, err
	}

	if _, err := store.Commit(ctx); err != nil {
		return model.Job{}, err
	}

	return *job, nil
}

func (s *JobService) GetJob(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	job, err := s.store.Job().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(id)
		}
		return nil, err
	}
	return job, nil
}

func (s *JobService) ListJobs(ctx context.Context, status string) (model.JobList, error) {
	filter := store.NewJobQueryFilter()
	if status != "" {
		filter = filter.ByStatus(status)
	}
	return s.store.Job().List(ctx, filter)
}

func (s *JobService) ListOpenJobs(ctx context.Context) (model.JobList, error) {
	return s.ListJobs(ctx, model.JobStatusOpen)
}
