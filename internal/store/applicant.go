package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/talentwire/intake-api/internal/store/model"
	"gorm.io/gorm"
)

type Applicant interface {
	Create(ctx context.Context, applicant model.Applicant) (*model.Applicant, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Applicant, error)
	List(ctx context.Context, filter *ApplicantQueryFilter) (model.ApplicantList, error)
	UpdateResumeLocation(ctx context.Context, id uuid.UUID, location string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ApplicantStore struct {
	db *gorm.DB
}

// Make sure we conform to Applicant interface
var _ Applicant = (*ApplicantStore)(nil)

func NewApplicantStore(db *gorm.DB) Applicant {
	return &ApplicantStore{db: db}
}

func (a *ApplicantStore) Create(ctx context.Context, applicant model.Applicant) (*model.Applicant, error) {
	if result := a.getDB(ctx).Create(&applicant); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	return &applicant, nil
}

func (a *ApplicantStore) Get(ctx context.Context, id uuid.UUID) (*model.Applicant, error) {
	var applicant model.Applicant
	result := a.getDB(ctx).First(&applicant, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &applicant, nil
}

func (a *ApplicantStore) List(ctx context.Context, filter *ApplicantQueryFilter) (model.ApplicantList, error) {
	var applicants model.ApplicantList
	tx := a.getDB(ctx).Model(&applicants).Order("created_at")

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if result := tx.Find(&applicants); result.Error != nil {
		return nil, result.Error
	}
	return applicants, nil
}

func (a *ApplicantStore) UpdateResumeLocation(ctx context.Context, id uuid.UUID, location string) error {
	result := a.getDB(ctx).Model(&model.Applicant{ID: id}).Update("resume_location", location)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (a *ApplicantStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := a.getDB(ctx).Unscoped().Delete(&model.Applicant{}, "id = ?", id)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return nil
}

func (a *ApplicantStore) getDB(ctx context.Context) *gorm.DB {
	if tx := FromContext(ctx); tx != nil {
		return tx
	}
	return a.db
}

type ApplicantQueryFilter struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

func NewApplicantQueryFilter() *ApplicantQueryFilter {
	return &ApplicantQueryFilter{}
}

func (f *ApplicantQueryFilter) ByEmail(email string) *ApplicantQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("email = ?", email)
	})
	return f
}

func (f *ApplicantQueryFilter) ByLocation(location string) *ApplicantQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("location = ?", location)
	})
	return f
}
