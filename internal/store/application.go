package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/talentwire/intake-api/internal/store/model"
	"gorm.io/gorm"
)

type Application interface {
	Create(ctx context.Context, application model.Application) (*model.Application, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Application, error)
	List(ctx context.Context, filter *ApplicationQueryFilter) (model.ApplicationList, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ApplicationStore struct {
	db *gorm.DB
}

// Make sure we conform to Application interface
var _ Application = (*ApplicationStore)(nil)

func NewApplicationStore(db *gorm.DB) Application {
	return &ApplicationStore{db: db}
}

func (a *ApplicationStore) Create(ctx context.Context, application model.Application) (*model.Application, error) {
	if result := a.getDB(ctx).Create(&application); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	return &application, nil
}

func (a *ApplicationStore) Get(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	var application model.Application
	result := a.getDB(ctx).Preload("Evaluation").First(&application, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &application, nil
}

func (a *ApplicationStore) List(ctx context.Context, filter *ApplicationQueryFilter) (model.ApplicationList, error) {
	var applications model.ApplicationList
	tx := a.getDB(ctx).Model(&applications).Preload("Evaluation").Order("created_at")

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if result := tx.Find(&applications); result.Error != nil {
		return nil, result.Error
	}
	return applications, nil
}

func (a *ApplicationStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := a.getDB(ctx).Model(&model.Application{ID: id}).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (a *ApplicationStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := a.getDB(ctx).Unscoped().Delete(&model.Application{}, "id = ?", id)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return nil
}

func (a *ApplicationStore) getDB(ctx context.Context) *gorm.DB {
	if tx := FromContext(ctx); tx != nil {
		return tx
	}
	return a.db
}

type ApplicationQueryFilter struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

func NewApplicationQueryFilter() *ApplicationQueryFilter {
	return &ApplicationQueryFilter{}
}

func (f *ApplicationQueryFilter) ByApplicantID(id uuid.UUID) *ApplicationQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("applicant_id = ?", id)
	})
	return f
}

func (f *ApplicationQueryFilter) ByJobID(id uuid.UUID) *ApplicationQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("job_id = ?", id)
	})
	return f
}

func (f *ApplicationQueryFilter) ByStatus(status string) *ApplicationQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ?", status)
	})
	return f
}
