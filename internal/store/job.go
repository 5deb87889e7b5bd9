package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/talentwire/intake-api/internal/store/model"
	"gorm.io/gorm"
)

type Job interface {
	Create(ctx context.Context, job model.Job) (*model.Job, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Job, error)
	List(ctx context.Context, filter *JobQueryFilter) (model.JobList, error)
}

type JobStore struct {
	db *gorm.DB
}

// Make sure we conform to Job interface
var _ Job = (*JobStore)(nil)

func NewJobStore(db *gorm.DB) Job {
	return &JobStore{db: db}
}

func (j *JobStore) Create(ctx context.Context, job model.Job) (*model.Job, error) {
	if result := j.getDB(ctx).Create(&job); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	return &job, nil
}

func (j *JobStore) Get(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	var job model.Job
	result := j.getDB(ctx).First(&job, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &job, nil
}

func (j *JobStore) List(ctx context.Context, filter *JobQueryFilter) (model.JobList, error) {
	var jobs model.JobList
	tx := j.getDB(ctx).Model(&jobs).Order("posted_at DESC")

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if result := tx.Find(&jobs); result.Error != nil {
		return nil, result.Error
	}
	return jobs, nil
}

func (j *JobStore) getDB(ctx context.Context) *gorm.DB {
	if tx := FromContext(ctx); tx != nil {
		return tx
	}
	return j.db
}

type JobQueryFilter struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

func NewJobQueryFilter() *JobQueryFilter {
	return &JobQueryFilter{}
}

func (f *JobQueryFilter) ByStatus(status string) *JobQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ?", status)
	})
	return f
}
