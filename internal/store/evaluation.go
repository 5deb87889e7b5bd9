package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/talentwire/intake-api/internal/store/model"
	"gorm.io/gorm"
)

type Evaluation interface {
	Create(ctx context.Context, evaluation model.Evaluation) (*model.Evaluation, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Evaluation, error)
	GetByApplication(ctx context.Context, applicationID uuid.UUID) (*model.Evaluation, error)
	ListByStatus(ctx context.Context, statuses ...string) (model.EvaluationList, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string, statusInfo *string) error
	Complete(ctx context.Context, id uuid.UUID, result model.EvaluationResult) error
}

type EvaluationStore struct {
	db *gorm.DB
}

// Make sure we conform to Evaluation interface
var _ Evaluation = (*EvaluationStore)(nil)

func NewEvaluationStore(db *gorm.DB) Evaluation {
	return &EvaluationStore{db: db}
}

func (e *EvaluationStore) Create(ctx context.Context, evaluation model.Evaluation) (*model.Evaluation, error) {
	if result := e.getDB(ctx).Create(&evaluation); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	return &evaluation, nil
}

func (e *EvaluationStore) Get(ctx context.Context, id uuid.UUID) (*model.Evaluation, error) {
	var evaluation model.Evaluation
	result := e.getDB(ctx).First(&evaluation, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &evaluation, nil
}

func (e *EvaluationStore) GetByApplication(ctx context.Context, applicationID uuid.UUID) (*model.Evaluation, error) {
	var evaluation model.Evaluation
	result := e.getDB(ctx).First(&evaluation, "application_id = ?", applicationID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &evaluation, nil
}

func (e *EvaluationStore) ListByStatus(ctx context.Context, statuses ...string) (model.EvaluationList, error) {
	var evaluations model.EvaluationList
	result := e.getDB(ctx).Where("status IN ?", statuses).Order("created_at").Find(&evaluations)
	if result.Error != nil {
		return nil, result.Error
	}
	return evaluations, nil
}

func (e *EvaluationStore) SetStatus(ctx context.Context, id uuid.UUID, status string, statusInfo *string) error {
	updates := map[string]any{"status": status, "status_info": statusInfo}
	result := e.getDB(ctx).Model(&model.Evaluation{ID: id}).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (e *EvaluationStore) Complete(ctx context.Context, id uuid.UUID, evalResult model.EvaluationResult) error {
	updates := map[string]any{
		"status":              model.EvaluationStatusCompleted,
		"status_info":         nil,
		"score":               evalResult.Score,
		"high_priority_ratio": evalResult.HighPriorityRatio,
		"normal_ratio":        evalResult.NormalRatio,
		"label":               evalResult.Label,
	}
	result := e.getDB(ctx).Model(&model.Evaluation{ID: id}).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (e *EvaluationStore) getDB(ctx context.Context) *gorm.DB {
	if tx := FromContext(ctx); tx != nil {
		return tx
	}
	return e.db
}
