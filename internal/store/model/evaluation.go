package model

import (
	"time"

	"github.com/google/uuid"
)

// Evaluation lifecycle. Unavailable is terminal for degraded scoring:
// the application is on file but the score could not be computed.
const (
	EvaluationStatusPending     = "pending"
	EvaluationStatusProcessing  = "processing"
	EvaluationStatusCompleted   = "completed"
	EvaluationStatusUnavailable = "unavailable"
	EvaluationStatusFailed      = "failed"
)

// EvaluationResult carries the outcome of a completed scoring run.
type EvaluationResult struct {
	Score             float64
	HighPriorityRatio float64
	NormalRatio       float64
	Label             string
}

type Evaluation struct {
	ID                uuid.UUID `gorm:"primaryKey;"`
	ApplicationID     uuid.UUID `gorm:"uniqueIndex;not null"`
	Status            string    `gorm:"default:pending"`
	Score             *float64
	HighPriorityRatio *float64
	NormalRatio       *float64
	Label             *string
	StatusInfo        *string `gorm:"type:text"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type EvaluationList []Evaluation
