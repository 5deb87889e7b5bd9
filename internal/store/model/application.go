package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const ApplicationStatusPending = "pending"

type Application struct {
	ID              uuid.UUID `gorm:"primaryKey;"`
	ApplicantID     uuid.UUID `gorm:"uniqueIndex:applications_applicant_job;not null"`
	JobID           uuid.UUID `gorm:"uniqueIndex:applications_applicant_job;not null"`
	Status          string    `gorm:"default:pending"`
	Source          string
	AssignedHR      *string `gorm:"column:assigned_hr"`
	AssignedManager *string
	Comments        *string
	Evaluation      *Evaluation `gorm:"constraint:OnDelete:CASCADE;"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ApplicationList []Application

func (a Application) String() string {
	val, _ := json.Marshal(a)
	return string(val)
}
