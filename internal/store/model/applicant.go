package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Applicant struct {
	ID               uuid.UUID `gorm:"primaryKey;"`
	FirstName        string    `gorm:"not null"`
	LastName         string    `gorm:"not null"`
	Email            string    `gorm:"index:idx_applicants_email;not null"`
	Phone            *string
	LinkedinURL      *string `gorm:"column:linkedin_url"`
	ExperienceYears  *float64
	Education        *string
	CurrentCompany   *string
	CurrentRole      *string
	ExpectedCTC      *float64 `gorm:"column:expected_ctc"`
	NoticePeriodDays *int
	Skills           *string
	Location         *string
	ResumeLocation   *string
	Applications     []Application `gorm:"constraint:OnDelete:CASCADE;"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type ApplicantList []Applicant

func (a Applicant) String() string {
	val, _ := json.Marshal(a)
	return string(val)
}
