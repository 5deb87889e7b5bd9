package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

type Job struct {
	ID               uuid.UUID `gorm:"primaryKey;"`
	Title            string    `gorm:"not null"`
	Description      string    `gorm:"type:text;not null"`
	Department       *string
	Location         *string
	EmploymentType   *string
	KeySkills        string `gorm:"type:text"`
	AdditionalSkills string `gorm:"type:text"`
	Openings         int    `gorm:"default:1"`
	Status           string `gorm:"default:open"`
	PostedAt         time.Time
	ClosingAt        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type JobList []Job

// Skill sets are persisted as comma separated text, the same layout the
// job postings carry them in.
func (j Job) KeySkillList() []string {
	return splitSkills(j.KeySkills)
}

func (j Job) AdditionalSkillList() []string {
	return splitSkills(j.AdditionalSkills)
}

func splitSkills(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
