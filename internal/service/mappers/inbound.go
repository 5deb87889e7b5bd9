package mappers

import (
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/talentwire/intake-api/internal/store/model"
	"github.com/thoas/go-funk"
)

// ApplicantCreateForm carries the candidate profile submitted at intake.
type ApplicantCreateForm struct {
	FirstName        string   `validate:"required"`
	LastName         string   `validate:"required"`
	Email            string   `validate:"required,email"`
	Phone            *string  `validate:"omitempty,phone"`
	LinkedinURL      *string  `validate:"omitempty,url"`
	ExperienceYears  *float64 `validate:"omitempty,gte=0,lte=60"`
	Education        *string
	CurrentCompany   *string
	CurrentRole      *string
	ExpectedCTC      *float64 `validate:"omitempty,gte=0"`
	NoticePeriodDays *int     `validate:"omitempty,gte=0"`
	Skills           *string
	Location         *string
}

func (f ApplicantCreateForm) ToApplicant(id uuid.UUID) model.Applicant {
	return model.Applicant{
		ID:               id,
		FirstName:        strings.TrimSpace(f.FirstName),
		LastName:         strings.TrimSpace(f.LastName),
		Email:            strings.ToLower(strings.TrimSpace(f.Email)),
		Phone:            f.Phone,
		LinkedinURL:      f.LinkedinURL,
		ExperienceYears:  f.ExperienceYears,
		Education:        f.Education,
		CurrentCompany:   f.CurrentCompany,
		CurrentRole:      f.CurrentRole,
		ExpectedCTC:      f.ExpectedCTC,
		NoticePeriodDays: f.NoticePeriodDays,
		Skills:           f.Skills,
		Location:         f.Location,
	}
}

// IntakeForm is the full submission: profile, target job, workflow
// metadata and resume stream.
type IntakeForm struct {
	Applicant       ApplicantCreateForm
	JobID           uuid.UUID `validate:"jobId"`
	Source          string
	AssignedHR      *string
	AssignedManager *string
	Comments        *string
	ResumeFilename  string    `validate:"resume_filename"`
	Resume          io.Reader `validate:"required"`
}

func (f IntakeForm) ToApplication(id, applicantID uuid.UUID) model.Application {
	source := strings.TrimSpace(f.Source)
	if source == "" {
		source = "direct"
	}
	return model.Application{
		ID:              id,
		ApplicantID:     applicantID,
		JobID:           f.JobID,
		Status:          model.ApplicationStatusPending,
		Source:          source,
		AssignedHR:      f.AssignedHR,
		AssignedManager: f.AssignedManager,
		Comments:        f.Comments,
	}
}

type JobCreateForm struct {
	Title            string `validate:"required,not_blank"`
	Description      string `validate:"required,not_blank"`
	Department       *string
	Location         *string
	EmploymentType   *string
	KeySkills        []string `validate:"dive,not_blank"`
	AdditionalSkills []string `validate:"dive,not_blank"`
	Openings         int      `validate:"omitempty,gte=1"`
	Status           string   `validate:"job_status"`
	ClosingAt        *time.Time
}

func (f JobCreateForm) ToJob(id uuid.UUID) model.Job {
	status := f.Status
	if status == "" {
		status = model.JobStatusOpen
	}
	openings := f.Openings
	if openings == 0 {
		openings = 1
	}
	return model.Job{
		ID:               id,
		Title:            strings.TrimSpace(f.Title),
		Description:      f.Description,
		Department:       f.Department,
		Location:         f.Location,
		EmploymentType:   f.EmploymentType,
		KeySkills:        joinSkills(f.KeySkills),
		AdditionalSkills: joinSkills(f.AdditionalSkills),
		Openings:         openings,
		Status:           status,
		PostedAt:         time.Now().UTC(),
		ClosingAt:        f.ClosingAt,
	}
}

func joinSkills(skills []string) string {
	trimmed := make([]string, 0, len(skills))
	for _, s := range skills {
		if t := strings.TrimSpace(s); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return strings.Join(funk.UniqString(trimmed), ",")
}
