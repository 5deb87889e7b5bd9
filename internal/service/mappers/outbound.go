package mappers

import (
	"time"

	"github.com/google/uuid"
	"github.com/talentwire/intake-api/internal/store/model"
)

type ApplicantReply struct {
	ID               uuid.UUID `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	Phone            *string   `json:"phone,omitempty"`
	LinkedinURL      *string   `json:"linkedin_url,omitempty"`
	ExperienceYears  *float64  `json:"experience_years,omitempty"`
	Education        *string   `json:"education,omitempty"`
	CurrentCompany   *string   `json:"current_company,omitempty"`
	CurrentRole      *string   `json:"current_role,omitempty"`
	ExpectedCTC      *float64  `json:"expected_ctc,omitempty"`
	NoticePeriodDays *int      `json:"notice_period_days,omitempty"`
	Skills           *string   `json:"skills,omitempty"`
	Location         *string   `json:"location,omitempty"`
	HasResume        bool      `json:"has_resume"`
	CreatedAt        time.Time `json:"created_at"`
}

func ApplicantToReply(a model.Applicant) ApplicantReply {
	return ApplicantReply{
		ID:               a.ID,
		FirstName:        a.FirstName,
		LastName:         a.LastName,
		Email:            a.Email,
		Phone:            a.Phone,
		LinkedinURL:      a.LinkedinURL,
		ExperienceYears:  a.ExperienceYears,
		Education:        a.Education,
		CurrentCompany:   a.CurrentCompany,
		CurrentRole:      a.CurrentRole,
		ExpectedCTC:      a.ExpectedCTC,
		NoticePeriodDays: a.NoticePeriodDays,
		Skills:           a.Skills,
		Location:         a.Location,
		HasResume:        a.ResumeLocation != nil,
		CreatedAt:        a.CreatedAt,
	}
}

func ApplicantListToReply(applicants model.ApplicantList) []ApplicantReply {
	replies := make([]ApplicantReply, len(applicants))
	for i, a := range applicants {
		replies[i] = ApplicantToReply(a)
	}
	return replies
}

type EvaluationReply struct {
	ID                uuid.UUID `json:"id"`
	Status            string    `json:"status"`
	Score             *float64  `json:"score,omitempty"`
	HighPriorityRatio *float64  `json:"high_priority_ratio,omitempty"`
	NormalRatio       *float64  `json:"normal_ratio,omitempty"`
	Label             *string   `json:"label,omitempty"`
	StatusInfo        *string   `json:"status_info,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func EvaluationToReply(e model.Evaluation) EvaluationReply {
	return EvaluationReply{
		ID:                e.ID,
		Status:            e.Status,
		Score:             e.Score,
		HighPriorityRatio: e.HighPriorityRatio,
		NormalRatio:       e.NormalRatio,
		Label:             e.Label,
		StatusInfo:        e.StatusInfo,
		UpdatedAt:         e.UpdatedAt,
	}
}

type ApplicationReply struct {
	ID              uuid.UUID        `json:"id"`
	ApplicantID     uuid.UUID        `json:"applicant_id"`
	JobID           uuid.UUID        `json:"job_id"`
	Status          string           `json:"status"`
	Source          string           `json:"source"`
	AssignedHR      *string          `json:"assigned_hr,omitempty"`
	AssignedManager *string          `json:"assigned_manager,omitempty"`
	Comments        *string          `json:"comments,omitempty"`
	Evaluation      *EvaluationReply `json:"evaluation,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

func ApplicationToReply(a model.Application) ApplicationReply {
	reply := ApplicationReply{
		ID:              a.ID,
		ApplicantID:     a.ApplicantID,
		JobID:           a.JobID,
		Status:          a.Status,
		Source:          a.Source,
		AssignedHR:      a.AssignedHR,
		AssignedManager: a.AssignedManager,
		Comments:        a.Comments,
		CreatedAt:       a.CreatedAt,
	}
	if a.Evaluation != nil {
		evaluation := EvaluationToReply(*a.Evaluation)
		reply.Evaluation = &evaluation
	}
	return reply
}

func ApplicationListToReply(applications model.ApplicationList) []ApplicationReply {
	replies := make([]ApplicationReply, len(applications))
	for i, a := range applications {
		replies[i] = ApplicationToReply(a)
	}
	return replies
}

type JobReply struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Department       *string    `json:"department,omitempty"`
	Location         *string    `json:"location,omitempty"`
	EmploymentType   *string    `json:"employment_type,omitempty"`
	KeySkills        []string   `json:"key_skills"`
	AdditionalSkills []string   `json:"additional_skills"`
	Openings         int        `json:"openings"`
	Status           string     `json:"status"`
	PostedAt         time.Time  `json:"posted_at"`
	ClosingAt        *time.Time `json:"closing_at,omitempty"`
}

func JobToReply(j model.Job) JobReply {
	return JobReply{
		ID:               j.ID,
		Title:            j.Title,
		Description:      j.Description,
		Department:       j.Department,
		Location:         j.Location,
		EmploymentType:   j.EmploymentType,
		KeySkills:        j.KeySkillList(),
		AdditionalSkills: j.AdditionalSkillList(),
		Openings:         j.Openings,
		Status:           j.Status,
		PostedAt:         j.PostedAt,
		ClosingAt:        j.ClosingAt,
	}
}

func JobListToReply(jobs model.JobList) []JobReply {
	replies := make([]JobReply, len(jobs))
	for i, j := range jobs {
		replies[i] = JobToReply(j)
	}
	return replies
}
