package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/talentwire/intake-api/internal/service/mappers"
	"github.com/talentwire/intake-api/internal/store"
)

// maxResumeSize bounds the multipart form held in memory.
const maxResumeSize = 16 << 20

// SubmitApplication handles (POST /applications). The body is a multipart
// form: the applicant profile fields, the target job_id and the resume file
// under the "resume" part.
func (h *Handler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxResumeSize); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorReply{Error: fmt.Sprintf("invalid multipart form: %v", err)})
		return
	}

	form, err := intakeFormFromRequest(r)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorReply{Error: err.Error()})
		return
	}

	application, err := h.intake.SubmitApplication(r.Context(), form)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, mappers.ApplicationToReply(*application))
}

func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorReply{Error: "invalid application id"})
		return
	}

	application, err := h.intake.GetApplication(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, mappers.ApplicationToReply(*application))
}

func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	filter := store.NewApplicationQueryFilter()

	if jobID := r.URL.Query().Get("job_id"); jobID != "" {
		id, err := uuid.Parse(jobID)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, errorReply{Error: "invalid job_id filter"})
			return
		}
		filter = filter.ByJobID(id)
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter = filter.ByStatus(status)
	}

	applications, err := h.intake.ListApplications(r.Context(), filter)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, mappers.ApplicationListToReply(applications))
}

func (h *Handler) GetEvaluation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorReply{Error: "invalid application id"})
		return
	}

	evaluation, err := h.evaluations.GetEvaluation(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, mappers.EvaluationToReply(*evaluation))
}

func intakeFormFromRequest(r *http.Request) (mappers.IntakeForm, error) {
	form := mappers.IntakeForm{
		Applicant: mappers.ApplicantCreateForm{
			FirstName:      r.FormValue("first_name"),
			LastName:       r.FormValue("last_name"),
			Email:          r.FormValue("email"),
			Phone:          optString(r, "phone"),
			LinkedinURL:    optString(r, "linkedin_url"),
			Education:      optString(r, "education"),
			CurrentCompany: optString(r, "current_company"),
			CurrentRole:    optString(r, "current_role"),
			Skills:         optString(r, "skills"),
			Location:       optString(r, "location"),
		},
		Source:          r.FormValue("source"),
		AssignedHR:      optString(r, "assigned_hr"),
		AssignedManager: optString(r, "assigned_manager"),
		Comments:        optString(r, "comments"),
	}

	if v := r.FormValue("job_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return mappers.IntakeForm{}, fmt.Errorf("invalid job_id: %w", err)
		}
		form.JobID = id
	}

	var err error
	if form.Applicant.ExperienceYears, err = optFloat(r, "experience_years"); err != nil {
		return mappers.IntakeForm{}, err
	}
	if form.Applicant.ExpectedCTC, err = optFloat(r, "expected_ctc"); err != nil {
		return mappers.IntakeForm{}, err
	}
	if form.Applicant.NoticePeriodDays, err = optInt(r, "notice_period_days"); err != nil {
		return mappers.IntakeForm{}, err
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		return mappers.IntakeForm{}, fmt.Errorf("resume file is required")
	}
	form.Resume = file
	form.ResumeFilename = header.Filename

	return form, nil
}

func optString(r *http.Request, name string) *string {
	if v := strings.TrimSpace(r.FormValue(name)); v != "" {
		return &v
	}
	return nil
}

func optFloat(r *http.Request, name string) (*float64, error) {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return &f, nil
}

func optInt(r *http.Request, name string) (*int, error) {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return &n, nil
}
