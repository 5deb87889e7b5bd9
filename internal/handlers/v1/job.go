package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/talentwire/intake-api/internal/service/mappers"
)

type jobCreateRequest struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Department       *string    `json:"department"`
	Location         *string    `json:"location"`
	EmploymentType   *string    `json:"employment_type"`
	KeySkills        []string   `json:"key_skills"`
	AdditionalSkills []string   `json:"additional_skills"`
	Openings         int        `json:"openings"`
	Status           string     `json:"status"`
	ClosingAt        *time.Time `json:"closing_at"`
}

// CreateJob handles (POST /jobs)
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req jobCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorReply{Error: "invalid json body"})
		return
	}

	job, err := h.jobs.CreateJob(r.Context(), mappers.JobCreateForm{
		Title:            req.Title,
		Description:      req.Description,
		Department:       req.Department,
		Location:         req.Location,
		EmploymentType:   req.EmploymentType,
		KeySkills:        req.KeySkills,
		AdditionalSkills: req.AdditionalSkills,
		Openings:         req.Openings,
		Status:           req.Status,
		ClosingAt:        req.ClosingAt,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, mappers.JobToReply(job))
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorReply{Error: "invalid job id"})
		return
	}

	job, err := h.jobs.GetJob(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, mappers.JobToReply(*job))
}

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.ListJobs(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, mappers.JobListToReply(jobs))
}
