// Package v1 exposes the intake pipeline over HTTP.
package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/talentwire/intake-api/internal/service"
)

type Handler struct {
	intake      *service.IntakeService
	evaluations *service.EvaluationService
	jobs        *service.JobService
	applicants  *service.ApplicantService
}

func NewHandler(intake *service.IntakeService, evaluations *service.EvaluationService, jobs *service.JobService, applicants *service.ApplicantService) *Handler {
	return &Handler{
		intake:      intake,
		evaluations: evaluations,
		jobs:        jobs,
		applicants:  applicants,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/applications", func(r chi.Router) {
		r.Post("/", h.SubmitApplication)
		r.Get("/", h.ListApplications)
		r.Get("/{id}", h.GetApplication)
		r.Get("/{id}/evaluation", h.GetEvaluation)
	})
	r.Route("/jobs", func(r chi.Router) {
		r.Post("/", h.CreateJob)
		r.Get("/", h.ListJobs)
		r.Get("/{id}", h.GetJob)
	})
	r.Route("/applicants", func(r chi.Router) {
		r.Get("/", h.ListApplicants)
		r.Get("/{id}", h.GetApplicant)
	})
}

type errorReply struct {
	Error string `json:"error"`
}

// renderError maps service errors to http status codes. Anything not
// recognized is a 500.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	switch err.(type) {
	case *service.ErrValidation:
		status = http.StatusBadRequest
	case *service.ErrResourceNotFound:
		status = http.StatusNotFound
	case *service.ErrDuplicateApplication:
		status = http.StatusConflict
	case *service.ErrJobClosed:
		status = http.StatusUnprocessableEntity
	case *service.ErrArtifactStorage:
		status = http.StatusInternalServerError
	}

	render.Status(r, status)
	render.JSON(w, r, errorReply{Error: err.Error()})
}
