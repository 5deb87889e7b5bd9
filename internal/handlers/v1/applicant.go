package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/talentwire/intake-api/internal/service/mappers"
	"github.com/talentwire/intake-api/internal/store"
)

func (h *Handler) GetApplicant(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorReply{Error: "invalid applicant id"})
		return
	}

	applicant, err := h.applicants.GetApplicant(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, mappers.ApplicantToReply(*applicant))
}

func (h *Handler) ListApplicants(w http.ResponseWriter, r *http.Request) {
	filter := store.NewApplicantQueryFilter()

	if email := r.URL.Query().Get("email"); email != "" {
		filter = filter.ByEmail(email)
	}
	if location := r.URL.Query().Get("location"); location != "" {
		filter = filter.ByLocation(location)
	}

	applicants, err := h.applicants.ListApplicants(r.Context(), filter)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, mappers.ApplicantListToReply(applicants))
}
