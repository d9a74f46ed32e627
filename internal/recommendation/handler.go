package recommendation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
	"github.com/saulo-duarte/gradetrack-lambda/internal/errs"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Generate(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, rec)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var courseID *uuid.UUID
	if v := r.URL.Query().Get("course_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			errs.Write(w, errs.NewValidation("course_id", "invalid course id"))
			return
		}
		courseID = &id
	}

	recs, err := h.service.List(r.Context(), courseID)
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, recs)
}
