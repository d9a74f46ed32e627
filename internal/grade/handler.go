package grade

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
	"github.com/saulo-duarte/gradetrack-lambda/internal/errs"
)

type Handler struct {
	service GradeService
}

func NewHandler(service GradeService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateGradeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	g, err := h.service.CreateGrade(r.Context(), dto)
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, g)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.service.GetGradeByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, g)
}

func (h *Handler) ListByAssessment(w http.ResponseWriter, r *http.Request) {
	grades, err := h.service.ListByAssessment(r.Context(), chi.URLParam(r, "assessmentId"))
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, grades)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateGradeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	g, err := h.service.UpdateGrade(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, g)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteGrade(r.Context(), chi.URLParam(r, "id")); err != nil {
		errs.Write(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
