package assessment

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
	"github.com/saulo-duarte/gradetrack-lambda/internal/errs"
)

type Handler struct {
	service AssessmentService
}

func NewHandler(service AssessmentService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateAssessmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	a, err := h.service.CreateAssessment(r.Context(), dto)
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, a)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	a, _, err := h.service.GetAssessmentByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, a)
}

func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListByCategory(r.Context(), chi.URLParam(r, "categoryId"))
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, items)
}

func (h *Handler) ListByCourse(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListByCourse(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, items)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateAssessmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	a, err := h.service.UpdateAssessment(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, a)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.CancelAssessment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, a)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAssessment(r.Context(), chi.URLParam(r, "id")); err != nil {
		errs.Write(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
