package category

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
	"github.com/saulo-duarte/gradetrack-lambda/internal/errs"
)

type Handler struct {
	service CategoryService
}

func NewHandler(service CategoryService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	cat, err := h.service.CreateCategory(r.Context(), dto)
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, cat)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	cat, _, err := h.service.GetCategoryByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, cat)
}

func (h *Handler) ListByCourse(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListByCourse(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, categories)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	cat, err := h.service.UpdateCategory(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, cat)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		errs.Write(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ValidateWeights(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.ValidateWeights(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, report)
}
