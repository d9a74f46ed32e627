package aggregate

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
	"github.com/saulo-duarte/gradetrack-lambda/internal/errs"
)

type Handler struct {
	aggregator Aggregator
}

func NewHandler(aggregator Aggregator) *Handler {
	return &Handler{aggregator: aggregator}
}

func (h *Handler) CourseAggregate(w http.ResponseWriter, r *http.Request) {
	agg, err := h.aggregator.ComputeCourseAggregate(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, agg)
}

func (h *Handler) CourseDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.aggregator.Dashboard(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, d)
}

func (h *Handler) SemesterGPA(w http.ResponseWriter, r *http.Request) {
	report, err := h.aggregator.SemesterGPA(r.Context(), chi.URLParam(r, "semester"))
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, report)
}

func (h *Handler) CumulativeGPA(w http.ResponseWriter, r *http.Request) {
	report, err := h.aggregator.CumulativeGPA(r.Context())
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, report)
}
