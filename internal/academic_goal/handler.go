package academic_goal

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/saulo-duarte/gradetrack-lambda/internal/auth"
	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
	"github.com/saulo-duarte/gradetrack-lambda/internal/errs"
	util "github.com/saulo-duarte/gradetrack-lambda/internal/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateAcademicGoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	goal, err := h.service.Create(r.Context(), dto)
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, goal)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter ListFilter

	if v := q.Get("type"); v != "" {
		t := GoalType(v)
		filter.GoalType = &t
	}
	if v := q.Get("course_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			errs.Write(w, errs.NewValidation("course_id", "invalid course id"))
			return
		}
		filter.CourseID = &id
	}
	if v := q.Get("achieved"); v != "" {
		achieved, err := strconv.ParseBool(v)
		if err != nil {
			errs.Write(w, errs.NewValidation("achieved", "must be true or false"))
			return
		}
		filter.Achieved = &achieved
	}

	goals, err := h.service.List(r.Context(), filter)
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, goals)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	goal, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, goal)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateAcademicGoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	goal, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, goal)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		errs.Write(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		errs.Write(w, err)
		return
	}

	var courseID *uuid.UUID
	if v := r.URL.Query().Get("course_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			errs.Write(w, errs.NewValidation("course_id", "invalid course id"))
			return
		}
		courseID = &id
	}

	evaluations, err := h.service.EvaluateGoals(r.Context(), userID, courseID)
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, evaluations)
}

func (h *Handler) Revert(w http.ResponseWriter, r *http.Request) {
	goal, err := h.service.RevertAchievement(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, goal)
}

func (h *Handler) asOf(r *http.Request) (util.Date, error) {
	v := r.URL.Query().Get("as_of")
	if v == "" {
		return h.service.Today(), nil
	}
	d, err := util.ParseDate(v)
	if err != nil {
		return util.Date{}, errs.NewValidation("as_of", "must be a date formatted as %s", util.DateLayout)
	}
	return d, nil
}

func (h *Handler) Overdue(w http.ResponseWriter, r *http.Request) {
	asOf, err := h.asOf(r)
	if err != nil {
		errs.Write(w, err)
		return
	}

	goals, err := h.service.ListOverdue(r.Context(), asOf)
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, goals)
}

func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	asOf, err := h.asOf(r)
	if err != nil {
		errs.Write(w, err)
		return
	}

	days := config.App.UpcomingHorizonDays
	if v := r.URL.Query().Get("days"); v != "" {
		if days, err = strconv.Atoi(v); err != nil {
			errs.Write(w, errs.NewValidation("days", "must be an integer"))
			return
		}
	}

	goals, err := h.service.ListUpcoming(r.Context(), asOf, days)
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, goals)
}
