package aggregate

import "github.com/go-chi/chi/v5"

// GPARoutes is mounted at /gpa; the per-course endpoints hang off /courses in the router.
func GPARoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/cumulative", h.CumulativeGPA)
	r.Get("/semesters/{semester}", h.SemesterGPA)

	return r
}
