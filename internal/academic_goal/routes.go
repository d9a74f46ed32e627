package academic_goal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Post("/evaluate", h.Evaluate)
	r.Get("/overdue", h.Overdue)
	r.Get("/upcoming", h.Upcoming)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/revert", h.Revert)

	return r
}
