package leads

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes attaches the authenticated pipeline routes. The public intake
// endpoint is mounted separately by the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/leads", h.List)
	r.Get("/leads/{id}", h.Show)
	r.Put("/leads/{id}", h.Update)
	r.Post("/leads/{id}/move", h.Move)
	r.Post("/leads/{id}/convert", h.Convert)
	r.Post("/leads/{id}/handoff", h.StageOrder)
	r.Delete("/leads/{id}", h.Delete)
}
