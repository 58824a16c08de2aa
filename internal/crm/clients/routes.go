package clients

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/clients", h.List)
	r.Get("/clients/top", h.Top)
	r.Get("/clients/{id}", h.Show)
	r.Post("/clients", h.Create)
	r.Put("/clients/{id}", h.Update)
	r.Delete("/clients/{id}", h.Delete)
}
