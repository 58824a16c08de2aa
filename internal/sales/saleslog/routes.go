package saleslog

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/log", h.List)
	r.Get("/log/revenue", h.Revenue)
	r.Get("/log/{id}", h.Show)
	r.Post("/log", h.Record)
	r.Delete("/log/{id}", h.Delete)
}
