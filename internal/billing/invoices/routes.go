package invoices

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/invoices", h.List)
	r.Get("/invoices/{id}", h.Show)
	r.Get("/invoices/{id}/pdf", h.PDF)
	r.Post("/invoices", h.Create)
	r.Post("/invoices/{id}/status", h.SetStatus)
	r.Delete("/invoices/{id}", h.Delete)
}
