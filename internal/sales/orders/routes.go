package orders

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/orders", h.List)
	r.Get("/orders/stats", h.Stats)
	r.Get("/orders/{id}", h.Show)
	r.Post("/orders", h.Create)
	r.Post("/orders/from-intent", h.CreateFromIntent)
	r.Put("/orders/{id}", h.Update)
	r.Post("/orders/{id}/status", h.SetStatus)
	r.Post("/orders/{id}/items", h.AddItem)
	r.Put("/orders/{id}/items/{itemID}", h.UpdateItem)
	r.Delete("/orders/{id}/items/{itemID}", h.RemoveItem)
	r.Delete("/orders/{id}", h.Delete)
}
