package insights

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/insights", h.Dashboard)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("insights snapshot failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, snap)
}
