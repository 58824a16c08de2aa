package leads

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/bakehouse-crm/bakehouse-crm/internal/platform/httpx"
	"github.com/bakehouse-crm/bakehouse-crm/jobs"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
	jobs     *jobs.Client
	notifyTo string
}

// NewHandler wires the pipeline endpoints. jobsClient may be nil; intake then
// skips the owner notification.
func NewHandler(logger *slog.Logger, service *Service, jobsClient *jobs.Client, notifyTo string) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
		jobs:     jobsClient,
		notifyTo: notifyTo,
	}
}

// Intake serves the public inquiry form. It is mounted outside the session
// gate and rate-limited separately.
func (h *Handler) Intake(w http.ResponseWriter, r *http.Request) {
	var req IntakeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	lead, err := h.service.Intake(r.Context(), req)
	if err != nil {
		h.logger.Error("inquiry intake failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	if h.jobs != nil && h.notifyTo != "" {
		payload := jobs.InquiryNotifyPayload{
			To:          h.notifyTo,
			LeadID:      lead.ID,
			Name:        lead.Name,
			Email:       lead.Email,
			ProductType: lead.ProductType,
			Message:     lead.Message,
		}
		if _, err := h.jobs.EnqueueInquiryNotify(r.Context(), payload); err != nil {
			h.logger.Warn("enqueue inquiry notification", slog.Any("error", err), slog.String("lead_id", lead.ID))
		}
	}

	httpx.JSON(w, http.StatusCreated, lead)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListLeadsRequest{
		Search:  r.URL.Query().Get("search"),
		Status:  r.URL.Query().Get("status"),
		Page:    queryInt(r, "page"),
		PerPage: queryInt(r, "per_page"),
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	list, page, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list leads failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"leads":      list,
		"pagination": page,
	})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	lead, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, lead)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateLeadRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	lead, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, lead)
}

func (h *Handler) Move(w http.ResponseWriter, r *http.Request) {
	var req MoveLeadRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	lead, err := h.service.Move(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, lead)
}

func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	lead, err := h.service.Convert(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("convert lead failed", slog.Any("error", err), slog.String("id", chi.URLParam(r, "id")))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, lead)
}

func (h *Handler) StageOrder(w http.ResponseWriter, r *http.Request) {
	var req HandoffRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	intent, err := h.service.StageOrder(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, intent)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, key string) int {
	v, _ := strconv.Atoi(r.URL.Query().Get(key))
	return v
}
