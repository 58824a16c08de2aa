package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/bakehouse-crm/bakehouse-crm/internal/auth"
	"github.com/bakehouse-crm/bakehouse-crm/internal/billing/invoices"
	"github.com/bakehouse-crm/bakehouse-crm/internal/catalog/products"
	"github.com/bakehouse-crm/bakehouse-crm/internal/crm/clients"
	"github.com/bakehouse-crm/bakehouse-crm/internal/crm/insights"
	"github.com/bakehouse-crm/bakehouse-crm/internal/crm/leads"
	"github.com/bakehouse-crm/bakehouse-crm/internal/observability"
	"github.com/bakehouse-crm/bakehouse-crm/internal/sales/orders"
	"github.com/bakehouse-crm/bakehouse-crm/internal/sales/saleslog"
	"github.com/bakehouse-crm/bakehouse-crm/internal/shared"
	"github.com/bakehouse-crm/bakehouse-crm/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager

	AuthHandler     *auth.Handler
	LeadsHandler    *leads.Handler
	ClientsHandler  *clients.Handler
	InsightsHandler *insights.Handler
	OrdersHandler   *orders.Handler
	SalesLogHandler *saleslog.Handler
	InvoicesHandler *invoices.Handler
	ProductsHandler *products.Handler
	JobsHandler     *jobs.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router with Bakehouse defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/auth", params.AuthHandler.MountRoutes)

	// Public inquiry intake gets its own, stricter rate limit.
	r.Group(func(r chi.Router) {
		r.Use(httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		r.Post("/inquiries", params.LeadsHandler.Intake)
	})

	r.Group(func(r chi.Router) {
		r.Use(shared.RequireUser)

		r.Route("/crm", func(r chi.Router) {
			params.LeadsHandler.MountRoutes(r)
			params.ClientsHandler.MountRoutes(r)
			params.InsightsHandler.MountRoutes(r)
		})
		r.Route("/sales", func(r chi.Router) {
			params.OrdersHandler.MountRoutes(r)
			params.SalesLogHandler.MountRoutes(r)
		})
		r.Route("/billing", params.InvoicesHandler.MountRoutes)
		r.Route("/catalog", params.ProductsHandler.MountRoutes)
		if params.JobsHandler != nil {
			r.Route("/jobs", params.JobsHandler.MountRoutes)
		}
	})

	return r
}
