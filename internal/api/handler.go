// Package api implements the HTTP surface: upload processing, JSON
// reports, CSV downloads and the HTML pages.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pigeonworks-llc/tenancy-recon/internal/db"
	"github.com/pigeonworks-llc/tenancy-recon/internal/session"
	"github.com/pigeonworks-llc/tenancy-recon/internal/view"
	"github.com/pigeonworks-llc/tenancy-recon/pkg/config"
	"github.com/pigeonworks-llc/tenancy-recon/pkg/normalize"
)

// Handler serves every route. It owns the session state, the run
// history and the page templates.
type Handler struct {
	logger     *slog.Logger
	cfg        *config.Config
	sessions   *session.Manager
	history    *db.RunHistory
	normalizer *normalize.Normalizer
	views      *view.View
}

// NewHandler creates a new Handler.
func NewHandler(logger *slog.Logger, cfg *config.Config, sessions *session.Manager, history *db.RunHistory, views *view.View) *Handler {
	return &Handler{
		logger:     logger,
		cfg:        cfg,
		sessions:   sessions,
		history:    history,
		normalizer: normalize.New(cfg.Processing.ExtraDateFormats...),
		views:      views,
	}
}

// Routes builds the router with the standard middleware stack.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	// Middleware.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Pages.
	r.Get("/", h.Dashboard)
	r.Get("/contract", h.ContractPage)

	// Uploads.
	r.Post("/upload/contracts", h.UploadContracts)
	r.Post("/upload/invoices", h.UploadInvoices)

	// Downloads.
	r.Get("/download/contracts.csv", h.DownloadContracts)
	r.Get("/download/invoices.csv", h.DownloadInvoices)

	// JSON reports.
	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", h.Summary)
		r.Get("/reconciliation", h.Reconciliation)
		r.Get("/contracts", h.ListContracts)
		r.Get("/invoices", h.ListInvoices)
		r.Get("/contract-status", h.ContractStatus)
		r.Get("/runs", h.Runs)
	})

	// Health check endpoint.
	r.Get("/health", h.Health)

	return r
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// defaultAsOf returns the analysis date used when a request does not
// specify one: the configured pin if set, otherwise today.
func (h *Handler) defaultAsOf() time.Time {
	if h.cfg.Processing.AsOf != nil {
		return *h.cfg.Processing.AsOf
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// resolveAsOf resolves the analysis date for a request, honoring the
// as_of query parameter.
func (h *Handler) resolveAsOf(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("as_of")
	if raw == "" {
		return h.defaultAsOf(), nil
	}
	return config.ParseAsOf(raw)
}
