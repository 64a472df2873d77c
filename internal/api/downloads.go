package api

import (
	"net/http"

	"github.com/pigeonworks-llc/tenancy-recon/pkg/export"
)

// DownloadContracts handles GET /download/contracts.csv.
func (h *Handler) DownloadContracts(w http.ResponseWriter, r *http.Request) {
	state := h.sessions.Snapshot()
	if state.Contracts == nil || state.Contracts.Table == nil {
		writeJSONError(w, http.StatusConflict, "missing_table", "No contracts table loaded")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="contracts-normalized.csv"`)
	if err := export.Contracts(w, state.Contracts.Table.Records); err != nil {
		// Headers are gone already; all we can do is log.
		h.logger.Error("failed to stream contracts export", "error", err)
	}
}

// DownloadInvoices handles GET /download/invoices.csv.
func (h *Handler) DownloadInvoices(w http.ResponseWriter, r *http.Request) {
	state := h.sessions.Snapshot()
	if state.Invoices == nil || state.Invoices.Table == nil {
		writeJSONError(w, http.StatusConflict, "missing_table", "No invoices table loaded")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="invoices-normalized.csv"`)
	if err := export.Invoices(w, state.Invoices.Table.Records); err != nil {
		h.logger.Error("failed to stream invoices export", "error", err)
	}
}
