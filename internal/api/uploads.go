package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pigeonworks-llc/tenancy-recon/internal/db"
	"github.com/pigeonworks-llc/tenancy-recon/internal/session"
	"github.com/pigeonworks-llc/tenancy-recon/pkg/normalize"
	"github.com/pigeonworks-llc/tenancy-recon/pkg/tabular"
)

// UploadContracts handles POST /upload/contracts.
// Every outcome, success or failure, lands in the session slot and the
// run history, then the browser is sent back to the dashboard.
func (h *Handler) UploadContracts(w http.ResponseWriter, r *http.Request) {
	runID := uuid.NewString()
	filename, table, failure := h.readTable(w, r)

	var contracts *normalize.ContractTable
	if failure == nil {
		contracts, failure = h.normalizeContracts(table)
	}

	var stats normalize.TableStats
	if contracts != nil {
		stats = contracts.Stats
	}

	h.sessions.SetContracts(&session.ContractsSlot{
		Table:      contracts,
		Failure:    failure,
		Filename:   filename,
		RunID:      runID,
		UploadedAt: time.Now().UTC(),
	})
	h.recordRun(runID, string(normalize.KindContracts), filename, stats, failure)
	h.logUpload(string(normalize.KindContracts), runID, filename, stats, failure)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// UploadInvoices handles POST /upload/invoices.
func (h *Handler) UploadInvoices(w http.ResponseWriter, r *http.Request) {
	runID := uuid.NewString()
	filename, table, failure := h.readTable(w, r)

	var invoices *normalize.InvoiceTable
	if failure == nil {
		invoices, failure = h.normalizeInvoices(table)
	}

	var stats normalize.TableStats
	if invoices != nil {
		stats = invoices.Stats
	}

	h.sessions.SetInvoices(&session.InvoicesSlot{
		Table:      invoices,
		Failure:    failure,
		Filename:   filename,
		RunID:      runID,
		UploadedAt: time.Now().UTC(),
	})
	h.recordRun(runID, string(normalize.KindInvoices), filename, stats, failure)
	h.logUpload(string(normalize.KindInvoices), runID, filename, stats, failure)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// readTable pulls the uploaded file out of the multipart form and
// parses it into a raw table. Failures come back as a session failure
// so the dashboard can show them inline next to the upload control.
func (h *Handler) readTable(w http.ResponseWriter, r *http.Request) (string, *tabular.Table, *session.Failure) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.Server.MaxUploadBytes)

	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10 MB max in memory
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, &session.Failure{
				Kind:    session.FailureRead,
				Message: fmt.Sprintf("upload exceeds the %d byte limit", tooLarge.Limit),
			}
		}
		return "", nil, &session.Failure{
			Kind:    session.FailureRead,
			Message: fmt.Sprintf("failed to parse upload form: %v", err),
		}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, &session.Failure{
			Kind:    session.FailureRead,
			Message: "upload form has no file field",
		}
	}
	defer file.Close()

	table, err := tabular.Read(file)
	if err != nil {
		return header.Filename, nil, &session.Failure{
			Kind:    session.FailureRead,
			Message: err.Error(),
		}
	}

	return header.Filename, table, nil
}

// normalizeContracts runs contract normalization. A fault in row
// processing must land in the slot, not a 500 page, so panics are
// contained here.
func (h *Handler) normalizeContracts(table *tabular.Table) (contracts *normalize.ContractTable, failure *session.Failure) {
	defer func() {
		if rec := recover(); rec != nil {
			contracts = nil
			failure = &session.Failure{
				Kind:    session.FailureUnexpected,
				Message: fmt.Sprintf("could not process the contracts table: %v", rec),
			}
		}
	}()

	result, err := h.normalizer.Contracts(table)
	if err != nil {
		return nil, classifyFailure("contracts", err)
	}
	return result, nil
}

// normalizeInvoices runs invoice normalization with the same panic
// containment as normalizeContracts.
func (h *Handler) normalizeInvoices(table *tabular.Table) (invoices *normalize.InvoiceTable, failure *session.Failure) {
	defer func() {
		if rec := recover(); rec != nil {
			invoices = nil
			failure = &session.Failure{
				Kind:    session.FailureUnexpected,
				Message: fmt.Sprintf("could not process the invoices table: %v", rec),
			}
		}
	}()

	result, err := h.normalizer.Invoices(table)
	if err != nil {
		return nil, classifyFailure("invoices", err)
	}
	return result, nil
}

// classifyFailure maps a normalization error onto a session failure.
func classifyFailure(kind string, err error) *session.Failure {
	var missing *normalize.MissingColumnsError
	if errors.As(err, &missing) {
		return &session.Failure{
			Kind:    session.FailureMissingColumns,
			Message: missing.Error(),
			Missing: missing.Missing,
			Present: missing.Present,
		}
	}
	return &session.Failure{
		Kind:    session.FailureUnexpected,
		Message: fmt.Sprintf("could not process the %s table: %v", kind, err),
	}
}

// recordRun writes the run to history. History is advisory; a write
// failure is logged and the request continues.
func (h *Handler) recordRun(runID, kind, filename string, stats normalize.TableStats, failure *session.Failure) {
	record := db.RunRecord{
		RunID:              runID,
		TableKind:          kind,
		Filename:           filename,
		Outcome:            db.OutcomeOK,
		RowCount:           stats.InputRows,
		RecordCount:        stats.Records,
		FilteredCount:      stats.FilteredByType,
		ExtractionFailures: stats.ExtractionFailures,
	}
	if failure != nil {
		record.Outcome = db.OutcomeFailed
		if failure.Kind == session.FailureMissingColumns {
			record.Outcome = db.OutcomeMissingColumns
		}
		record.Detail = sql.NullString{String: failure.Message, Valid: true}
	}

	if err := h.history.RecordRun(record); err != nil {
		h.logger.Error("failed to record run", "run_id", runID, "error", err)
	}
}

// logUpload logs the upload outcome.
func (h *Handler) logUpload(kind, runID, filename string, stats normalize.TableStats, failure *session.Failure) {
	if failure != nil {
		h.logger.Warn("upload failed",
			"table", kind,
			"run_id", runID,
			"filename", filename,
			"reason", failure.Message)
		return
	}
	h.logger.Info("upload processed",
		"table", kind,
		"run_id", runID,
		"filename", filename,
		"rows", stats.InputRows,
		"records", stats.Records,
		"filtered", stats.FilteredByType,
		"extraction_failures", stats.ExtractionFailures)
}
