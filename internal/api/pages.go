package api

import (
	"bytes"
	"net/http"

	"github.com/pigeonworks-llc/tenancy-recon/internal/session"
	"github.com/pigeonworks-llc/tenancy-recon/internal/view"
	"github.com/pigeonworks-llc/tenancy-recon/pkg/normalize"
	"github.com/pigeonworks-llc/tenancy-recon/pkg/reconcile"
)

// pageTimeFormat renders timestamps on pages, day first like dates.
const pageTimeFormat = "02-01-2006 15:04"

// Dashboard handles GET /.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	state := h.sessions.Snapshot()

	data := view.DashboardData{
		AsOf:      asOfDisplay(h.defaultAsOf()),
		Contracts: contractsSlotView(state.Contracts),
		Invoices:  invoicesSlotView(state.Invoices),
	}

	if contracts, invoices, ok := loadedTables(state); ok {
		result := reconcile.Codes(contracts.Records, invoices.Records)
		data.Reconciliation = &view.ReconciliationView{
			Matched:             result.MatchedCodes,
			MissingFromInvoices: result.MissingFromInvoices,
			UnmatchedInvoices:   result.UnmatchedInvoices,
		}
	}

	runs, err := h.history.ListRuns(10)
	if err != nil {
		h.logger.Error("failed to list runs for dashboard", "error", err)
	}
	for _, record := range runs {
		data.Runs = append(data.Runs, view.RunView{
			CreatedAt: record.CreatedAt.UTC().Format(pageTimeFormat),
			TableKind: record.TableKind,
			Filename:  record.Filename,
			Outcome:   string(record.Outcome),
			Records:   record.RecordCount,
			Detail:    record.Detail.String,
		})
	}

	h.renderPage(w, "dashboard", data)
}

// ContractPage handles GET /contract.
func (h *Handler) ContractPage(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	asOf, err := h.resolveAsOf(r)
	if err != nil {
		http.Error(w, "invalid as_of date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	state := h.sessions.Snapshot()
	if state.Contracts == nil || state.Contracts.Table == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	record := findContract(state.Contracts.Table.Records, code)
	if record == nil {
		http.Error(w, "no contract with that code", http.StatusNotFound)
		return
	}

	var invoices []normalize.InvoiceRecord
	if state.Invoices != nil && state.Invoices.Table != nil {
		invoices = state.Invoices.Table.Records
	}

	status := reconcile.Status(*record, invoices, asOf)

	missingSet := make(map[string]struct{}, len(status.MissingMonths))
	var missingMonths []string
	for _, entry := range status.MissingMonths {
		missingSet[entry.PaymentMonth] = struct{}{}
		missingMonths = append(missingMonths, entry.PaymentMonth)
	}

	scheduleRows := make([]view.ScheduleRowView, 0, len(status.Schedule))
	for _, entry := range status.Schedule {
		row := view.ScheduleRowView{
			Month:  entry.PaymentMonth,
			Date:   normalize.FormatDate(&entry.PaymentDate),
			Amount: entry.Amount.String(),
		}
		if entry.PaymentDate.After(asOf) {
			row.Status = "upcoming"
		} else if _, missed := missingSet[entry.PaymentMonth]; missed {
			row.Status = "missing"
			row.Missing = true
		} else {
			row.Status = "invoiced"
		}
		scheduleRows = append(scheduleRows, row)
	}

	var invoiceRows []view.InvoiceRowView
	for _, invoice := range invoices {
		if invoice.ContractCode != code {
			continue
		}
		invoiceRows = append(invoiceRows, view.InvoiceRowView{
			Date:      normalize.FormatDate(invoice.Date),
			Reference: invoice.ReferenceNumber,
			Payer:     invoice.PayerName,
			Amount:    invoice.Amount.String(),
		})
	}

	h.renderPage(w, "contract", view.ContractPageData{
		Code:              record.ContractCode,
		Tenant:            record.Tenant,
		Reference:         record.ContractReference,
		StartDate:         normalize.FormatDate(record.StartDate),
		EndDate:           normalize.FormatDate(record.EndDate),
		InstallmentAmount: record.InstallmentAmount.String(),
		NumberOfCheques:   record.NumberOfCheques,
		TotalValue:        record.TotalValue.String(),
		AsOf:              asOfDisplay(asOf),
		ExpectedToDate:    status.ExpectedToDate.String(),
		ActualInvoiced:    status.ActualInvoiced.String(),
		InvoiceCount:      status.InvoiceCount,
		MissingMonths:     missingMonths,
		Schedule:          scheduleRows,
		Invoices:          invoiceRows,
	})
}

// renderPage renders into a buffer first so a template fault yields a
// clean 500 instead of a half-written page.
func (h *Handler) renderPage(w http.ResponseWriter, name string, data interface{}) {
	var buf bytes.Buffer
	if err := h.views.Render(&buf, name, data); err != nil {
		h.logger.Error("failed to render page", "page", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// contractsSlotView converts a contracts slot for the dashboard.
func contractsSlotView(slot *session.ContractsSlot) view.SlotView {
	if slot == nil {
		return view.SlotView{}
	}

	sv := view.SlotView{
		Filename:   slot.Filename,
		UploadedAt: slot.UploadedAt.UTC().Format(pageTimeFormat),
		Failure:    failureView(slot.Failure),
	}
	if slot.Table != nil {
		sv.Loaded = true
		sv.InputRows = slot.Table.Stats.InputRows
		sv.Records = slot.Table.Stats.Records
		sv.ExtractionFailures = slot.Table.Stats.ExtractionFailures
	}
	return sv
}

// invoicesSlotView converts an invoices slot for the dashboard. The
// filtered-by-type counter only means something for invoices.
func invoicesSlotView(slot *session.InvoicesSlot) view.SlotView {
	if slot == nil {
		return view.SlotView{}
	}

	sv := view.SlotView{
		Filename:     slot.Filename,
		UploadedAt:   slot.UploadedAt.UTC().Format(pageTimeFormat),
		ShowFiltered: true,
		Failure:      failureView(slot.Failure),
	}
	if slot.Table != nil {
		sv.Loaded = true
		sv.InputRows = slot.Table.Stats.InputRows
		sv.Records = slot.Table.Stats.Records
		sv.FilteredByType = slot.Table.Stats.FilteredByType
		sv.ExtractionFailures = slot.Table.Stats.ExtractionFailures
	}
	return sv
}

// failureView converts a session failure for page display.
func failureView(failure *session.Failure) *view.FailureView {
	if failure == nil {
		return nil
	}
	return &view.FailureView{
		Message: failure.Message,
		Missing: failure.Missing,
		Present: failure.Present,
	}
}
