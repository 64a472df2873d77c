package api

import (
	"net/http"
	"time"

	"github.com/pigeonworks-llc/tenancy-recon/internal/session"
	"github.com/pigeonworks-llc/tenancy-recon/pkg/normalize"
	"github.com/pigeonworks-llc/tenancy-recon/pkg/reconcile"
)

// timestampFormat renders upload and run timestamps in API responses.
const timestampFormat = "2006-01-02 15:04:05"

// TableError carries upload failure detail in JSON responses.
type TableError struct {
	Kind    string   `json:"kind"`
	Message string   `json:"message"`
	Missing []string `json:"missing_columns,omitempty"`
	Present []string `json:"columns_present,omitempty"`
}

// TableSummary describes the state of one upload slot.
type TableSummary struct {
	Loaded             bool        `json:"loaded"`
	Filename           string      `json:"filename,omitempty"`
	UploadedAt         string      `json:"uploaded_at,omitempty"`
	InputRows          int         `json:"input_rows"`
	Records            int         `json:"records"`
	FilteredByType     int         `json:"filtered_by_type"`
	ExtractionFailures int         `json:"extraction_failures"`
	Error              *TableError `json:"error"`
}

// ReconciliationCounts carries the three partition sizes.
type ReconciliationCounts struct {
	Matched             int `json:"matched"`
	MissingFromInvoices int `json:"missing_from_invoices"`
	UnmatchedInvoices   int `json:"unmatched_invoices"`
}

// SummaryResponse is the GET /api/summary payload.
type SummaryResponse struct {
	Contracts      TableSummary          `json:"contracts"`
	Invoices       TableSummary          `json:"invoices"`
	Reconciliation *ReconciliationCounts `json:"reconciliation"`
}

// Summary handles GET /api/summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	state := h.sessions.Snapshot()

	resp := SummaryResponse{
		Contracts: contractsSummary(state.Contracts),
		Invoices:  invoicesSummary(state.Invoices),
	}

	if contracts, invoices, ok := loadedTables(state); ok {
		result := reconcile.Codes(contracts.Records, invoices.Records)
		resp.Reconciliation = &ReconciliationCounts{
			Matched:             len(result.MatchedCodes),
			MissingFromInvoices: len(result.MissingFromInvoices),
			UnmatchedInvoices:   len(result.UnmatchedInvoices),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// ReconciliationResponse is the GET /api/reconciliation payload.
type ReconciliationResponse struct {
	Matched             []string `json:"matched"`
	MissingFromInvoices []string `json:"missing_from_invoices"`
	UnmatchedInvoices   []string `json:"unmatched_invoices"`
	MatchedCount        int      `json:"matched_count"`
	MissingCount        int      `json:"missing_from_invoices_count"`
	UnmatchedCount      int      `json:"unmatched_invoices_count"`
}

// Reconciliation handles GET /api/reconciliation.
func (h *Handler) Reconciliation(w http.ResponseWriter, r *http.Request) {
	contracts, invoices, ok := loadedTables(h.sessions.Snapshot())
	if !ok {
		writeJSONError(w, http.StatusConflict, "missing_table", "Upload both tables before requesting reconciliation")
		return
	}

	result := reconcile.Codes(contracts.Records, invoices.Records)
	writeJSON(w, http.StatusOK, ReconciliationResponse{
		Matched:             emptyIfNil(result.MatchedCodes),
		MissingFromInvoices: emptyIfNil(result.MissingFromInvoices),
		UnmatchedInvoices:   emptyIfNil(result.UnmatchedInvoices),
		MatchedCount:        len(result.MatchedCodes),
		MissingCount:        len(result.MissingFromInvoices),
		UnmatchedCount:      len(result.UnmatchedInvoices),
	})
}

// ContractRow is the display form of a normalized contract.
type ContractRow struct {
	Tenant                  string `json:"tenant"`
	ContractReference       string `json:"contract_reference"`
	StartDate               string `json:"start_date"`
	EndDate                 string `json:"end_date"`
	NumberOfCheques         int    `json:"number_of_cheques"`
	InstallmentAmount       string `json:"installment_amount"`
	ContractualPeriodMonths int    `json:"contractual_period_months"`
	MonthsPerCheque         int    `json:"months_per_cheque"`
	RentAsPerContract       string `json:"rent_as_per_contract"`
	ServiceAsPerContract    string `json:"service_as_per_contract"`
	TotalValue              string `json:"total_value"`
	ContractCode            string `json:"contract_code"`
}

// ListContracts handles GET /api/contracts.
func (h *Handler) ListContracts(w http.ResponseWriter, r *http.Request) {
	state := h.sessions.Snapshot()
	if state.Contracts == nil || state.Contracts.Table == nil {
		writeJSONError(w, http.StatusConflict, "missing_table", "No contracts table loaded")
		return
	}

	records := state.Contracts.Table.Records
	rows := make([]ContractRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, ContractRow{
			Tenant:                  record.Tenant,
			ContractReference:       record.ContractReference,
			StartDate:               normalize.FormatDate(record.StartDate),
			EndDate:                 normalize.FormatDate(record.EndDate),
			NumberOfCheques:         record.NumberOfCheques,
			InstallmentAmount:       record.InstallmentAmount.String(),
			ContractualPeriodMonths: record.ContractualPeriodMonths,
			MonthsPerCheque:         record.MonthsPerCheque,
			RentAsPerContract:       record.RentAsPerContract.String(),
			ServiceAsPerContract:    record.ServiceAsPerContract.String(),
			TotalValue:              record.TotalValue.String(),
			ContractCode:            record.ContractCode,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"contracts": rows})
}

// InvoiceRow is the display form of a normalized invoice.
type InvoiceRow struct {
	Date            string `json:"date"`
	ReferenceNumber string `json:"reference_number"`
	PayerName       string `json:"payer_name"`
	Amount          string `json:"amount"`
	ContractCode    string `json:"contract_code"`
}

// ListInvoices handles GET /api/invoices.
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	state := h.sessions.Snapshot()
	if state.Invoices == nil || state.Invoices.Table == nil {
		writeJSONError(w, http.StatusConflict, "missing_table", "No invoices table loaded")
		return
	}

	records := state.Invoices.Table.Records
	rows := make([]InvoiceRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, InvoiceRow{
			Date:            normalize.FormatDate(record.Date),
			ReferenceNumber: record.ReferenceNumber,
			PayerName:       record.PayerName,
			Amount:          record.Amount.String(),
			ContractCode:    record.ContractCode,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"invoices": rows})
}

// ScheduleEntryResponse is one month of a contract's schedule.
type ScheduleEntryResponse struct {
	Month   string `json:"month"`
	DueDate string `json:"due_date"`
	Amount  string `json:"amount"`
}

// ContractStatusResponse is the GET /api/contract-status payload.
type ContractStatusResponse struct {
	ContractCode   string                  `json:"contract_code"`
	Tenant         string                  `json:"tenant"`
	AsOf           string                  `json:"as_of"`
	ExpectedToDate string                  `json:"expected_to_date"`
	ActualInvoiced string                  `json:"actual_invoiced"`
	InvoiceCount   int                     `json:"invoice_count"`
	MissingMonths  []string                `json:"missing_months"`
	Schedule       []ScheduleEntryResponse `json:"schedule"`
}

// ContractStatus handles GET /api/contract-status.
func (h *Handler) ContractStatus(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing code")
		return
	}

	asOf, err := h.resolveAsOf(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid as_of date, expected YYYY-MM-DD")
		return
	}

	state := h.sessions.Snapshot()
	if state.Contracts == nil || state.Contracts.Table == nil {
		writeJSONError(w, http.StatusConflict, "missing_table", "No contracts table loaded")
		return
	}

	record := findContract(state.Contracts.Table.Records, code)
	if record == nil {
		writeJSONError(w, http.StatusNotFound, "not_found", "No contract with that code")
		return
	}

	// An absent invoice table reads as an empty log: everything
	// past due shows as missing.
	var invoices []normalize.InvoiceRecord
	if state.Invoices != nil && state.Invoices.Table != nil {
		invoices = state.Invoices.Table.Records
	}

	status := reconcile.Status(*record, invoices, asOf)

	entries := make([]ScheduleEntryResponse, 0, len(status.Schedule))
	for _, entry := range status.Schedule {
		entries = append(entries, ScheduleEntryResponse{
			Month:   entry.PaymentMonth,
			DueDate: normalize.FormatDate(&entry.PaymentDate),
			Amount:  entry.Amount.String(),
		})
	}

	missing := make([]string, 0, len(status.MissingMonths))
	for _, entry := range status.MissingMonths {
		missing = append(missing, entry.PaymentMonth)
	}

	writeJSON(w, http.StatusOK, ContractStatusResponse{
		ContractCode:   status.ContractCode,
		Tenant:         record.Tenant,
		AsOf:           asOfDisplay(asOf),
		ExpectedToDate: status.ExpectedToDate.String(),
		ActualInvoiced: status.ActualInvoiced.String(),
		InvoiceCount:   status.InvoiceCount,
		MissingMonths:  missing,
		Schedule:       entries,
	})
}

// RunResponse is the display form of one run history record.
type RunResponse struct {
	RunID              string `json:"run_id"`
	TableKind          string `json:"table_kind"`
	Filename           string `json:"filename"`
	Outcome            string `json:"outcome"`
	Detail             string `json:"detail,omitempty"`
	RowCount           int    `json:"row_count"`
	RecordCount        int    `json:"record_count"`
	FilteredCount      int    `json:"filtered_count"`
	ExtractionFailures int    `json:"extraction_failures"`
	CreatedAt          string `json:"created_at"`
}

// RunStatsResponse aggregates the run history.
type RunStatsResponse struct {
	TotalRuns        int    `json:"total_runs"`
	ContractRuns     int    `json:"contract_runs"`
	InvoiceRuns      int    `json:"invoice_runs"`
	LastContractsRun string `json:"last_contracts_run,omitempty"`
	LastInvoicesRun  string `json:"last_invoices_run,omitempty"`
}

// Runs handles GET /api/runs.
func (h *Handler) Runs(w http.ResponseWriter, r *http.Request) {
	records, err := h.history.ListRuns(50)
	if err != nil {
		h.logger.Error("failed to list runs", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to list runs")
		return
	}

	stats, err := h.history.GetStats()
	if err != nil {
		h.logger.Error("failed to get run stats", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to get run stats")
		return
	}

	runs := make([]RunResponse, 0, len(records))
	for _, record := range records {
		runs = append(runs, RunResponse{
			RunID:              record.RunID,
			TableKind:          record.TableKind,
			Filename:           record.Filename,
			Outcome:            string(record.Outcome),
			Detail:             record.Detail.String,
			RowCount:           record.RowCount,
			RecordCount:        record.RecordCount,
			FilteredCount:      record.FilteredCount,
			ExtractionFailures: record.ExtractionFailures,
			CreatedAt:          record.CreatedAt.UTC().Format(timestampFormat),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"runs": runs,
		"stats": RunStatsResponse{
			TotalRuns:        stats.TotalRuns,
			ContractRuns:     stats.ContractRuns,
			InvoiceRuns:      stats.InvoiceRuns,
			LastContractsRun: stats.LastContractsRun.String,
			LastInvoicesRun:  stats.LastInvoicesRun.String,
		},
	})
}

// contractsSummary converts a contracts slot for the summary payload.
func contractsSummary(slot *session.ContractsSlot) TableSummary {
	if slot == nil {
		return TableSummary{}
	}

	summary := TableSummary{
		Filename:   slot.Filename,
		UploadedAt: slot.UploadedAt.UTC().Format(timestampFormat),
		Error:      tableError(slot.Failure),
	}
	if slot.Table != nil {
		summary.Loaded = true
		summary.InputRows = slot.Table.Stats.InputRows
		summary.Records = slot.Table.Stats.Records
		summary.FilteredByType = slot.Table.Stats.FilteredByType
		summary.ExtractionFailures = slot.Table.Stats.ExtractionFailures
	}
	return summary
}

// invoicesSummary converts an invoices slot for the summary payload.
func invoicesSummary(slot *session.InvoicesSlot) TableSummary {
	if slot == nil {
		return TableSummary{}
	}

	summary := TableSummary{
		Filename:   slot.Filename,
		UploadedAt: slot.UploadedAt.UTC().Format(timestampFormat),
		Error:      tableError(slot.Failure),
	}
	if slot.Table != nil {
		summary.Loaded = true
		summary.InputRows = slot.Table.Stats.InputRows
		summary.Records = slot.Table.Stats.Records
		summary.FilteredByType = slot.Table.Stats.FilteredByType
		summary.ExtractionFailures = slot.Table.Stats.ExtractionFailures
	}
	return summary
}

// tableError converts a session failure for JSON display.
func tableError(failure *session.Failure) *TableError {
	if failure == nil {
		return nil
	}
	return &TableError{
		Kind:    failure.Kind,
		Message: failure.Message,
		Missing: failure.Missing,
		Present: failure.Present,
	}
}

// loadedTables returns both normalized tables when both slots hold one.
func loadedTables(state session.State) (*normalize.ContractTable, *normalize.InvoiceTable, bool) {
	if state.Contracts == nil || state.Contracts.Table == nil {
		return nil, nil, false
	}
	if state.Invoices == nil || state.Invoices.Table == nil {
		return nil, nil, false
	}
	return state.Contracts.Table, state.Invoices.Table, true
}

// findContract returns the first record carrying the code.
func findContract(records []normalize.ContractRecord, code string) *normalize.ContractRecord {
	for i := range records {
		if records[i].ContractCode == code {
			return &records[i]
		}
	}
	return nil
}

// emptyIfNil keeps empty lists rendering as [] rather than null.
func emptyIfNil(codes []string) []string {
	if codes == nil {
		return []string{}
	}
	return codes
}

// asOfDisplay renders an as-of date for page and JSON display.
func asOfDisplay(asOf time.Time) string {
	return normalize.FormatDate(&asOf)
}
