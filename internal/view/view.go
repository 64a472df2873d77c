// Package view renders the HTML pages. Templates are embedded string
// constants; all dynamic values pass through html/template escaping
// because tenant names and filenames come straight from user uploads.
package view

import (
	"fmt"
	"html/template"
	"io"
)

// FailureView describes a failed upload for display.
type FailureView struct {
	Message string
	Missing []string
	Present []string
}

// SlotView describes one upload slot on the dashboard.
type SlotView struct {
	Loaded             bool
	Filename           string
	UploadedAt         string
	InputRows          int
	Records            int
	ShowFiltered       bool
	FilteredByType     int
	ExtractionFailures int
	Failure            *FailureView
}

// ReconciliationView carries the three code partitions for display.
type ReconciliationView struct {
	Matched             []string
	MissingFromInvoices []string
	UnmatchedInvoices   []string
}

// RunView describes one row of the recent uploads table.
type RunView struct {
	CreatedAt string
	TableKind string
	Filename  string
	Outcome   string
	Records   int
	Detail    string
}

// DashboardData is the model for the dashboard page.
type DashboardData struct {
	AsOf           string
	Contracts      SlotView
	Invoices       SlotView
	Reconciliation *ReconciliationView
	Runs           []RunView
}

// ScheduleRowView describes one month of a contract's payment schedule.
type ScheduleRowView struct {
	Month   string
	Date    string
	Amount  string
	Status  string
	Missing bool
}

// InvoiceRowView describes one invoice row on the contract page.
type InvoiceRowView struct {
	Date      string
	Reference string
	Payer     string
	Amount    string
}

// ContractPageData is the model for the per-contract page.
type ContractPageData struct {
	Code              string
	Tenant            string
	Reference         string
	StartDate         string
	EndDate           string
	InstallmentAmount string
	NumberOfCheques   int
	TotalValue        string
	AsOf              string
	ExpectedToDate    string
	ActualInvoiced    string
	InvoiceCount      int
	MissingMonths     []string
	Schedule          []ScheduleRowView
	Invoices          []InvoiceRowView
}

// View renders named page templates.
type View struct {
	templates *template.Template
}

// New parses the embedded page templates.
func New() (*View, error) {
	pages := []struct {
		name string
		text string
	}{
		{"dashboard", dashboardHTML},
		{"contract", contractHTML},
	}

	root := template.New("pages")
	for _, page := range pages {
		if _, err := root.New(page.name).Parse(page.text); err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", page.name, err)
		}
	}

	return &View{templates: root}, nil
}

// Render writes the named page to w.
func (v *View) Render(w io.Writer, name string, data interface{}) error {
	if err := v.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to render %s page: %w", name, err)
	}
	return nil
}
