// Package normalize projects raw input tables onto the fixed record
// schema: it validates required columns, coerces dates and amounts,
// derives the total value, and attaches the extracted contract code.
package normalize

import (
	"fmt"
	"strings"

	"github.com/pigeonworks-llc/tenancy-recon/pkg/tabular"
)

// TableKind identifies which input table a diagnostic refers to.
type TableKind string

const (
	KindContracts TableKind = "contracts"
	KindInvoices  TableKind = "invoices"
)

// ContractColumns lists the required contract-roster headers, in order.
var ContractColumns = []string{
	"Tenants",
	"Contract Reference",
	"Start Date",
	"End Date",
	"No. of Cheques",
	"Installment Amount",
	"Contractual period (months)",
	"Months Per Cheque",
	"Rent As per Contract",
	"Service as per Contract",
}

// InvoiceColumns lists the required transaction-log headers, in order.
var InvoiceColumns = []string{
	"Date",
	"Transaction Type",
	"No.",
	"Name",
	"Amount",
}

// TableStats carries the per-table counters surfaced in reports.
type TableStats struct {
	InputRows          int
	Records            int
	FilteredByType     int
	ExtractionFailures int
}

// MissingColumnsError reports required headers absent from an input
// table. It carries the full set of headers actually present so a
// whitespace or case variant can be spotted at a glance.
type MissingColumnsError struct {
	Kind    TableKind
	Missing []string
	Present []string
}

// Error implements the error interface.
func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s table is missing required columns %v (columns present: %v)",
		e.Kind, e.Missing, e.Present)
}

// Normalizer projects raw tables onto the fixed record schema.
type Normalizer struct {
	dateFormats []string
}

// New creates a Normalizer. Extra date formats, if any, extend the
// built-in day-month-year and ISO set.
func New(extraDateFormats ...string) *Normalizer {
	formats := make([]string, 0, len(defaultDateFormats)+len(extraDateFormats))
	formats = append(formats, defaultDateFormats...)
	formats = append(formats, extraDateFormats...)

	return &Normalizer{dateFormats: formats}
}

// requireColumns verifies every required header is present, by exact
// case-sensitive match, and returns the name-to-index mapping. The
// check runs once per table, before any row is touched.
func requireColumns(t *tabular.Table, kind TableKind, required []string) (map[string]int, error) {
	columns := make(map[string]int, len(required))
	var missing []string

	for _, name := range required {
		idx := t.Column(name)
		if idx < 0 {
			missing = append(missing, name)
			continue
		}
		columns[name] = idx
	}

	if len(missing) > 0 {
		present := make([]string, len(t.Headers))
		copy(present, t.Headers)
		return nil, &MissingColumnsError{Kind: kind, Missing: missing, Present: present}
	}

	return columns, nil
}

// blankRow reports whether every cell in the row is empty or whitespace.
func blankRow(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
