package normalize

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/tenancy-recon/pkg/refcode"
	"github.com/pigeonworks-llc/tenancy-recon/pkg/tabular"
)

// invoiceType is the transaction-type value that survives filtering,
// compared case-insensitively.
const invoiceType = "invoice"

// InvoiceRecord is one normalized transaction-log line of type
// "invoice".
type InvoiceRecord struct {
	Date            *time.Time
	PayerName       string
	ReferenceNumber string
	ContractCode    string
	Amount          decimal.Decimal
}

// InvoiceTable is the normalized invoice log plus its counters.
type InvoiceTable struct {
	Records []InvoiceRecord
	Stats   TableStats
}

// Invoices normalizes the raw transaction log. All five required
// columns must be present or a *MissingColumnsError is returned and
// nothing is processed. Rows whose transaction type is not "invoice"
// are discarded before normalization and counted in the stats.
func (n *Normalizer) Invoices(t *tabular.Table) (*InvoiceTable, error) {
	columns, err := requireColumns(t, KindInvoices, InvoiceColumns)
	if err != nil {
		return nil, err
	}

	out := &InvoiceTable{Records: make([]InvoiceRecord, 0, len(t.Rows))}
	out.Stats.InputRows = len(t.Rows)

	for i := range t.Rows {
		if blankRow(t.Rows[i]) {
			continue
		}
		cell := func(name string) string { return t.Cell(i, columns[name]) }

		txnType := strings.TrimSpace(cell("Transaction Type"))
		if !strings.EqualFold(txnType, invoiceType) {
			out.Stats.FilteredByType++
			continue
		}

		record := InvoiceRecord{
			Date:            n.parseDate(cell("Date")),
			PayerName:       strings.TrimSpace(cell("Name")),
			ReferenceNumber: strings.TrimSpace(cell("No.")),
			Amount:          parseAmount(cell("Amount")),
		}
		record.ContractCode = refcode.Extract(record.ReferenceNumber)
		if record.ContractCode == "" {
			out.Stats.ExtractionFailures++
		}

		out.Records = append(out.Records, record)
	}

	out.Stats.Records = len(out.Records)
	return out, nil
}
