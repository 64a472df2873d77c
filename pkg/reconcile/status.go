package reconcile

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/tenancy-recon/pkg/normalize"
	"github.com/pigeonworks-llc/tenancy-recon/pkg/schedule"
)

// ContractStatus is the expected-vs-actual position of one contract as
// of a reference date.
type ContractStatus struct {
	ContractCode   string
	AsOf           time.Time
	Schedule       []schedule.Entry
	ExpectedToDate decimal.Decimal
	ActualInvoiced decimal.Decimal
	InvoiceCount   int
	MissingMonths  []schedule.Entry
}

// Status computes the position of one contract against the full
// invoice log. ExpectedToDate sums schedule amounts due on or before
// asOf. ActualInvoiced sums every invoice carrying the contract's code
// regardless of date. A past-due month is missing when no invoice
// lands on its month label; several invoices in one month collapse to
// "covered" without comparing amounts.
func Status(record normalize.ContractRecord, invoices []normalize.InvoiceRecord, asOf time.Time) ContractStatus {
	status := ContractStatus{
		ContractCode:   record.ContractCode,
		AsOf:           asOf,
		Schedule:       schedule.ForContract(record),
		ExpectedToDate: decimal.Zero,
		ActualInvoiced: decimal.Zero,
	}

	paidMonths := make(map[string]struct{})
	if record.ContractCode != "" {
		for _, invoice := range invoices {
			if invoice.ContractCode != record.ContractCode {
				continue
			}
			status.ActualInvoiced = status.ActualInvoiced.Add(invoice.Amount)
			status.InvoiceCount++
			if invoice.Date != nil {
				paidMonths[schedule.MonthLabel(*invoice.Date)] = struct{}{}
			}
		}
	}

	for _, entry := range status.Schedule {
		if entry.PaymentDate.After(asOf) {
			continue
		}
		status.ExpectedToDate = status.ExpectedToDate.Add(entry.Amount)
		if _, covered := paidMonths[entry.PaymentMonth]; !covered {
			status.MissingMonths = append(status.MissingMonths, entry)
		}
	}

	return status
}
