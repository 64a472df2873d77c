// Package schedule derives the monthly payment obligations implied by
// a contract's date range.
package schedule

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/tenancy-recon/pkg/normalize"
)

// MonthLabelFormat renders a payment month, e.g. "August 2024". The
// status analysis labels invoice dates with the same format so month
// membership is a plain string comparison.
const MonthLabelFormat = "January 2006"

// Entry is one expected monthly obligation.
type Entry struct {
	PaymentMonth string
	PaymentDate  time.Time
	Amount       decimal.Decimal
}

// MonthLabel renders the month of t in the schedule label form.
func MonthLabel(t time.Time) string {
	return t.Format(MonthLabelFormat)
}

// Monthly returns one Entry per calendar month whose first day falls
// within [start, end] inclusive, in chronological order. Every entry
// carries the same installment amount. A nil start or end, or a range
// containing no month start, yields an empty schedule; a contract
// beginning mid-January and ending mid-March is due for February and
// March only.
func Monthly(start, end *time.Time, amount decimal.Decimal) []Entry {
	if start == nil || end == nil {
		return nil
	}

	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	if first.Before(*start) {
		first = first.AddDate(0, 1, 0)
	}

	var entries []Entry
	for day := first; !day.After(*end); day = day.AddDate(0, 1, 0) {
		entries = append(entries, Entry{
			PaymentMonth: MonthLabel(day),
			PaymentDate:  day,
			Amount:       amount,
		})
	}

	return entries
}

// ForContract derives the schedule for one normalized contract.
func ForContract(record normalize.ContractRecord) []Entry {
	return Monthly(record.StartDate, record.EndDate, record.InstallmentAmount)
}
