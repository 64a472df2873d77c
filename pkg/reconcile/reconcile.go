// Package reconcile compares the contract roster against the invoice
// log by contract code and derives per-contract payment status.
package reconcile

import (
	"sort"

	"github.com/pigeonworks-llc/tenancy-recon/pkg/normalize"
)

// Result is the code-level reconciliation of the two tables. The three
// slices partition the union of both code populations.
type Result struct {
	MatchedCodes        []string
	MissingFromInvoices []string
	UnmatchedInvoices   []string
}

// Codes reconciles the two record sets by exact contract-code equality.
// Records with empty codes (extraction failures) never participate;
// they are reported through the table counters instead. The returned
// slices are sorted for stable display.
func Codes(contracts []normalize.ContractRecord, invoices []normalize.InvoiceRecord) Result {
	contractCodes := make(map[string]struct{}, len(contracts))
	for _, record := range contracts {
		if record.ContractCode != "" {
			contractCodes[record.ContractCode] = struct{}{}
		}
	}

	invoiceCodes := make(map[string]struct{}, len(invoices))
	for _, record := range invoices {
		if record.ContractCode != "" {
			invoiceCodes[record.ContractCode] = struct{}{}
		}
	}

	var result Result
	for code := range contractCodes {
		if _, ok := invoiceCodes[code]; ok {
			result.MatchedCodes = append(result.MatchedCodes, code)
		} else {
			result.MissingFromInvoices = append(result.MissingFromInvoices, code)
		}
	}
	for code := range invoiceCodes {
		if _, ok := contractCodes[code]; !ok {
			result.UnmatchedInvoices = append(result.UnmatchedInvoices, code)
		}
	}

	sort.Strings(result.MatchedCodes)
	sort.Strings(result.MissingFromInvoices)
	sort.Strings(result.UnmatchedInvoices)

	return result
}
