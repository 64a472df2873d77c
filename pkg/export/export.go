// Package export serializes the normalized tables as downloadable
// UTF-8 CSV, mirroring the source columns with the derived fields
// appended.
package export

import (
	"io"
	"strconv"

	"github.com/pigeonworks-llc/tenancy-recon/pkg/normalize"
	"github.com/pigeonworks-llc/tenancy-recon/pkg/tabular"
)

// ContractHeaders is the contracts export header row: the ten source
// columns plus Total Value and Contract Code.
var ContractHeaders = appendDerived(normalize.ContractColumns, "Total Value", "Contract Code")

// InvoiceHeaders is the invoices export header row: the five source
// columns plus Contract Code.
var InvoiceHeaders = appendDerived(normalize.InvoiceColumns, "Contract Code")

func appendDerived(source []string, derived ...string) []string {
	headers := make([]string, 0, len(source)+len(derived))
	headers = append(headers, source...)
	headers = append(headers, derived...)
	return headers
}

// Contracts writes the normalized contract roster as CSV. Dates render
// in the external DD-MM-YYYY form, blank when absent.
func Contracts(w io.Writer, records []normalize.ContractRecord) error {
	table := &tabular.Table{
		Headers: ContractHeaders,
		Rows:    make([][]string, 0, len(records)),
	}

	for _, record := range records {
		table.Rows = append(table.Rows, []string{
			record.Tenant,
			record.ContractReference,
			normalize.FormatDate(record.StartDate),
			normalize.FormatDate(record.EndDate),
			strconv.Itoa(record.NumberOfCheques),
			record.InstallmentAmount.String(),
			strconv.Itoa(record.ContractualPeriodMonths),
			strconv.Itoa(record.MonthsPerCheque),
			record.RentAsPerContract.String(),
			record.ServiceAsPerContract.String(),
			record.TotalValue.String(),
			record.ContractCode,
		})
	}

	return tabular.Write(w, table)
}

// Invoices writes the normalized invoice log as CSV. Every exported
// row carries the literal transaction type "invoice"; other types were
// filtered out during normalization.
func Invoices(w io.Writer, records []normalize.InvoiceRecord) error {
	table := &tabular.Table{
		Headers: InvoiceHeaders,
		Rows:    make([][]string, 0, len(records)),
	}

	for _, record := range records {
		table.Rows = append(table.Rows, []string{
			normalize.FormatDate(record.Date),
			"invoice",
			record.ReferenceNumber,
			record.PayerName,
			record.Amount.String(),
			record.ContractCode,
		})
	}

	return tabular.Write(w, table)
}
