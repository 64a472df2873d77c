package normalize

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/tenancy-recon/pkg/refcode"
	"github.com/pigeonworks-llc/tenancy-recon/pkg/tabular"
)

// ContractRecord is one normalized tenancy agreement. Records are
// immutable after normalization and live only for the session.
type ContractRecord struct {
	Tenant                  string
	ContractReference       string
	StartDate               *time.Time
	EndDate                 *time.Time
	NumberOfCheques         int
	InstallmentAmount       decimal.Decimal
	ContractualPeriodMonths int
	MonthsPerCheque         int
	RentAsPerContract       decimal.Decimal
	ServiceAsPerContract    decimal.Decimal
	TotalValue              decimal.Decimal
	ContractCode            string
}

// ContractTable is the normalized contract roster plus its counters.
type ContractTable struct {
	Records []ContractRecord
	Stats   TableStats
}

// Contracts normalizes the raw contract roster. All ten required
// columns must be present or a *MissingColumnsError is returned and
// nothing is processed. Total value is always recomputed as rent plus
// service with absent values read as zero.
func (n *Normalizer) Contracts(t *tabular.Table) (*ContractTable, error) {
	columns, err := requireColumns(t, KindContracts, ContractColumns)
	if err != nil {
		return nil, err
	}

	out := &ContractTable{Records: make([]ContractRecord, 0, len(t.Rows))}
	out.Stats.InputRows = len(t.Rows)

	for i := range t.Rows {
		if blankRow(t.Rows[i]) {
			continue
		}
		cell := func(name string) string { return t.Cell(i, columns[name]) }

		rent := parseAmount(cell("Rent As per Contract"))
		service := parseAmount(cell("Service as per Contract"))

		record := ContractRecord{
			Tenant:                  strings.TrimSpace(cell("Tenants")),
			ContractReference:       strings.TrimSpace(cell("Contract Reference")),
			StartDate:               n.parseDate(cell("Start Date")),
			EndDate:                 n.parseDate(cell("End Date")),
			NumberOfCheques:         parseCount(cell("No. of Cheques")),
			InstallmentAmount:       parseAmount(cell("Installment Amount")),
			ContractualPeriodMonths: parseCount(cell("Contractual period (months)")),
			MonthsPerCheque:         parseCount(cell("Months Per Cheque")),
			RentAsPerContract:       rent,
			ServiceAsPerContract:    service,
			TotalValue:              rent.Add(service),
		}
		record.ContractCode = refcode.Extract(record.ContractReference)
		if record.ContractCode == "" {
			out.Stats.ExtractionFailures++
		}

		out.Records = append(out.Records, record)
	}

	out.Stats.Records = len(out.Records)
	return out, nil
}
