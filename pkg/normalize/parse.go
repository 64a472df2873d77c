package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// defaultDateFormats are tried in order when parsing date cells.
// Day-first forms come before ISO so "02-01-2024" reads as 2 January.
var defaultDateFormats = []string{
	"02-01-2006",
	"2-1-2006",
	"02/01/2006",
	"2/1/2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// DisplayDateFormat is the external date rendering.
const DisplayDateFormat = "02-01-2006"

// FormatDate renders a date in the external DD-MM-YYYY form, blank
// when absent.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DisplayDateFormat)
}

// parseDate parses a date cell against the accepted formats; nil means
// absent or unparseable. Results are truncated to midnight UTC so date
// comparisons never depend on a time-of-day component.
func (n *Normalizer) parseDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	for _, format := range n.dateFormats {
		parsed, err := time.Parse(format, value)
		if err != nil {
			continue
		}
		day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		return &day
	}

	return nil
}

// parseAmount parses a money cell to a decimal. Absent or malformed
// values read as zero; thousands separators and a leading "$" are
// tolerated.
func parseAmount(value string) decimal.Decimal {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	cleaned = strings.TrimPrefix(cleaned, "$")
	if cleaned == "" {
		return decimal.Zero
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// parseCount parses an integer cell. Spreadsheet exports write integer
// columns as floats ("12.0"), so float forms are accepted and truncated.
// Absent or malformed values read as zero.
func parseCount(value string) int {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if cleaned == "" {
		return 0
	}

	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return int(parsed)
}
