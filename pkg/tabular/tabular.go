// Package tabular reads and writes the delimited-text tables exchanged
// with the user: UTF-8 CSV with a header row.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Table is an in-memory table: a header row plus data rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Read parses CSV from r into a Table. The first record is the header
// row; a UTF-8 byte order mark in front of it is stripped. Rows may be
// shorter than the header (hand-edited exports drop trailing empties);
// missing cells read back as "".
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse delimited text: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("input has no header row")
	}

	headers := records[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\uFEFF")
	}

	return &Table{Headers: headers, Rows: records[1:]}, nil
}

// Write serializes the table as CSV, header row first.
func Write(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	for i, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Column returns the index of the header exactly matching name, or -1.
// Matching is case-sensitive and does not trim whitespace; near-miss
// headers are meant to surface as missing columns, not silently match.
func (t *Table) Column(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at row r, column c, or "" when out of range.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	cells := t.Rows[row]
	if col >= len(cells) {
		return ""
	}
	return cells[col]
}
