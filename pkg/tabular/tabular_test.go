package tabular

import (
	"bytes"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	input := "Name,Amount\nAlpha,100\nBeta,200\n"

	table, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if len(table.Headers) != 2 || table.Headers[0] != "Name" || table.Headers[1] != "Amount" {
		t.Errorf("unexpected headers: %v", table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[1][0] != "Beta" {
		t.Errorf("Rows[1][0] = %q, expected %q", table.Rows[1][0], "Beta")
	}
}

func TestReadStripsByteOrderMark(t *testing.T) {
	input := "\uFEFFName,Amount\nAlpha,100\n"

	table, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if table.Headers[0] != "Name" {
		t.Errorf("Headers[0] = %q, expected BOM to be stripped", table.Headers[0])
	}
}

func TestReadRaggedRows(t *testing.T) {
	input := "A,B,C\n1,2\n1,2,3,4\n"

	table, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got := table.Cell(0, 2); got != "" {
		t.Errorf("Cell(0, 2) = %q, expected empty for short row", got)
	}
	if got := table.Cell(1, 2); got != "3" {
		t.Errorf("Cell(1, 2) = %q, expected %q", got, "3")
	}
}

func TestReadEmptyInput(t *testing.T) {
	if _, err := Read(strings.NewReader("")); err == nil {
		t.Error("expected error for input without a header row")
	}
}

func TestColumn(t *testing.T) {
	table := &Table{Headers: []string{"Start Date", "End Date"}}

	tests := []struct {
		name     string
		header   string
		expected int
	}{
		{"exact match", "Start Date", 0},
		{"second column", "End Date", 1},
		{"case mismatch", "start date", -1},
		{"whitespace variant", "Start Date ", -1},
		{"absent", "Tenants", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Column(tt.header); got != tt.expected {
				t.Errorf("Column(%q) = %d, expected %d", tt.header, got, tt.expected)
			}
		})
	}
}

func TestCellOutOfRange(t *testing.T) {
	table := &Table{Headers: []string{"A"}, Rows: [][]string{{"1"}}}

	if got := table.Cell(5, 0); got != "" {
		t.Errorf("Cell(5, 0) = %q, expected empty", got)
	}
	if got := table.Cell(0, 5); got != "" {
		t.Errorf("Cell(0, 5) = %q, expected empty", got)
	}
	if got := table.Cell(-1, -1); got != "" {
		t.Errorf("Cell(-1, -1) = %q, expected empty", got)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	original := &Table{
		Headers: []string{"Name", "Reference"},
		Rows: [][]string{
			{"Alpha Trading", "KSV/227"},
			{"quoted, name", "R25/KSV/227 - 6"},
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	parsed, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() after Write error = %v", err)
	}

	if len(parsed.Rows) != len(original.Rows) {
		t.Fatalf("round trip changed row count: %d != %d", len(parsed.Rows), len(original.Rows))
	}
	for i := range original.Rows {
		for j := range original.Rows[i] {
			if parsed.Rows[i][j] != original.Rows[i][j] {
				t.Errorf("round trip changed cell [%d][%d]: %q != %q", i, j, parsed.Rows[i][j], original.Rows[i][j])
			}
		}
	}
}
