package db

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

// setupTestDB opens a uniquely named shared in-memory database so
// parallel test runs never see each other's rows.
func setupTestDB(t *testing.T) *Connection {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open(%q) returned error: %v", dsn, err)
	}
	t.Cleanup(func() {
		conn.Close()
	})

	return conn
}

func TestOpenInitializesSchema(t *testing.T) {
	conn := setupTestDB(t)

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM run_history`).Scan(&count); err != nil {
		t.Fatalf("querying run_history failed: %v", err)
	}
	if count != 0 {
		t.Errorf("fresh database has %d rows, expected 0", count)
	}
}

func TestRecordAndGetRun(t *testing.T) {
	conn := setupTestDB(t)
	history := NewRunHistory(conn)

	record := RunRecord{
		RunID:              "run-contracts-1",
		TableKind:          "contracts",
		Filename:           "contracts.csv",
		Outcome:            OutcomeMissingColumns,
		Detail:             sql.NullString{String: "missing required columns [Start Date]", Valid: true},
		RowCount:           12,
		RecordCount:        0,
		FilteredCount:      0,
		ExtractionFailures: 0,
	}
	if err := history.RecordRun(record); err != nil {
		t.Fatalf("RecordRun returned error: %v", err)
	}

	got, err := history.GetRun("run-contracts-1")
	if err != nil {
		t.Fatalf("GetRun returned error: %v", err)
	}
	if got == nil {
		t.Fatal("GetRun returned nil for a recorded run")
	}
	if got.TableKind != "contracts" {
		t.Errorf("TableKind = %q, expected %q", got.TableKind, "contracts")
	}
	if got.Outcome != OutcomeMissingColumns {
		t.Errorf("Outcome = %q, expected %q", got.Outcome, OutcomeMissingColumns)
	}
	if !got.Detail.Valid || got.Detail.String != record.Detail.String {
		t.Errorf("Detail = %+v, expected %+v", got.Detail, record.Detail)
	}
	if got.RowCount != 12 {
		t.Errorf("RowCount = %d, expected 12", got.RowCount)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}
}

func TestGetRunUnknownID(t *testing.T) {
	conn := setupTestDB(t)
	history := NewRunHistory(conn)

	got, err := history.GetRun("no-such-run")
	if err != nil {
		t.Fatalf("GetRun returned error: %v", err)
	}
	if got != nil {
		t.Errorf("GetRun = %+v, expected nil for unknown run ID", got)
	}
}

func TestRecordRunDuplicateRunID(t *testing.T) {
	conn := setupTestDB(t)
	history := NewRunHistory(conn)

	record := RunRecord{RunID: "dup", TableKind: "invoices", Filename: "a.csv", Outcome: OutcomeOK}
	if err := history.RecordRun(record); err != nil {
		t.Fatalf("first RecordRun returned error: %v", err)
	}
	if err := history.RecordRun(record); err == nil {
		t.Error("second RecordRun with the same run ID succeeded, expected unique constraint error")
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	conn := setupTestDB(t)
	history := NewRunHistory(conn)

	for i := 1; i <= 3; i++ {
		record := RunRecord{
			RunID:     fmt.Sprintf("run-%d", i),
			TableKind: "invoices",
			Filename:  fmt.Sprintf("invoices-%d.csv", i),
			Outcome:   OutcomeOK,
		}
		if err := history.RecordRun(record); err != nil {
			t.Fatalf("RecordRun(%d) returned error: %v", i, err)
		}
	}

	runs, err := history.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns returned error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListRuns returned %d records, expected 2", len(runs))
	}
	if runs[0].RunID != "run-3" || runs[1].RunID != "run-2" {
		t.Errorf("ListRuns order = [%s %s], expected [run-3 run-2]", runs[0].RunID, runs[1].RunID)
	}
}

func TestGetStats(t *testing.T) {
	conn := setupTestDB(t)
	history := NewRunHistory(conn)

	records := []RunRecord{
		{RunID: "c1", TableKind: "contracts", Filename: "c.csv", Outcome: OutcomeOK},
		{RunID: "c2", TableKind: "contracts", Filename: "c2.csv", Outcome: OutcomeFailed},
		{RunID: "i1", TableKind: "invoices", Filename: "i.csv", Outcome: OutcomeOK},
	}
	for _, record := range records {
		if err := history.RecordRun(record); err != nil {
			t.Fatalf("RecordRun(%s) returned error: %v", record.RunID, err)
		}
	}

	stats, err := history.GetStats()
	if err != nil {
		t.Fatalf("GetStats returned error: %v", err)
	}
	if stats.TotalRuns != 3 {
		t.Errorf("TotalRuns = %d, expected 3", stats.TotalRuns)
	}
	if stats.ContractRuns != 2 {
		t.Errorf("ContractRuns = %d, expected 2", stats.ContractRuns)
	}
	if stats.InvoiceRuns != 1 {
		t.Errorf("InvoiceRuns = %d, expected 1", stats.InvoiceRuns)
	}
	if !stats.LastContractsRun.Valid {
		t.Error("LastContractsRun is not set after contract runs")
	}
	if !stats.LastInvoicesRun.Valid {
		t.Error("LastInvoicesRun is not set after invoice runs")
	}
}

func TestGetStatsEmpty(t *testing.T) {
	conn := setupTestDB(t)
	history := NewRunHistory(conn)

	stats, err := history.GetStats()
	if err != nil {
		t.Fatalf("GetStats returned error: %v", err)
	}
	if stats.TotalRuns != 0 {
		t.Errorf("TotalRuns = %d, expected 0", stats.TotalRuns)
	}
	if stats.LastContractsRun.Valid {
		t.Errorf("LastContractsRun = %q, expected unset on empty history", stats.LastContractsRun.String)
	}
}
