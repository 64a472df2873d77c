package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Outcome represents how an upload run ended.
type Outcome string

const (
	OutcomeOK             Outcome = "ok"
	OutcomeMissingColumns Outcome = "missing_columns"
	OutcomeFailed         Outcome = "failed"
)

// RunRecord represents one processed upload.
type RunRecord struct {
	ID                 int64
	RunID              string
	TableKind          string
	Filename           string
	Outcome            Outcome
	Detail             sql.NullString
	RowCount           int
	RecordCount        int
	FilteredCount      int
	ExtractionFailures int
	CreatedAt          time.Time
}

// RunHistory manages run history operations.
type RunHistory struct {
	conn *Connection
}

// NewRunHistory creates a new RunHistory instance.
func NewRunHistory(conn *Connection) *RunHistory {
	return &RunHistory{conn: conn}
}

// RecordRun records an upload run.
func (r *RunHistory) RecordRun(record RunRecord) error {
	query := `
		INSERT INTO run_history (run_id, table_kind, filename, outcome, detail,
			row_count, record_count, filtered_count, extraction_failures)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.conn.Exec(query,
		record.RunID,
		record.TableKind,
		record.Filename,
		string(record.Outcome),
		record.Detail,
		record.RowCount,
		record.RecordCount,
		record.FilteredCount,
		record.ExtractionFailures,
	)

	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	return nil
}

// GetRun retrieves a run record by run ID.
func (r *RunHistory) GetRun(runID string) (*RunRecord, error) {
	query := `
		SELECT id, run_id, table_kind, filename, outcome, detail,
			row_count, record_count, filtered_count, extraction_failures, created_at
		FROM run_history
		WHERE run_id = ?
	`

	var record RunRecord
	var outcomeStr string

	err := r.conn.QueryRow(query, runID).Scan(
		&record.ID,
		&record.RunID,
		&record.TableKind,
		&record.Filename,
		&outcomeStr,
		&record.Detail,
		&record.RowCount,
		&record.RecordCount,
		&record.FilteredCount,
		&record.ExtractionFailures,
		&record.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run record: %w", err)
	}

	record.Outcome = Outcome(outcomeStr)
	return &record, nil
}

// ListRuns retrieves the most recent runs, newest first.
// Ordering is by insertion id because created_at only has second
// resolution and consecutive uploads routinely share a timestamp.
func (r *RunHistory) ListRuns(limit int) ([]RunRecord, error) {
	query := `
		SELECT id, run_id, table_kind, filename, outcome, detail,
			row_count, record_count, filtered_count, extraction_failures, created_at
		FROM run_history
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := r.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var record RunRecord
		var outcomeStr string

		if err := rows.Scan(
			&record.ID,
			&record.RunID,
			&record.TableKind,
			&record.Filename,
			&outcomeStr,
			&record.Detail,
			&record.RowCount,
			&record.RecordCount,
			&record.FilteredCount,
			&record.ExtractionFailures,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}

		record.Outcome = Outcome(outcomeStr)
		records = append(records, record)
	}

	return records, nil
}

// Stats represents run history statistics.
type Stats struct {
	TotalRuns        int
	ContractRuns     int
	InvoiceRuns      int
	LastContractsRun sql.NullString
	LastInvoicesRun  sql.NullString
}

// GetStats retrieves run history statistics.
func (r *RunHistory) GetStats() (*Stats, error) {
	var stats Stats

	// Get total run count
	err := r.conn.QueryRow(`SELECT COUNT(*) FROM run_history`).Scan(&stats.TotalRuns)
	if err != nil {
		return nil, fmt.Errorf("failed to get total run count: %w", err)
	}

	// Get contract run count
	err = r.conn.QueryRow(`SELECT COUNT(*) FROM run_history WHERE table_kind = 'contracts'`).Scan(&stats.ContractRuns)
	if err != nil {
		return nil, fmt.Errorf("failed to get contract run count: %w", err)
	}

	// Get invoice run count
	err = r.conn.QueryRow(`SELECT COUNT(*) FROM run_history WHERE table_kind = 'invoices'`).Scan(&stats.InvoiceRuns)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice run count: %w", err)
	}

	// Get last upload times per table
	err = r.conn.QueryRow(`SELECT MAX(created_at) FROM run_history WHERE table_kind = 'contracts'`).Scan(&stats.LastContractsRun)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last contracts run time: %w", err)
	}

	err = r.conn.QueryRow(`SELECT MAX(created_at) FROM run_history WHERE table_kind = 'invoices'`).Scan(&stats.LastInvoicesRun)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last invoices run time: %w", err)
	}

	return &stats, nil
}
