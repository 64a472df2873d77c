// Package db provides SQLite storage for the upload run history.
package db

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Run history table
-- Tracks every upload processed during this session
CREATE TABLE IF NOT EXISTS run_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL UNIQUE,       -- UUID assigned at upload time
    table_kind TEXT NOT NULL,          -- 'contracts' or 'invoices'
    filename TEXT NOT NULL,            -- Uploaded file name as submitted
    outcome TEXT NOT NULL,             -- 'ok', 'missing_columns' or 'failed'
    detail TEXT,                       -- Error message when outcome != 'ok'
    row_count INTEGER NOT NULL,        -- Data rows seen in the input
    record_count INTEGER NOT NULL,     -- Records normalized successfully
    filtered_count INTEGER NOT NULL,   -- Rows dropped by the type filter
    extraction_failures INTEGER NOT NULL, -- Rows whose code extraction came up empty
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_run_history_kind
    ON run_history(table_kind);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
