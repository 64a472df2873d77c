// Package session holds the uploaded tables for the lifetime of the
// process. Nothing here is persisted; restarting the server starts an
// empty session.
package session

import (
	"sync"
	"time"

	"github.com/pigeonworks-llc/tenancy-recon/pkg/normalize"
)

// Failure kinds, used to pick how a failed upload is rendered.
const (
	FailureMissingColumns = "missing_columns"
	FailureRead           = "read"
	FailureUnexpected     = "unexpected"
)

// Failure describes why the most recent upload for a table produced
// no usable data.
type Failure struct {
	Kind    string
	Message string
	// Missing and Present are populated for FailureMissingColumns so
	// the page can show which headers were expected and which arrived.
	Missing []string
	Present []string
}

// ContractsSlot holds the outcome of the most recent contracts upload.
// Exactly one of Table and Failure is set.
type ContractsSlot struct {
	Table      *normalize.ContractTable
	Failure    *Failure
	Filename   string
	RunID      string
	UploadedAt time.Time
}

// InvoicesSlot holds the outcome of the most recent invoices upload.
// Exactly one of Table and Failure is set.
type InvoicesSlot struct {
	Table      *normalize.InvoiceTable
	Failure    *Failure
	Filename   string
	RunID      string
	UploadedAt time.Time
}

// State is a point-in-time view of both table slots. A nil slot means
// no upload of that kind has been attempted yet.
type State struct {
	Contracts *ContractsSlot
	Invoices  *InvoicesSlot
}

// Manager guards the session state. Writers replace whole slots and
// slots are never mutated after they are published, so a Snapshot can
// be read without further locking.
type Manager struct {
	mu    sync.RWMutex
	state State
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{}
}

// SetContracts replaces the contracts slot.
func (m *Manager) SetContracts(slot *ContractsSlot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Contracts = slot
}

// SetInvoices replaces the invoices slot.
func (m *Manager) SetInvoices(slot *InvoicesSlot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Invoices = slot
}

// Snapshot returns the current state. Both tables come from the same
// moment, so a report never mixes an old roster with a new log.
func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}
