package session

import (
	"sync"
	"testing"
	"time"

	"github.com/pigeonworks-llc/tenancy-recon/pkg/normalize"
)

func TestSnapshotEmpty(t *testing.T) {
	m := NewManager()

	state := m.Snapshot()
	if state.Contracts != nil {
		t.Errorf("Contracts = %+v, expected nil before any upload", state.Contracts)
	}
	if state.Invoices != nil {
		t.Errorf("Invoices = %+v, expected nil before any upload", state.Invoices)
	}
}

func TestSetContractsReplacesWholeSlot(t *testing.T) {
	m := NewManager()

	m.SetContracts(&ContractsSlot{
		Table:      &normalize.ContractTable{Stats: normalize.TableStats{Records: 3}},
		Filename:   "contracts.csv",
		RunID:      "run-1",
		UploadedAt: time.Now(),
	})
	if got := m.Snapshot().Contracts; got == nil || got.Table == nil {
		t.Fatal("contracts slot not set after successful upload")
	}

	// A failed re-upload replaces the slot entirely; the old table
	// must not survive alongside the failure.
	m.SetContracts(&ContractsSlot{
		Failure: &Failure{
			Kind:    FailureMissingColumns,
			Message: "contracts table is missing required columns",
			Missing: []string{"Start Date"},
		},
		Filename: "contracts-broken.csv",
		RunID:    "run-2",
	})

	got := m.Snapshot().Contracts
	if got.Table != nil {
		t.Error("stale table survived a failed re-upload")
	}
	if got.Failure == nil || got.Failure.Kind != FailureMissingColumns {
		t.Errorf("Failure = %+v, expected missing columns failure", got.Failure)
	}
	if got.RunID != "run-2" {
		t.Errorf("RunID = %q, expected %q", got.RunID, "run-2")
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	m := NewManager()

	m.SetContracts(&ContractsSlot{Filename: "c.csv", RunID: "c-1"})
	m.SetInvoices(&InvoicesSlot{Filename: "i.csv", RunID: "i-1"})
	m.SetContracts(&ContractsSlot{Filename: "c2.csv", RunID: "c-2"})

	state := m.Snapshot()
	if state.Contracts.RunID != "c-2" {
		t.Errorf("Contracts.RunID = %q, expected %q", state.Contracts.RunID, "c-2")
	}
	if state.Invoices.RunID != "i-1" {
		t.Errorf("Invoices.RunID = %q, expected %q", state.Invoices.RunID, "i-1")
	}
}

func TestConcurrentAccess(t *testing.T) {
	m := NewManager()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.SetContracts(&ContractsSlot{RunID: "w"})
				m.SetInvoices(&InvoicesSlot{RunID: "w"})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				state := m.Snapshot()
				if state.Contracts != nil && state.Contracts.RunID == "" {
					t.Error("snapshot observed a half-written slot")
					return
				}
			}
		}()
	}
	wg.Wait()
}
