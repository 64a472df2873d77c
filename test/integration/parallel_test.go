package integration

import (
	"net/http"
	"sync"
	"testing"
)

// TestConcurrentReadsDuringUploads hammers the report endpoints while
// uploads keep replacing the session state. Run with -race; a reader
// must never observe a half-swapped snapshot or a non-200 response.
func TestConcurrentReadsDuringUploads(t *testing.T) {
	c := setupTestServer(t)

	c.mustUpload(t, "/upload/contracts", "contracts.csv", fixtureContracts())
	c.mustUpload(t, "/upload/invoices", "invoices.csv", fixtureInvoices())

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			resp, err := c.tryUpload("/upload/invoices", "invoices.csv", fixtureInvoices())
			if err != nil {
				t.Errorf("upload failed: %v", err)
				return
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Errorf("upload returned status %d", resp.StatusCode)
				return
			}
		}
	}()

	for _, path := range []string{"/api/summary", "/api/reconciliation", "/", "/download/contracts.csv"} {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				resp, err := http.Get(c.server.URL + path)
				if err != nil {
					t.Errorf("GET %s failed: %v", path, err)
					return
				}
				resp.Body.Close()
				if resp.StatusCode != http.StatusOK {
					t.Errorf("GET %s returned status %d", path, resp.StatusCode)
					return
				}
			}
		}(path)
	}

	wg.Wait()
}
