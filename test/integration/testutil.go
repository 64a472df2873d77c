package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pigeonworks-llc/tenancy-recon/internal/api"
	"github.com/pigeonworks-llc/tenancy-recon/internal/db"
	"github.com/pigeonworks-llc/tenancy-recon/internal/session"
	"github.com/pigeonworks-llc/tenancy-recon/internal/view"
	"github.com/pigeonworks-llc/tenancy-recon/pkg/config"
)

// testClient wraps the test server with upload and query helpers.
type testClient struct {
	server *httptest.Server
}

func setupTestServer(t *testing.T) *testClient {
	t.Helper()

	// Each test gets its own named in-memory database so runs never
	// bleed between tests.
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "0",
			MaxUploadBytes: 10 << 20,
			DBDSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		},
		LogLevel: "info",
	}

	conn, err := db.Open(cfg.Server.DBDSN)
	if err != nil {
		t.Fatalf("failed to open run history store: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})

	views, err := view.New()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := api.NewHandler(logger, cfg, session.NewManager(), db.NewRunHistory(conn), views)

	server := httptest.NewServer(handler.Routes())
	t.Cleanup(server.Close)

	return &testClient{server: server}
}

// tryUpload posts a CSV file as a multipart upload. The default client
// follows the 303 redirect, so the response is the dashboard page.
func (c *testClient) tryUpload(path, filename, csvBody string) (*http.Response, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(part, csvBody); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	return http.Post(c.server.URL+path, mw.FormDataContentType(), &buf)
}

// upload posts a CSV file and fails the test on transport errors.
func (c *testClient) upload(t *testing.T, path, filename, csvBody string) *http.Response {
	t.Helper()

	resp, err := c.tryUpload(path, filename, csvBody)
	if err != nil {
		t.Fatalf("upload to %s failed: %v", path, err)
	}
	return resp
}

// mustUpload uploads and requires the dashboard redirect to land on 200.
func (c *testClient) mustUpload(t *testing.T, path, filename, csvBody string) {
	t.Helper()

	resp := c.upload(t, path, filename, csvBody)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload to %s returned status %d", path, resp.StatusCode)
	}
}

// getJSON fetches a path and decodes the JSON response into out.
func (c *testClient) getJSON(t *testing.T, path string, out interface{}) int {
	t.Helper()

	resp, err := http.Get(c.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode %s response: %v", path, err)
	}
	return resp.StatusCode
}

// getBody fetches a path and returns status and body text.
func (c *testClient) getBody(t *testing.T, path string) (int, string) {
	t.Helper()

	resp, err := http.Get(c.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read %s body: %v", path, err)
	}
	return resp.StatusCode, string(body)
}

// contractsCSV builds a contract roster with the required header row.
func contractsCSV(rows ...string) string {
	header := "Tenants,Contract Reference,Start Date,End Date,No. of Cheques,Installment Amount,Contractual period (months),Months Per Cheque,Rent As per Contract,Service as per Contract"
	return strings.Join(append([]string{header}, rows...), "\n") + "\n"
}

// invoicesCSV builds a transaction log with the required header row.
func invoicesCSV(rows ...string) string {
	header := "Date,Transaction Type,No.,Name,Amount"
	return strings.Join(append([]string{header}, rows...), "\n") + "\n"
}

// fixtureContracts covers a matched code (KSV/227), a code absent from
// the invoice log (RIS/125) and a reference that defeats extraction.
func fixtureContracts() string {
	return contractsCSV(
		"Al Noor Trading,R25/KSV/227 - 6,15-01-2024,10-03-2024,4,1000,12,3,9000,3000",
		"Gulf Services,JA588/AUG24/RIS/125,01-02-2024,01-04-2024,2,2500,12,6,20000,4000",
		"Desert Flowers,no reference here,05-03-2024,05-05-2024,1,800,6,6,4000,800",
	)
}

// fixtureInvoices covers the matched code twice, a code with no
// contract (TWR-2/915), a filtered non-invoice row and a reference
// that defeats extraction.
func fixtureInvoices() string {
	return invoicesCSV(
		"05-02-2024,Invoice,INV-001 KSV/227,Al Noor Trading,1000",
		"07-03-2024,INVOICE,INV-002 KSV/227,Al Noor Trading,1000",
		"10-02-2024,Receipt,RCPT-77 KSV/227,Al Noor Trading,1000",
		"12-02-2024,Invoice,INV-003 TWR-2/915,Tower Two LLC,5000",
		"15-02-2024,Invoice,no code at all,Walk-in,250",
	)
}
