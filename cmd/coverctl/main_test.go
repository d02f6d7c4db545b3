package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

const reportJSON = `{"generatedAt":"2024-06-15T09:30:00Z","summary":[{"_id":"Pending","count":1,"totalAmount":1000}],"detailedRecords":[{"claimId":"CLM100","patientName":"Ada, Countess","amount":1000}]}`

type backendStub struct {
	calls     atomic.Int64
	seedFails bool

	mu        sync.Mutex
	lastQuery string
}

func (b *backendStub) query() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastQuery
}

func (b *backendStub) start(t *testing.T) string {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/initialize", func(w http.ResponseWriter, _ *http.Request) {
		b.calls.Add(1)
		if b.seedFails {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"seed failed"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /api/employees", func(w http.ResponseWriter, _ *http.Request) {
		b.calls.Add(1)
		_, _ = w.Write([]byte(`[
			{"_id":"e1","employeeId":"EMP100","firstName":"Ada","lastName":"Lovelace","department":"R&D","position":"Engineer","coveragePlan":"Premium","status":"Active"},
			{"_id":"e2","employeeId":"EMP200","firstName":"Alan","lastName":"Turing","department":"R&D","position":"Researcher","coveragePlan":"Basic","status":"Inactive"}
		]`))
	})
	mux.HandleFunc("GET /api/reports/billing", func(w http.ResponseWriter, r *http.Request) {
		b.calls.Add(1)
		b.mu.Lock()
		b.lastQuery = r.URL.RawQuery
		b.mu.Unlock()
		_, _ = w.Write([]byte(reportJSON))
	})
	mux.HandleFunc("GET /api/{collection}", func(w http.ResponseWriter, _ *http.Request) {
		b.calls.Add(1)
		_, _ = w.Write([]byte(`[]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

func fixedNow() time.Time { return time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC) }

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr, fixedNow)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestSeed(t *testing.T) {
	b := &backendStub{}
	url := b.start(t)

	out, _, err := runCmd(t, "seed", "--backend", url)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !strings.Contains(out, "sample data initialized") {
		t.Fatalf("out=%q", out)
	}
}

func TestSeed_ReportsFailure(t *testing.T) {
	b := &backendStub{seedFails: true}
	url := b.start(t)

	_, stderr, err := runCmd(t, "seed", "--backend", url)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "seed failed") {
		t.Fatalf("err=%v", err)
	}
	if !strings.Contains(stderr, "Error:") {
		t.Fatalf("stderr=%q", stderr)
	}
}

func TestList_FiltersAndPrintsTable(t *testing.T) {
	b := &backendStub{}
	url := b.start(t)

	out, _, err := runCmd(t, "list", "employees", "--backend", url, "--search", "ada")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !strings.Contains(out, "Employee ID") || !strings.Contains(out, "Ada Lovelace") {
		t.Fatalf("out=%q", out)
	}
	if strings.Contains(out, "Alan Turing") || strings.Contains(out, "Actions") {
		t.Fatalf("out=%q", out)
	}
}

func TestList_Expr(t *testing.T) {
	b := &backendStub{}
	url := b.start(t)

	out, _, err := runCmd(t, "list", "employees", "--backend", url, "--expr", `record.status == "Inactive"`)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !strings.Contains(out, "Alan Turing") || strings.Contains(out, "Ada Lovelace") {
		t.Fatalf("out=%q", out)
	}
}

func TestList_InvalidExpr(t *testing.T) {
	b := &backendStub{}
	url := b.start(t)

	if _, _, err := runCmd(t, "list", "employees", "--backend", url, "--expr", "record.("); err == nil {
		t.Fatal("expected error")
	}
}

func TestList_EmptyBilling(t *testing.T) {
	b := &backendStub{}
	url := b.start(t)

	out, _, err := runCmd(t, "list", "billing", "--backend", url)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !strings.Contains(out, "No records found") || !strings.Contains(out, "pending=0 processed=0 total=$0") {
		t.Fatalf("out=%q", out)
	}
}

func TestList_UnknownKind(t *testing.T) {
	b := &backendStub{}
	url := b.start(t)

	_, _, err := runCmd(t, "list", "dashboard", "--backend", url)
	if err == nil || !strings.Contains(err.Error(), "unknown kind") {
		t.Fatalf("err=%v", err)
	}
	if b.calls.Load() != 0 {
		t.Fatalf("calls=%d", b.calls.Load())
	}
}

func TestReport_WritesDefaultFileName(t *testing.T) {
	b := &backendStub{}
	url := b.start(t)

	dir := t.TempDir()
	t.Chdir(dir)

	out, _, err := runCmd(t, "report", "--backend", url, "--start", "2024-06-01", "--end", "2024-06-15")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !strings.Contains(out, "wrote 1 records to billing_report_2024-06-15.csv") {
		t.Fatalf("out=%q", out)
	}
	body, err := os.ReadFile(filepath.Join(dir, "billing_report_2024-06-15.csv"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if want := "claimId,patientName,amount\nCLM100,\"Ada, Countess\",1000\n"; string(body) != want {
		t.Fatalf("csv=%q", body)
	}
	if q := b.query(); q != "end_date=2024-06-15&start_date=2024-06-01" {
		t.Fatalf("query=%q", q)
	}
}

func TestReport_Stdout(t *testing.T) {
	b := &backendStub{}
	url := b.start(t)

	out, _, err := runCmd(t, "report", "--backend", url, "--start", "2024-06-01", "--end", "2024-06-15", "--out", "-")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !strings.HasPrefix(out, "claimId,patientName,amount\n") {
		t.Fatalf("out=%q", out)
	}
}

func TestReport_InvalidRange(t *testing.T) {
	b := &backendStub{}
	url := b.start(t)

	_, _, err := runCmd(t, "report", "--backend", url, "--start", "2024-06-15", "--end", "2024-06-01")
	if err == nil || !strings.Contains(err.Error(), "end date is before start date") {
		t.Fatalf("err=%v", err)
	}
	if b.calls.Load() != 0 {
		t.Fatalf("calls=%d", b.calls.Load())
	}
}
