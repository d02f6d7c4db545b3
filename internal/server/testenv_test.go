package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"

	"github.com/jacksonlee411/medcover-console/internal/console"
	"github.com/jacksonlee411/medcover-console/internal/routing"
	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
	"github.com/jacksonlee411/medcover-console/modules/coverage/infrastructure/backend"
	"github.com/jacksonlee411/medcover-console/modules/coverage/services"
)

// fakeBackend serves the REST surface the console talks to, backed by memory.
type fakeBackend struct {
	mu        sync.Mutex
	employees []types.Employee
	created   []types.EmployeeInput
	deleted   []string
	// listGate, when set, runs before the employee list is answered.
	listGate func()
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{employees: []types.Employee{
		{ID: "e1", EmployeeID: "EMP100", FirstName: "Ada", LastName: "Lovelace", Department: "R&D", Position: "Engineer", CoveragePlan: types.PlanPremium, Status: types.StatusActive},
		{ID: "e2", EmployeeID: "EMP200", FirstName: "Alan", LastName: "Turing", Department: "R&D", Position: "Researcher", CoveragePlan: types.PlanBasic, Status: types.StatusInactive},
	}}
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/initialize", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /api/dashboard", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"totalEmployees":2,"totalBeneficiaries":0,"totalServices":0,"totalBilling":0,"chartData":{"serviceUsage":[],"coverageDistribution":[]}}`))
	})
	mux.HandleFunc("GET /api/employees", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		gate := f.listGate
		f.mu.Unlock()
		if gate != nil {
			gate()
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		routing.WriteJSON(w, http.StatusOK, f.employees)
	})
	mux.HandleFunc("GET /api/employees/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, e := range f.employees {
			if e.ID == r.PathValue("id") {
				routing.WriteJSON(w, http.StatusOK, e)
				return
			}
		}
		routing.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "Employee not found"})
	})
	mux.HandleFunc("POST /api/employees", func(w http.ResponseWriter, r *http.Request) {
		var in types.EmployeeInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			routing.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json"})
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.created = append(f.created, in)
		f.employees = append(f.employees, types.Employee{
			ID: "e3", EmployeeID: in.EmployeeID, FirstName: in.FirstName, LastName: in.LastName,
			Department: in.Department, Position: in.Position, CoveragePlan: in.CoveragePlan, Status: in.Status,
		})
		routing.WriteJSON(w, http.StatusCreated, map[string]string{"id": "e3"})
	})
	mux.HandleFunc("DELETE /api/employees/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.deleted = append(f.deleted, r.PathValue("id"))
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /api/reports/billing", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"generatedAt":"2024-06-15T09:30:00Z","summary":[{"_id":"Pending","count":1,"totalAmount":1000}],"detailedRecords":[{"claimId":"CLM100","patientName":"Ada, Countess","amount":1000}]}`))
	})
	mux.HandleFunc("GET /api/{collection}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	return mux
}

type testEnv struct {
	handler http.Handler
	app     *console.App
	backend *fakeBackend
	srv     *httptest.Server
	clock   *clockwork.FakeClock
}

type envOptions struct {
	authorizer authorizer
	subject    string
	debounce   time.Duration
}

func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()
	fb := newFakeBackend()
	srv := httptest.NewServer(fb.handler())
	t.Cleanup(srv.Close)

	gw, err := backend.New(srv.URL + "/api")
	if err != nil {
		t.Fatal(err)
	}
	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC))
	app := console.New(gw, services.NewCache(), console.Options{Clock: clock, SearchDebounce: opts.debounce, RequestTimeout: 5 * time.Second})

	h, err := NewHandler(HandlerOptions{
		App:        app,
		Allowlist:  mustRepoAllowlist(t),
		Authorizer: opts.authorizer,
		Subject:    opts.subject,
	})
	if err != nil {
		t.Fatal(err)
	}
	return &testEnv{handler: h, app: app, backend: fb, srv: srv, clock: clock}
}

func mustRepoAllowlist(t *testing.T) routing.Allowlist {
	t.Helper()
	p, err := routing.FindUp(".", routing.DefaultAllowlistPath)
	if err != nil {
		t.Fatal(err)
	}
	a, err := routing.LoadAllowlist(p)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func (e *testEnv) do(t *testing.T, method string, target string, form url.Values, hx bool) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if hx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req.WithContext(context.Background()))
	return rec
}
