package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/jacksonlee411/medcover-console/internal/routing"
	"github.com/jacksonlee411/medcover-console/pkg/authz"
	"github.com/jacksonlee411/medcover-console/pkg/logger"
)

type stubAuthorizer struct {
	allowed  bool
	enforced bool
	err      error
}

func (a stubAuthorizer) Authorize(string, string, string) (bool, bool, error) {
	return a.allowed, a.enforced, a.err
}

func mustTestClassifier(t *testing.T) *routing.Classifier {
	t.Helper()
	c, err := routing.NewClassifier(routing.Allowlist{Version: 1, Entrypoints: map[string]routing.Entrypoint{
		"console": {Routes: []routing.Route{{Path: "/health", Methods: []string{"GET"}, RouteClass: "ops"}}},
	}}, "console")
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestWithAuthz_SkipsUnprotectedRoutes(t *testing.T) {
	for _, p := range []string{"/health", "/assets/app.css", "/app/state", "/app/notifications"} {
		called := false
		h := withAuthz(mustTestClassifier(t), stubAuthorizer{allowed: false, enforced: true}, "role:viewer", logger.Nop(), okHandler(&called))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
		if rec.Code != http.StatusOK || !called {
			t.Fatalf("%s status=%d called=%v", p, rec.Code, called)
		}
	}
}

func TestWithAuthz_EnforcedDeny(t *testing.T) {
	called := false
	h := withAuthz(mustTestClassifier(t), stubAuthorizer{allowed: false, enforced: true}, "role:viewer", logger.Nop(), okHandler(&called))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/app/employees", nil))
	if rec.Code != http.StatusForbidden || called {
		t.Fatalf("status=%d called=%v", rec.Code, called)
	}
}

func TestWithAuthz_ShadowDenyPassesThrough(t *testing.T) {
	called := false
	h := withAuthz(mustTestClassifier(t), stubAuthorizer{allowed: false, enforced: false}, "role:viewer", logger.Nop(), okHandler(&called))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/app/employees", nil))
	if rec.Code != http.StatusOK || !called {
		t.Fatalf("status=%d called=%v", rec.Code, called)
	}
}

func TestWithAuthz_Error(t *testing.T) {
	called := false
	h := withAuthz(mustTestClassifier(t), stubAuthorizer{err: errors.New("boom")}, "role:viewer", logger.Nop(), okHandler(&called))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app/employees", nil))
	if rec.Code != http.StatusInternalServerError || called {
		t.Fatalf("status=%d called=%v", rec.Code, called)
	}
}

func TestWithAuthz_NilAuthorizer(t *testing.T) {
	called := false
	h := withAuthz(nil, nil, "", logger.Nop(), okHandler(&called))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/app/employees", nil))
	if !called {
		t.Fatal("expected pass through")
	}
}

func TestAuthzRequirementForRoute(t *testing.T) {
	cases := []struct {
		method, path   string
		object, action string
		ok             bool
	}{
		{http.MethodGet, "/app/dashboard", authz.ObjectDashboard, authz.ActionRead, true},
		{http.MethodGet, "/app/employees", authz.ObjectEmployees, authz.ActionRead, true},
		{http.MethodGet, "/app/employees/search", authz.ObjectEmployees, authz.ActionRead, true},
		{http.MethodGet, "/app/beneficiaries/b1", authz.ObjectBeneficiaries, authz.ActionRead, true},
		{http.MethodGet, "/app/services/new", authz.ObjectServices, authz.ActionWrite, true},
		{http.MethodGet, "/app/billing/c1/edit", authz.ObjectBilling, authz.ActionWrite, true},
		{http.MethodGet, "/app/employees/e1/delete", authz.ObjectEmployees, authz.ActionWrite, true},
		{http.MethodPost, "/app/policies", authz.ObjectPolicies, authz.ActionWrite, true},
		{http.MethodGet, "/app/reports/billing", authz.ObjectReportsBilling, authz.ActionRead, true},
		{http.MethodPost, "/app/reports/billing", authz.ObjectReportsBilling, authz.ActionRead, true},
		{http.MethodGet, "/app/reports/billing.csv", authz.ObjectReportsBilling, authz.ActionRead, true},
		{http.MethodPost, "/app/modal/close", "", "", false},
		{http.MethodGet, "/app/payroll", "", "", false},
		{http.MethodGet, "/healthz", "", "", false},
	}
	for _, tc := range cases {
		object, action, ok := authzRequirementForRoute(tc.method, tc.path)
		if object != tc.object || action != tc.action || ok != tc.ok {
			t.Fatalf("%s %s: got (%q,%q,%v)", tc.method, tc.path, object, action, ok)
		}
	}
}

func mustRepoAuthorizer(t *testing.T, mode authz.Mode) *authz.Authorizer {
	t.Helper()
	model, err := routing.FindUp(".", "config/access/model.conf")
	if err != nil {
		t.Fatal(err)
	}
	policy, err := routing.FindUp(".", "config/access/policy.csv")
	if err != nil {
		t.Fatal(err)
	}
	a, err := authz.NewAuthorizer(model, policy, mode)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestHandler_ViewerCannotWrite(t *testing.T) {
	env := newTestEnv(t, envOptions{
		authorizer: mustRepoAuthorizer(t, authz.ModeEnforce),
		subject:    authz.SubjectFromRole(authz.RoleViewer),
	})
	if rec := env.do(t, http.MethodGet, "/app/employees", nil, true); rec.Code != http.StatusOK {
		t.Fatalf("read status=%d", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/app/employees/new", nil, true); rec.Code != http.StatusForbidden {
		t.Fatalf("open form status=%d", rec.Code)
	}
	if rec := env.do(t, http.MethodPost, "/app/employees", employeeForm(), true); rec.Code != http.StatusForbidden {
		t.Fatalf("write status=%d", rec.Code)
	}
	if len(env.backend.created) != 0 {
		t.Fatal("forbidden write reached the backend")
	}
	if rec := env.do(t, http.MethodGet, "/app/reports/billing", nil, true); rec.Code != http.StatusOK {
		t.Fatalf("report status=%d", rec.Code)
	}
}

func TestHandler_OperatorCanWrite(t *testing.T) {
	env := newTestEnv(t, envOptions{
		authorizer: mustRepoAuthorizer(t, authz.ModeEnforce),
		subject:    authz.SubjectFromRole(authz.RoleOperator),
	})
	if rec := env.do(t, http.MethodPost, "/app/employees", employeeForm(), true); rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	if len(env.backend.created) != 1 {
		t.Fatalf("created=%d", len(env.backend.created))
	}
}

func TestHandler_ShadowModeLetsAnonymousThrough(t *testing.T) {
	env := newTestEnv(t, envOptions{
		authorizer: mustRepoAuthorizer(t, authz.ModeShadow),
		subject:    authz.SubjectFromRole(""),
	})
	rec := env.do(t, http.MethodPost, "/app/employees/e1/delete", url.Values{"confirm": {"yes"}}, true)
	if rec.Code != http.StatusOK || len(env.backend.deleted) != 1 {
		t.Fatalf("status=%d deleted=%v", rec.Code, env.backend.deleted)
	}
}
