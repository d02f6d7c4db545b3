package routing

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func repoAllowlist(t *testing.T) Allowlist {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("caller")
	}
	path, err := FindUp(filepath.Dir(file), DefaultAllowlistPath)
	if err != nil {
		t.Fatal(err)
	}
	a, err := LoadAllowlist(path)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestGate_RepoAllowlistLoads(t *testing.T) {
	t.Parallel()

	a := repoAllowlist(t)
	if _, err := NewClassifier(a, "console"); err != nil {
		t.Fatalf("err=%v", err)
	}
}

func TestGate_RoutesStayInsideConsoleSurface(t *testing.T) {
	t.Parallel()

	a := repoAllowlist(t)
	for _, r := range a.Entrypoints["console"].Routes {
		switch {
		case r.Path == "/", r.Path == "/health", r.Path == "/healthz":
		case strings.HasPrefix(r.Path, "/app/"), strings.HasPrefix(r.Path, "/assets/"):
		default:
			t.Fatalf("route outside console surface: %s", r.Path)
		}
		if len(r.Methods) == 0 {
			t.Fatalf("route without methods: %s", r.Path)
		}
		for _, m := range r.Methods {
			if m != "GET" && m != "POST" {
				t.Fatalf("unexpected method %s on %s", m, r.Path)
			}
		}
	}
}
