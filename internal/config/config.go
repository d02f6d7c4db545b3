// Package config loads console settings from an optional .env file and the process
// environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/jacksonlee411/medcover-console/internal/routing"
	"github.com/jacksonlee411/medcover-console/pkg/authz"
	"github.com/jacksonlee411/medcover-console/pkg/logger"
)

const (
	DefaultBackendURL     = "http://localhost:5000/api"
	DefaultHTTPAddr       = ":8080"
	DefaultRequestTimeout = 10 * time.Second
	DefaultSearchDebounce = 300 * time.Millisecond
	DefaultModelPath      = "config/access/model.conf"
	DefaultPolicyPath     = "config/access/policy.csv"
)

type Config struct {
	BackendURL     string
	HTTPAddr       string
	RequestTimeout time.Duration
	SearchDebounce time.Duration
	SeedOnStart    bool
	LogLevel       string

	AllowlistPath   string
	AuthzMode       authz.Mode
	AuthzModelPath  string
	AuthzPolicyPath string
	ConsoleRole     string
}

// Load reads .env from the working directory when present; variables already set in
// the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an environment lookup function.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := Config{
		BackendURL:  strings.TrimRight(get("BACKEND_URL", DefaultBackendURL), "/"),
		HTTPAddr:    get("HTTP_ADDR", DefaultHTTPAddr),
		LogLevel:    strings.ToLower(get("LOG_LEVEL", "info")),
		ConsoleRole: strings.ToLower(get("CONSOLE_ROLE", authz.RoleOperator)),
	}

	u, err := url.Parse(cfg.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Config{}, fmt.Errorf("config: invalid BACKEND_URL %q", cfg.BackendURL)
	}

	if cfg.RequestTimeout, err = positiveDuration("REQUEST_TIMEOUT", get("REQUEST_TIMEOUT", ""), DefaultRequestTimeout); err != nil {
		return Config{}, err
	}
	if cfg.SearchDebounce, err = positiveDuration("SEARCH_DEBOUNCE", get("SEARCH_DEBOUNCE", ""), DefaultSearchDebounce); err != nil {
		return Config{}, err
	}

	seed := get("SEED_ON_START", "true")
	if cfg.SeedOnStart, err = strconv.ParseBool(seed); err != nil {
		return Config{}, fmt.Errorf("config: invalid SEED_ON_START %q", seed)
	}

	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if cfg.AuthzMode, err = authz.ParseMode(get("AUTHZ_MODE", ""), get("AUTHZ_UNSAFE_ALLOW_DISABLED", "") == "1"); err != nil {
		return Config{}, err
	}
	switch cfg.ConsoleRole {
	case authz.RoleOperator, authz.RoleViewer:
	default:
		return Config{}, fmt.Errorf("config: invalid CONSOLE_ROLE %q (expected operator|viewer)", cfg.ConsoleRole)
	}

	cfg.AllowlistPath = get("ALLOWLIST_PATH", "")
	cfg.AuthzModelPath = get("AUTHZ_MODEL_PATH", "")
	cfg.AuthzPolicyPath = get("AUTHZ_POLICY_PATH", "")
	return cfg, nil
}

func positiveDuration(key, raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("config: invalid %s %q", key, raw)
	}
	return d, nil
}

// ResolvePaths fills unset file paths by walking up from dir, so binaries work from
// any directory inside the repository.
func (c *Config) ResolvePaths(dir string) error {
	resolve := func(target *string, rel string) error {
		if *target != "" {
			return nil
		}
		p, err := routing.FindUp(dir, rel)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		*target = filepath.Clean(p)
		return nil
	}
	if err := resolve(&c.AllowlistPath, routing.DefaultAllowlistPath); err != nil {
		return err
	}
	if c.AuthzMode == authz.ModeDisabled {
		return nil
	}
	if err := resolve(&c.AuthzModelPath, DefaultModelPath); err != nil {
		return err
	}
	return resolve(&c.AuthzPolicyPath, DefaultPolicyPath)
}
