// Command coverctl drives the coverage backend from a terminal: it seeds sample data,
// prints filtered lists and exports billing reports.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jacksonlee411/medcover-console/internal/config"
	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/ports"
	"github.com/jacksonlee411/medcover-console/modules/coverage/infrastructure/backend"
	"github.com/jacksonlee411/medcover-console/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr, time.Now).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	backendURL string
	timeout    time.Duration
	logLevel   string
}

// gatewayFunc is resolved lazily so --help never needs a valid configuration.
type gatewayFunc func() (ports.Gateway, error)

func newRootCmd(stdout, stderr io.Writer, now func() time.Time) *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:          "coverctl",
		Short:        "Operate the medical coverage backend",
		SilenceUsage: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&opts.backendURL, "backend", "", "backend base URL (default BACKEND_URL or "+config.DefaultBackendURL+")")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "per-request timeout (default REQUEST_TIMEOUT or 10s)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level written to stderr")

	gateway := func() (ports.Gateway, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		if opts.backendURL != "" {
			cfg.BackendURL = opts.backendURL
		}
		if opts.timeout > 0 {
			cfg.RequestTimeout = opts.timeout
		}
		level := cfg.LogLevel
		if opts.logLevel != "" {
			level = opts.logLevel
		}
		log := logger.NewFromConfig(logger.Config{Level: level, Output: stderr})
		gw, err := backend.New(cfg.BackendURL, backend.WithTimeout(cfg.RequestTimeout), backend.WithLogger(log))
		if err != nil {
			return nil, fmt.Errorf("coverctl: %w", err)
		}
		return gw, nil
	}

	root.AddCommand(
		newSeedCmd(gateway),
		newListCmd(gateway),
		newReportCmd(gateway, now),
	)
	return root
}
