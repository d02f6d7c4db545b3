package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jacksonlee411/medcover-console/internal/config"
	"github.com/jacksonlee411/medcover-console/internal/console"
	"github.com/jacksonlee411/medcover-console/internal/routing"
	"github.com/jacksonlee411/medcover-console/internal/server"
	"github.com/jacksonlee411/medcover-console/modules/coverage/infrastructure/backend"
	"github.com/jacksonlee411/medcover-console/modules/coverage/presentation/viewmodels"
	"github.com/jacksonlee411/medcover-console/modules/coverage/services"
	"github.com/jacksonlee411/medcover-console/pkg/authz"
	"github.com/jacksonlee411/medcover-console/pkg/dict"
	"github.com/jacksonlee411/medcover-console/pkg/logger"
)

const shutdownGrace = 5 * time.Second

func main() {
	log := logger.New().With("server")

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("load config")
		os.Exit(1)
	}
	root := logger.NewFromConfig(logger.Config{Level: cfg.LogLevel})
	log = root.With("server")

	if err := run(cfg, root, log); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func run(cfg config.Config, root *logger.Logger, log *logger.Logger) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	if err := cfg.ResolvePaths(wd); err != nil {
		return err
	}
	if err := dict.RegisterResolver(viewmodels.Dictionaries()); err != nil {
		return err
	}

	gw, err := backend.New(cfg.BackendURL,
		backend.WithTimeout(cfg.RequestTimeout),
		backend.WithLogger(root),
	)
	if err != nil {
		return err
	}

	allowlist, err := routing.LoadAllowlist(cfg.AllowlistPath)
	if err != nil {
		return err
	}

	opts := server.HandlerOptions{
		Allowlist: allowlist,
		Subject:   authz.SubjectFromRole(cfg.ConsoleRole),
		Logger:    root,
	}
	if cfg.AuthzMode != authz.ModeDisabled {
		a, err := authz.NewAuthorizer(cfg.AuthzModelPath, cfg.AuthzPolicyPath, cfg.AuthzMode)
		if err != nil {
			return err
		}
		opts.Authorizer = a
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := console.New(gw, services.NewCache(), console.Options{
		Logger:         root,
		RequestTimeout: cfg.RequestTimeout,
		SearchDebounce: cfg.SearchDebounce,
	})
	if cfg.SeedOnStart {
		app.Seed(ctx)
	}
	opts.App = app

	h, err := server.NewHandler(opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.HTTPAddr).
			Str("backend", cfg.BackendURL).
			Str("authz_mode", string(cfg.AuthzMode)).
			Msg("console listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
