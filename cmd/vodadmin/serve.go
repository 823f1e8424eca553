package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"vodadmin/internal/auth"
	"vodadmin/internal/catalog"
	"vodadmin/internal/config"
	"vodadmin/internal/session"
	"vodadmin/internal/web"
)

const (
	janitorInterval = 10 * time.Minute
	shutdownTimeout = 10 * time.Second
)

func newServeCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the admin panel HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return serve(ctx, cc)
		},
	}
}

func serve(ctx context.Context, cc *commandContext) error {
	cfg, log := cc.cfg, cc.log

	store, err := openStore(ctx, cfg.Session, log)
	if err != nil {
		return err
	}
	defer store.Close()
	go session.RunJanitor(ctx, store, janitorInterval, log)

	client := cc.client()
	sessions := session.NewManager(store, session.ManagerOptions{
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Server.CookieSecure,
		TTL:        cfg.Session.TTL,
	})
	srv, err := web.New(web.Deps{
		API:            client,
		Sessions:       sessions,
		Auth:           auth.NewService(client, sessions, log),
		Lookups:        catalog.NewLookups(cfg.Lookups.TTL),
		Logger:         log,
		MetricsToken:   cfg.Server.MetricsToken,
		LoginRateLimit: cfg.Server.LoginRateLimit,
	})
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()
	log.Info().
		Str("addr", cfg.Server.Addr).
		Str("backend", cfg.Backend.BaseURL).
		Str("sessions", cfg.Session.Backend).
		Msg("admin panel listening")

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg config.SessionConfig, log zerolog.Logger) (session.Store, error) {
	switch cfg.Backend {
	case "postgres":
		pg, err := session.NewPostgres(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		return pg, nil
	case "scylla":
		sc, err := session.NewScylla(ctx, session.ScyllaOptions{
			Hosts:       cfg.ScyllaHosts,
			Port:        cfg.ScyllaPort,
			Keyspace:    cfg.Keyspace,
			Consistency: cfg.Consistency,
			Replication: cfg.Replication,
		}, log)
		if err != nil {
			return nil, err
		}
		return sc, nil
	case "", "memory":
		return session.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
}
