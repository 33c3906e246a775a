package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sitesmith/sitesmith/internal/editor"
	"github.com/sitesmith/sitesmith/internal/fork"
	"github.com/sitesmith/sitesmith/internal/live"
	"github.com/sitesmith/sitesmith/internal/materialize"
	"github.com/sitesmith/sitesmith/internal/publish"
	"github.com/sitesmith/sitesmith/internal/registry"
	"github.com/sitesmith/sitesmith/internal/serve"
	"github.com/sitesmith/sitesmith/internal/sitecfg"
	"github.com/sitesmith/sitesmith/internal/store"
	"github.com/sitesmith/sitesmith/internal/store/postgres"
)

func serveCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server.

Serves published websites under /sites/{slug}, owner previews under
/preview/{slug}, the builder API under /api/v1, live canvas updates under
/live/{pageID}, and Prometheus metrics under /metrics. Custom domains
resolve at the root path.

Examples:
  sitesmith serve
  sitesmith serve --addr=:3000
  SITESMITH_DATABASE_URL=postgres://... sitesmith serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*configPath, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides config)")

	return cmd
}

func runServe(configPath, addr string) error {
	cfg, err := sitecfg.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Address = addr
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	st, closeStore, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	reg := registry.New()
	mat := materialize.New(reg, log)

	hub := live.NewHub(func(ctx context.Context, pageID string) (string, error) {
		components, err := st.ComponentsByPage(ctx, pageID)
		if err != nil {
			return "", err
		}
		return mat.RenderCanvas(components)
	}, log)

	srv := serve.New(st, mat, nil, hub, log)
	srv.AttachServices(serve.Services{
		Editor:  editor.NewService(st, reg, hub, log),
		Fork:    fork.NewEngine(st, log),
		Publish: publish.NewService(st, nil, log),
	})

	httpSrv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      srv.Router(),
		ReadTimeout:  parseTimeout(cfg.Server.ReadTimeout, 15*time.Second),
		WriteTimeout: parseTimeout(cfg.Server.WriteTimeout, 15*time.Second),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigCh:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(ctx)
}

// openStore picks PostgreSQL when a database URL is configured and the
// in-memory store otherwise. The close func is a no-op for the latter.
func openStore(cfg *sitecfg.Config, log *zap.Logger) (store.Store, func(), error) {
	if cfg.Database.URL == "" {
		log.Warn("no database configured, using in-memory store")
		return store.NewMemory(), func() {}, nil
	}
	pg, err := postgres.Open(cfg.Database.URL, log)
	if err != nil {
		return nil, nil, err
	}
	return pg, func() { pg.Close() }, nil
}

func parseTimeout(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
