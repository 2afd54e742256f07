package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/inertia/internal/config"
	inerr "github.com/vango-dev/inertia/internal/errors"
	"github.com/vango-dev/inertia/pkg/assets"
	"github.com/vango-dev/inertia/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		pagesPath  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pages of a page table",
		Long: `Serve renders every page declared in a YAML page table with a
built-in component that prints its props.

Settings come from inertia.yaml and INERTIA_* environment variables;
flags override both.

Examples:
  inertia serve --pages pages.yaml
  inertia serve --config deploy/inertia.yaml --addr :9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if pagesPath != "" {
				cfg.Pages = pagesPath
			}
			return runServe(cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./inertia.yaml)")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address")
	cmd.Flags().StringVarP(&pagesPath, "pages", "p", "", "Page table")
	return cmd
}

func runServe(cmd *cobra.Command, cfg *config.Config) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})))
	logger := slog.Default().With("component", "serve")

	if cfg.Pages == "" {
		return inerr.New("E080").WithDetail("no page table").
			WithSuggestion("pass --pages or set pages in inertia.yaml")
	}
	table, err := loadPageTable(cfg.Pages)
	if err != nil {
		return inerr.New("E080").WithDetail(err.Error()).Wrap(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manifest, err := serveManifest(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	srvCfg := server.DefaultConfig(table.Registry().Resolve)
	srvCfg.ID = cfg.ID
	srvCfg.Title = cfg.TitleFunc()
	srvCfg.Entrypoints = cfg.Assets.Entrypoints
	srvCfg.Progress = cfg.ProgressConfig()
	srvCfg.Logger = slog.Default().With("component", "server")
	switch {
	case cfg.Version != "":
		v := cfg.Version
		srvCfg.Version = func() string { return v }
	case manifest != nil:
		srvCfg.Version = manifest.Version
	}
	if manifest != nil {
		srvCfg.Assets = assets.NewResolver(manifest, cfg.Assets.Prefix)
	} else {
		srvCfg.Assets = assets.NewPassthroughResolver(cfg.Assets.Prefix)
	}
	if cfg.Live.Enabled {
		srvCfg.LivePath = cfg.Live.Path
		srvCfg.ReadLimit = cfg.Live.ReadLimit
		srvCfg.PingInterval = cfg.Live.PingInterval
	} else {
		srvCfg.LivePath = ""
	}

	var opts []server.Option
	var metrics *server.Metrics
	if cfg.Metrics.Enabled {
		metrics = server.NewMetrics(server.WithNamespace(cfg.Metrics.Namespace))
		opts = append(opts, server.WithMetrics(metrics))
	}
	srv := server.New(srvCfg, opts...)
	table.Register(srv)
	if metrics != nil {
		srv.Router().Handle(cfg.Metrics.Path, metrics.Handler())
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	success(cmd, "serving %d pages on %s", len(table.Pages), cfg.Addr)
	if cfg.Live.Enabled {
		info(cmd, "live sessions at %s", cfg.Live.Path)
	}
	if cfg.Metrics.Enabled {
		info(cmd, "metrics at %s", cfg.Metrics.Path)
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	srv.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// serveManifest loads the configured manifest, or returns nil when none is
// configured. A local manifest is watched when enabled.
func serveManifest(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (*assets.Manifest, error) {
	a := cfg.Assets
	switch {
	case a.Manifest != "":
		m, err := loadManifest(ctx, a.Manifest, a.S3Region)
		if err != nil {
			return nil, err
		}
		if a.Watch {
			go func() {
				if err := m.Watch(ctx, a.Manifest, nil); err != nil {
					warn(cmd, "manifest watch stopped: %v", err)
				}
			}()
		}
		return m, nil
	case a.S3Bucket != "":
		return loadManifest(ctx, "s3://"+a.S3Bucket+"/"+a.S3Key, a.S3Region)
	default:
		return nil, nil
	}
}
