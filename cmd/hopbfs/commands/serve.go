package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyaneshwarpardhi/hopbfs/internal/api"
	"github.com/gyaneshwarpardhi/hopbfs/internal/config"
	"github.com/gyaneshwarpardhi/hopbfs/internal/engine"
	"github.com/gyaneshwarpardhi/hopbfs/internal/graph"
	"github.com/gyaneshwarpardhi/hopbfs/internal/logging"
	"github.com/gyaneshwarpardhi/hopbfs/internal/telemetry"
	"github.com/gyaneshwarpardhi/hopbfs/internal/traversal"
)

const shutdownGrace = 15 * time.Second

func newServeCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve traversals over HTTP with hot reload",
		Long: `Start the HTTP service. The graph named by graph.path is loaded at
startup and, with graph.watch, reloaded whenever the file changes.

Example:
  hopbfs serve --config configs/hopbfs.yaml --addr :8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), root)
		},
	}
	cmd.Flags().String("addr", "", "HTTP listen address (overrides server.addr)")
	return cmd
}

func runServe(ctx context.Context, root *rootOptions) error {
	loader, err := root.loader()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := loader.Config()

	logger := logging.New(os.Stdout, cfg.Logging)

	// Tracing
	if cfg.Tracing.Enabled {
		shutdownTracing, err := telemetry.Init(ctx, "hopbfs", Version, cfg.Tracing.Endpoint)
		if err != nil {
			logger.Warn("tracing disabled", "err", err)
		} else {
			defer func() {
				flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdownTracing(flushCtx)
			}()
		}
	}

	// Initial graph
	var g *graph.Graph
	if cfg.Graph.Path != "" {
		g, err = graph.LoadFile(cfg.Graph.Path)
		if err != nil {
			return fmt.Errorf("load graph: %w", err)
		}
		logger.Info("graph loaded", "path", cfg.Graph.Path, "nodes", g.Len(), "edges", g.EdgeCount())
	} else {
		logger.Warn("graph.path not set, serving without a graph until reload")
	}

	// Engine
	engCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eng := engine.New(engCtx, g, traversal.NewDefaultRegistry(), cfg.Engine,
		engine.WithLogger(logger),
		engine.WithTracer(telemetry.Tracer()),
	)

	// Hot reload: config file and edge list
	reloader := newGraphReloader(eng, logger)
	reloader.Start(cfg.Graph)
	defer reloader.Close()
	loader.OnChange(func(newCfg *config.Config) {
		logger.Info("config reloaded", "version", newCfg.Version, "graph", newCfg.Graph.Path)
		reloader.Apply(newCfg.Graph)
	})
	loader.OnError(func(err error) {
		logger.Warn("config reload skipped", "err", err)
	})
	if stopConfig, err := loader.Watch(); err != nil {
		logger.Debug("config watcher unavailable", "err", err)
	} else {
		defer stopConfig()
	}

	// HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.New(eng, loader, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errC := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
		close(errC)
	}()

	// Graceful shutdown
	select {
	case err := <-errC:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer shutCancel()
	_ = srv.Shutdown(shutCtx)
	cancel()
	eng.Shutdown()
	logger.Info("goodbye")
	return nil
}
