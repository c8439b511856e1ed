package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"cinetier/internal/api"
	"cinetier/internal/logging"
	"cinetier/internal/metrics"
	"cinetier/internal/pipeline"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ranking API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}

			lock, err := acquireServeLock(cfg.Server.LockPath)
			if err != nil {
				return err
			}
			defer func() {
				if err := lock.Unlock(); err != nil {
					logger.Warn("failed to release serve lock", logging.Error(err))
				}
			}()

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			metrics.Register(reg)

			if bind == "" {
				bind = cfg.Server.Bind
			}
			return ctx.withPipeline(cmd.Context(), func(stack *pipeline.Stack) error {
				server := api.NewServer(stack.Service, api.Options{
					Bind:           bind,
					AllowedOrigins: cfg.Server.AllowedOrigins,
					TMDBConfigured: cfg.TMDBConfigured(),
					Gatherer:       reg,
				}, logger)
				logger.Info("cinetier serving",
					logging.String("bind", bind),
					logging.String("lock", cfg.Server.LockPath),
					logging.String("cache_backend", cfg.Cache.Backend),
					logging.Bool("tmdb_configured", cfg.TMDBConfigured()))
				return server.Run(cmd.Context())
			})
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (defaults to [server] bind)")
	return cmd
}

// acquireServeLock takes the single-instance lock for serve.
func acquireServeLock(path string) (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another cinetier serve instance is already running")
	}
	return lock, nil
}
