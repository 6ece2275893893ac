package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"todo/internal/backend/remote"
	"todo/internal/config"
	"todo/internal/executor"
	"todo/internal/repository"
	"todo/internal/service"
)

// DefaultFactory opens the backend selected by cfg: a remote client when a
// server URL is configured, otherwise a local session over the configured
// repository.
func DefaultFactory(ctx context.Context, cfg *config.Config) (service.Service, error) {
	log := cfg.Log()

	if url := cfg.RemoteURL(); url != "" {
		log.Debug("using remote backend", zap.String("url", url))
		return remote.New(ctx, url, cfg.Settings.Remote.Token,
			remote.WithTimeout(cfg.Settings.Remote.TimeoutDuration()))
	}

	driver := cfg.Settings.Storage.Driver
	if driver == repository.DriverSQLite && cfg.Settings.Storage.DSN == "" {
		if err := cfg.EnsureDir(); err != nil {
			return nil, fmt.Errorf("creating config dir: %w", err)
		}
	}

	repo, err := repository.Open(ctx, driver, cfg.StorageDSN())
	if err != nil {
		return nil, err
	}

	var exec executor.Executor = executor.Immediate{}
	if cfg.LatencyEnabled() {
		lat := executor.NewLatency(cfg.Settings.Latency.DelayMap(), executor.DefaultQueueSize, log)
		lat.Start()
		exec = lat
	}

	sess, err := service.Open(ctx, repo, exec, log)
	if err != nil {
		if lat, ok := exec.(*executor.Latency); ok {
			_ = lat.Shutdown(ctx)
		}
		_ = repo.Close()
		return nil, err
	}
	log.Debug("using local backend",
		zap.String("driver", driver),
		zap.Bool("latency", cfg.LatencyEnabled()))
	return sess, nil
}
