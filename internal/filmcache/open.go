package filmcache

import (
	"context"
	"log/slog"

	"cinetier/internal/config"
	"cinetier/internal/logging"
	"cinetier/internal/services"
)

// OpenStore connects the persistent backend selected by cfg. It returns a nil
// Store for the "none" backend.
func OpenStore(ctx context.Context, cfg *config.Config) (Store, error) {
	var (
		store Store
		err   error
	)
	switch cfg.Cache.Backend {
	case config.CacheBackendNone, "":
		return nil, nil
	case config.CacheBackendSQLite:
		store, err = OpenSQLite(ctx, cfg.Cache.SQLitePath)
	case config.CacheBackendRedis:
		store, err = OpenRedis(ctx, RedisOptions{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			TTL:      cfg.RedisTTL(),
		})
	case config.CacheBackendPostgres:
		store, err = OpenPostgres(ctx, cfg.Cache.PostgresDSN)
	default:
		return nil, services.Wrap(services.ErrConfiguration, "filmcache", "open", "unknown cache backend "+cfg.Cache.Backend, nil)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "filmcache", "open", cfg.Cache.Backend+" store unavailable", err)
	}
	return store, nil
}

// New opens the configured store and layers memory in front of it. A store
// that cannot be opened degrades to memory only with a warning.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) *Layered {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		logging.WarnWithContext(logging.NewComponentLogger(logger, "filmcache"), "persistent film cache disabled", "cache_open_failed",
			logging.String("backend", cfg.Cache.Backend),
			logging.Error(err),
			logging.String(logging.FieldImpact, "films cached in memory only"),
			logging.String(logging.FieldErrorHint, "check the [cache] section of the config"))
		store = nil
	}
	return NewLayered(store, logger)
}
