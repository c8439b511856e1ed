package filmcache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"cinetier/internal/config"
	"cinetier/internal/logging"
	"cinetier/internal/services"
)

func TestOpenStoreBackends(t *testing.T) {
	ctx := context.Background()

	cfg := config.Default()
	cfg.Cache.Backend = config.CacheBackendNone
	if store, err := OpenStore(ctx, &cfg); err != nil || store != nil {
		t.Fatalf("none backend: got %v, %v", store, err)
	}

	cfg.Cache.Backend = config.CacheBackendSQLite
	cfg.Cache.SQLitePath = filepath.Join(t.TempDir(), "films.db")
	store, err := OpenStore(ctx, &cfg)
	if err != nil {
		t.Fatalf("sqlite backend: %v", err)
	}
	if store.Name() != "sqlite" {
		t.Fatalf("unexpected store %q", store.Name())
	}
	_ = store.Close()

	cfg.Cache.Backend = "memcached"
	if _, err := OpenStore(ctx, &cfg); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestNewDegradesToMemory(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Backend = config.CacheBackendRedis
	cfg.Cache.RedisAddr = "127.0.0.1:1"

	cache := New(context.Background(), &cfg, logging.NewNop())
	if cache.store != nil {
		t.Fatal("expected memory-only cache when redis is unreachable")
	}
	cache.Put(context.Background(), stalker())
	if _, ok := cache.Get(context.Background(), 1398); !ok {
		t.Fatal("expected memory hit")
	}
}
