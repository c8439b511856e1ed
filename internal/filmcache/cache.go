package filmcache

import (
	"context"
	"log/slog"
	"sync"

	"cinetier/internal/film"
	"cinetier/internal/logging"
	"cinetier/internal/metrics"
)

// Cache is a best-effort film cache.
type Cache interface {
	Get(ctx context.Context, id int64) (*film.Film, bool)
	Put(ctx context.Context, f *film.Film)
}

// Store is a persistent cache backend. Get returns (nil, nil) when id is
// absent.
type Store interface {
	Get(ctx context.Context, id int64) (*film.Film, error)
	Put(ctx context.Context, f *film.Film) error
	Clear(ctx context.Context) error
	Close() error
	Name() string
}

// Nop caches nothing.
type Nop struct{}

func (Nop) Get(context.Context, int64) (*film.Film, bool) { return nil, false }
func (Nop) Put(context.Context, *film.Film)               {}

// Memory is a concurrency-safe in-process map. Stored films are cloned on the
// way in and out.
type Memory struct {
	mu    sync.RWMutex
	films map[int64]*film.Film
}

// NewMemory returns an empty memory cache.
func NewMemory() *Memory {
	return &Memory{films: make(map[int64]*film.Film)}
}

func (m *Memory) Get(_ context.Context, id int64) (*film.Film, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.films[id]
	if !ok {
		return nil, false
	}
	return f.Clone(), true
}

func (m *Memory) Put(_ context.Context, f *film.Film) {
	if f == nil || f.TMDBID <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.films[f.TMDBID] = f.Clone()
}

// Clear drops every entry.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.films = make(map[int64]*film.Film)
}

// Layered checks memory first, then the persistent store, and writes through
// to both.
type Layered struct {
	memory *Memory
	store  Store
	logger *slog.Logger
}

// NewLayered builds a layered cache. store may be nil for memory only.
func NewLayered(store Store, logger *slog.Logger) *Layered {
	return &Layered{
		memory: NewMemory(),
		store:  store,
		logger: logging.NewComponentLogger(logger, "filmcache"),
	}
}

func (l *Layered) Get(ctx context.Context, id int64) (*film.Film, bool) {
	if f, ok := l.memory.Get(ctx, id); ok {
		metrics.ObserveCache("memory", "hit")
		return f, true
	}
	metrics.ObserveCache("memory", "miss")
	if l.store == nil {
		return nil, false
	}

	f, err := l.store.Get(ctx, id)
	switch {
	case err != nil:
		metrics.ObserveCache(l.store.Name(), "error")
		logging.WarnWithContext(logging.WithContext(ctx, l.logger), "persistent cache read failed", "cache_read_failed",
			logging.Int64(logging.FieldTMDBID, id),
			logging.String("store", l.store.Name()),
			logging.Error(err),
			logging.String(logging.FieldImpact, "film will be fetched from TMDB"),
			logging.String(logging.FieldErrorHint, "check the cache backend connection"))
		return nil, false
	case f == nil:
		metrics.ObserveCache(l.store.Name(), "miss")
		return nil, false
	}
	metrics.ObserveCache(l.store.Name(), "hit")
	l.memory.Put(ctx, f)
	return f, true
}

func (l *Layered) Put(ctx context.Context, f *film.Film) {
	if f == nil || f.TMDBID <= 0 {
		return
	}
	l.memory.Put(ctx, f)
	if l.store == nil {
		return
	}
	if err := l.store.Put(ctx, f); err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, l.logger), "persistent cache write failed", "cache_write_failed",
			logging.Int64(logging.FieldTMDBID, f.TMDBID),
			logging.String("store", l.store.Name()),
			logging.Error(err),
			logging.String(logging.FieldImpact, "film kept in memory only"),
			logging.String(logging.FieldErrorHint, "check the cache backend connection"))
	}
}

// Clear empties memory and the persistent store.
func (l *Layered) Clear(ctx context.Context) error {
	l.memory.Clear()
	if l.store == nil {
		return nil
	}
	return l.store.Clear(ctx)
}

// Close releases the persistent store.
func (l *Layered) Close() error {
	if l.store == nil {
		return nil
	}
	return l.store.Close()
}
