package filmcache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	store, err := OpenRedis(context.Background(), RedisOptions{Addr: mr.Addr(), TTL: 2 * time.Hour})
	if err != nil {
		t.Fatalf("OpenRedis returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	if got, err := store.Get(ctx, 1398); err != nil || got != nil {
		t.Fatalf("expected clean miss, got %+v, %v", got, err)
	}
	if err := store.Put(ctx, stalker()); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if ttl := mr.TTL("cinetier:film:1398"); ttl != 2*time.Hour {
		t.Fatalf("unexpected ttl %v", ttl)
	}
	got, err := store.Get(ctx, 1398)
	if err != nil || got == nil || got.Title != "Stalker" || got.Year != 1979 {
		t.Fatalf("unexpected film %+v, %v", got, err)
	}

	mr.FastForward(3 * time.Hour)
	if got, _ := store.Get(ctx, 1398); got != nil {
		t.Fatal("expected entry to expire")
	}
}

func TestRedisStoreClearKeepsForeignKeys(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()
	if err := mr.Set("session:abc", "keep"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	for id := int64(1); id <= 150; id++ {
		f := stalker()
		f.TMDBID = id
		if err := store.Put(ctx, f); err != nil {
			t.Fatalf("Put returned error: %v", err)
		}
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if mr.Exists("cinetier:film:1") || mr.Exists("cinetier:film:150") {
		t.Fatal("film keys survived Clear")
	}
	if !mr.Exists("session:abc") {
		t.Fatal("Clear removed an unrelated key")
	}
}

func TestRedisStoreCorruptValue(t *testing.T) {
	store, mr := newRedisStore(t)
	if err := mr.Set("cinetier:film:7", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := store.Get(context.Background(), 7); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestOpenRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := OpenRedis(ctx, RedisOptions{Addr: "127.0.0.1:1"}); err == nil {
		t.Fatal("expected ping failure")
	}
}
