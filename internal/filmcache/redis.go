package filmcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"cinetier/internal/film"
)

const redisKeyPrefix = "cinetier:film:"

// RedisStore keeps films as JSON strings with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

// RedisOptions configures OpenRedis.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// OpenRedis connects to redis and verifies the connection with PING.
func OpenRedis(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis address required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return &RedisStore{client: client, ttl: opts.TTL}, nil
}

func (s *RedisStore) Name() string { return "redis" }

func redisKey(id int64) string {
	return redisKeyPrefix + strconv.FormatInt(id, 10)
}

func (s *RedisStore) Get(ctx context.Context, id int64) (*film.Film, error) {
	data, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get film %d: %w", id, err)
	}
	var f film.Film
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode film %d: %w", id, err)
	}
	return &f, nil
}

func (s *RedisStore) Put(ctx context.Context, f *film.Film) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode film %d: %w", f.TMDBID, err)
	}
	if err := s.client.Set(ctx, redisKey(f.TMDBID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set film %d: %w", f.TMDBID, err)
	}
	return nil
}

// Clear deletes every film key, leaving other keys untouched.
func (s *RedisStore) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := s.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(batch) > 0 {
		if err := s.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
