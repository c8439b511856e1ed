package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable. A missing TMDB key is allowed:
// the pipeline reports it per request instead of refusing to start.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateLetterboxd(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTMDB() error {
	if _, err := url.ParseRequestURI(c.TMDB.BaseURL); err != nil {
		return fmt.Errorf("tmdb.base_url is invalid: %w", err)
	}
	if c.TMDB.RequestsPerSecond < 0 {
		return errors.New("tmdb.requests_per_second must be zero (unlimited) or positive")
	}
	return nil
}

func (c *Config) validateLetterboxd() error {
	if _, err := url.ParseRequestURI(c.Letterboxd.BaseURL); err != nil {
		return fmt.Errorf("letterboxd.base_url is invalid: %w", err)
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case CacheBackendNone, CacheBackendSQLite:
	case CacheBackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New("cache.redis_addr must be set when cache.backend is redis")
		}
		if c.Cache.RedisTTLHours < 0 {
			return errors.New("cache.redis_ttl_hours must not be negative")
		}
	case CacheBackendPostgres:
		if c.Cache.PostgresDSN == "" {
			return errors.New("cache.postgres_dsn must be set when cache.backend is postgres (or set CINETIER_POSTGRES_DSN)")
		}
	default:
		return fmt.Errorf("cache.backend %q is not one of none, sqlite, redis, postgres", c.Cache.Backend)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn, or error", c.Logging.Level)
	}
	return nil
}
