package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeTMDB()
	c.normalizeLetterboxd()
	if err := c.normalizeCache(); err != nil {
		return err
	}
	if err := c.normalizeServer(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeTMDB() {
	if value, ok := lookupEnv("TMDB_API_KEY"); ok {
		c.TMDB.APIKey = value
	}
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.ImageBaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.ImageBaseURL), "/")
	if c.TMDB.ImageBaseURL == "" {
		c.TMDB.ImageBaseURL = defaultTMDBImageBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	if c.TMDB.Language == "" {
		c.TMDB.Language = defaultTMDBLanguage
	}
	langs := make([]string, 0, len(c.TMDB.AlternateLanguages))
	seen := map[string]struct{}{strings.ToLower(c.TMDB.Language): {}}
	for _, lang := range c.TMDB.AlternateLanguages {
		lang = strings.TrimSpace(lang)
		if lang == "" {
			continue
		}
		if _, dup := seen[strings.ToLower(lang)]; dup {
			continue
		}
		seen[strings.ToLower(lang)] = struct{}{}
		langs = append(langs, lang)
	}
	c.TMDB.AlternateLanguages = langs
	if c.TMDB.TimeoutSeconds <= 0 {
		c.TMDB.TimeoutSeconds = defaultTMDBTimeoutSeconds
	}
}

func (c *Config) normalizeLetterboxd() {
	c.Letterboxd.BaseURL = strings.TrimRight(strings.TrimSpace(c.Letterboxd.BaseURL), "/")
	if c.Letterboxd.BaseURL == "" {
		c.Letterboxd.BaseURL = defaultLetterboxdBaseURL
	}
	c.Letterboxd.UserAgent = strings.TrimSpace(c.Letterboxd.UserAgent)
	if c.Letterboxd.UserAgent == "" {
		c.Letterboxd.UserAgent = defaultLetterboxdUserAgent
	}
	if c.Letterboxd.TimeoutSeconds <= 0 {
		c.Letterboxd.TimeoutSeconds = defaultProfileTimeout
	}
	if c.Letterboxd.StatsTimeoutSeconds <= 0 {
		c.Letterboxd.StatsTimeoutSeconds = defaultStatsTimeout
	}
}

func (c *Config) normalizeCache() error {
	if value, ok := lookupEnv("CINETIER_REDIS_ADDR"); ok {
		c.Cache.RedisAddr = value
	}
	if value, ok := lookupEnv("CINETIER_POSTGRES_DSN"); ok {
		c.Cache.PostgresDSN = value
	}
	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	if c.Cache.Backend == "" {
		c.Cache.Backend = CacheBackendNone
	}
	if strings.TrimSpace(c.Cache.SQLitePath) == "" {
		c.Cache.SQLitePath = defaultSQLitePath
	}
	var err error
	if c.Cache.SQLitePath, err = expandPath(c.Cache.SQLitePath); err != nil {
		return fmt.Errorf("cache.sqlite_path: %w", err)
	}
	c.Cache.RedisAddr = strings.TrimSpace(c.Cache.RedisAddr)
	c.Cache.PostgresDSN = strings.TrimSpace(c.Cache.PostgresDSN)
	return nil
}

func (c *Config) normalizeServer() error {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultServerBind
	}
	if strings.TrimSpace(c.Server.LockPath) == "" {
		c.Server.LockPath = defaultLockPath
	}
	var err error
	if c.Server.LockPath, err = expandPath(c.Server.LockPath); err != nil {
		return fmt.Errorf("server.lock_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = ""
		return nil
	}
	var err error
	if c.Logging.Dir, err = expandPath(c.Logging.Dir); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}
