package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// TMDB contains configuration for The Movie Database API.
type TMDB struct {
	APIKey             string   `toml:"api_key"`
	BaseURL            string   `toml:"base_url"`
	ImageBaseURL       string   `toml:"image_base_url"`
	Language           string   `toml:"language"`
	AlternateLanguages []string `toml:"alternate_languages"`
	RequestsPerSecond  float64  `toml:"requests_per_second"`
	TimeoutSeconds     int      `toml:"timeout_seconds"`
}

// Letterboxd contains configuration for profile page scraping.
type Letterboxd struct {
	BaseURL             string `toml:"base_url"`
	UserAgent           string `toml:"user_agent"`
	TimeoutSeconds      int    `toml:"timeout_seconds"`
	StatsTimeoutSeconds int    `toml:"stats_timeout_seconds"`
}

// Cache selects the persistent film cache that sits behind the in-memory layer.
type Cache struct {
	Backend       string `toml:"backend"`
	SQLitePath    string `toml:"sqlite_path"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisTTLHours int    `toml:"redis_ttl_hours"`
	PostgresDSN   string `toml:"postgres_dsn"`
}

// Server contains configuration for the HTTP API.
type Server struct {
	Bind           string   `toml:"bind"`
	LockPath       string   `toml:"lock_path"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for cinetier.
//
// Configuration sections by subsystem:
//   - TMDB: film search and metadata
//   - Letterboxd: profile page scraping
//   - Cache: persistent film cache backend
//   - Server: HTTP API bind address and instance lock
//   - Logging: log format, level, and optional file output
type Config struct {
	TMDB       TMDB       `toml:"tmdb"`
	Letterboxd Letterboxd `toml:"letterboxd"`
	Cache      Cache      `toml:"cache"`
	Server     Server     `toml:"server"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error: defaults plus environment overrides are returned with exists
// set to false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	loadDotEnv(filepath.Dir(resolvedPath))

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// TMDBConfigured reports whether film metadata lookups have credentials.
func (c *Config) TMDBConfigured() bool {
	key := strings.TrimSpace(c.TMDB.APIKey)
	return key != "" && key != placeholderAPIKey
}

// TMDBTimeout returns the per-request timeout for search and detail calls.
func (c *Config) TMDBTimeout() time.Duration {
	return time.Duration(c.TMDB.TimeoutSeconds) * time.Second
}

// ProfileTimeout returns the timeout for the profile page fetch.
func (c *Config) ProfileTimeout() time.Duration {
	return time.Duration(c.Letterboxd.TimeoutSeconds) * time.Second
}

// StatsTimeout returns the timeout for the secondary stats page fetch.
func (c *Config) StatsTimeout() time.Duration {
	return time.Duration(c.Letterboxd.StatsTimeoutSeconds) * time.Second
}

// RedisTTL returns how long redis keeps cached films. Zero means no expiry.
func (c *Config) RedisTTL() time.Duration {
	return time.Duration(c.Cache.RedisTTLHours) * time.Hour
}

// loadDotEnv reads .env from the working directory and from next to the
// config file. Existing environment variables always win.
func loadDotEnv(configDir string) {
	candidates := []string{".env"}
	if configDir != "" {
		candidates = append(candidates, filepath.Join(configDir, ".env"))
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err != nil || info.IsDir() {
			continue
		}
		_ = godotenv.Load(candidate)
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
