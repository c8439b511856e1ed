package config

const (
	defaultConfigPath          = "~/.config/cinetier/config.toml"
	projectConfigName          = "cinetier.toml"
	placeholderAPIKey          = "your_tmdb_api_key_here"
	defaultTMDBBaseURL         = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL    = "https://image.tmdb.org/t/p/w500"
	defaultTMDBLanguage        = "en-US"
	defaultTMDBRequestsPerSec  = 20
	defaultTMDBTimeoutSeconds  = 10
	defaultLetterboxdBaseURL   = "https://letterboxd.com"
	defaultLetterboxdUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	defaultProfileTimeout      = 10
	defaultStatsTimeout        = 15
	defaultCacheBackend        = CacheBackendNone
	defaultSQLitePath          = "~/.local/share/cinetier/films.db"
	defaultRedisAddr           = "127.0.0.1:6379"
	defaultRedisTTLHours       = 24 * 7
	defaultServerBind          = "127.0.0.1:3000"
	defaultLockPath            = "~/.local/share/cinetier/serve.lock"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Cache backend names accepted in [cache] backend.
const (
	CacheBackendNone     = "none"
	CacheBackendSQLite   = "sqlite"
	CacheBackendRedis    = "redis"
	CacheBackendPostgres = "postgres"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		TMDB: TMDB{
			BaseURL:           defaultTMDBBaseURL,
			ImageBaseURL:      defaultTMDBImageBaseURL,
			Language:          defaultTMDBLanguage,
			RequestsPerSecond: defaultTMDBRequestsPerSec,
			TimeoutSeconds:    defaultTMDBTimeoutSeconds,
		},
		Letterboxd: Letterboxd{
			BaseURL:             defaultLetterboxdBaseURL,
			UserAgent:           defaultLetterboxdUserAgent,
			TimeoutSeconds:      defaultProfileTimeout,
			StatsTimeoutSeconds: defaultStatsTimeout,
		},
		Cache: Cache{
			Backend:       defaultCacheBackend,
			SQLitePath:    defaultSQLitePath,
			RedisAddr:     defaultRedisAddr,
			RedisTTLHours: defaultRedisTTLHours,
		},
		Server: Server{
			Bind:     defaultServerBind,
			LockPath: defaultLockPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
