// Package config loads, normalizes, and validates cinetier configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads an optional .env file, and honours
// environment overrides such as TMDB_API_KEY. A missing TMDB key is not a load
// error; callers check TMDBConfigured and report the degraded mode themselves.
package config
