// Package logging assembles structured slog loggers and formatting helpers used
// across cinetier.
//
// It owns the console and JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so request handling code can tag log lines
// with correlation IDs and usernames. A no-op logger is provided for tests and
// wiring code that cannot fail.
package logging
