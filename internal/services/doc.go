// Package services defines shared utilities consumed by the resolution and
// ranking pipeline and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp correlation identifiers and usernames for
//     logging.
//   - Structured error markers plus the Wrap helper so callers classify
//     failures with errors.Is and the HTTP layer maps them to status codes.
package services
