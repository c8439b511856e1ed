// Package tmdb provides the minimal TMDB API client used to resolve and
// describe films.
//
// It authenticates requests and exposes movie search with year, primary
// release year, and language filters, movie detail retrieval with credits and
// keywords appended, and a standalone credits lookup. Requests pass through an
// optional client-side rate limiter and record upstream metrics. Non-200
// responses surface as *StatusError so callers can tell a missing film from an
// outage with IsNotFound.
package tmdb
