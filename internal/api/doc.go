// Package api exposes the ranking pipeline over HTTP.
//
// Routes:
//
//	GET  /api/rank/{username}   rank a profile's four favourites
//	POST /api/analyze           rank {"movieIds": [four TMDB ids]}
//	GET  /api/search?q=         film search with directors
//	GET  /api/tiers             the tier catalogue
//	GET  /healthz               liveness and TMDB configuration
//	GET  /metrics               prometheus exposition
//
// Errors are JSON objects {"error": ..., "requestId": ...} with the status
// chosen by services.HTTPStatus.
package api
