package api

// AnalyzeRequest is the POST /api/analyze body.
type AnalyzeRequest struct {
	MovieIDs []int64 `json:"movieIds"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// HealthResponse is the GET /healthz body.
type HealthResponse struct {
	Status         string `json:"status"`
	TMDBConfigured bool   `json:"tmdbConfigured"`
}
