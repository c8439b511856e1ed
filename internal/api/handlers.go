package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"cinetier/internal/logging"
	"cinetier/internal/pipeline"
	"cinetier/internal/ranking"
	"cinetier/internal/services"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", TMDBConfigured: s.opts.TMDBConfigured})
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(chi.URLParam(r, "username"))
	result, err := s.ranker.RankByProfile(r.Context(), username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		s.writeError(w, r, services.Wrap(services.ErrValidation, "api", "analyze", "body must be {\"movieIds\": [four ids]}", err))
		return
	}
	if len(req.MovieIDs) != pipeline.FilmsPerRanking {
		s.writeError(w, r, services.Wrap(services.ErrValidation, "api", "analyze", "exactly 4 movie ids required", nil))
		return
	}
	var ids [pipeline.FilmsPerRanking]int64
	copy(ids[:], req.MovieIDs)

	result, err := s.ranker.RankByFilmIDs(r.Context(), ids)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	hits, err := s.ranker.SearchFilms(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if hits == nil {
		hits = []pipeline.SearchHit{}
	}
	s.writeJSON(w, http.StatusOK, hits)
}

func (s *Server) handleTiers(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, ranking.Tiers())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

// writeError reports err with its classified status. Server-side failures
// get a generic message; the detail goes to the log.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := services.HTTPStatus(err)
	if ctxErr := r.Context().Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		status = http.StatusGatewayTimeout
	}
	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
		logging.WarnWithContext(logging.WithContext(r.Context(), s.logger), "request failed", "request_failed",
			logging.String("path", r.URL.Path),
			logging.Int("status", status),
			logging.Error(err),
			logging.String(logging.FieldImpact, "client received "+message),
			logging.String(logging.FieldErrorHint, errorHint(err)))
	}
	requestID, _ := services.RequestIDFromContext(r.Context())
	s.writeJSON(w, status, ErrorResponse{Error: message, RequestID: requestID})
}

func errorHint(err error) string {
	switch {
	case errors.Is(err, services.ErrConfiguration):
		return "set TMDB_API_KEY or [tmdb] api_key"
	case errors.Is(err, services.ErrUpstream):
		return "check Letterboxd and TMDB reachability"
	default:
		return "see the error field for detail"
	}
}
