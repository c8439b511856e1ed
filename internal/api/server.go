package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cinetier/internal/logging"
	"cinetier/internal/pipeline"
)

const (
	requestTimeout  = 60 * time.Second
	shutdownTimeout = 5 * time.Second
	maxBodyBytes    = 64 << 10
)

// Ranker is the pipeline surface the handlers call.
type Ranker interface {
	RankByProfile(ctx context.Context, username string) (*pipeline.ProfileRanking, error)
	RankByFilmIDs(ctx context.Context, ids [pipeline.FilmsPerRanking]int64) (*pipeline.Ranking, error)
	SearchFilms(ctx context.Context, query string) ([]pipeline.SearchHit, error)
}

// Options configures a Server.
type Options struct {
	Bind           string
	AllowedOrigins []string
	TMDBConfigured bool
	// Gatherer backs /metrics; nil hides the endpoint.
	Gatherer prometheus.Gatherer
}

// Server serves the HTTP API.
type Server struct {
	ranker Ranker
	opts   Options
	logger *slog.Logger
	server *http.Server
}

// NewServer builds a Server around ranker.
func NewServer(ranker Ranker, opts Options, logger *slog.Logger) *Server {
	s := &Server{
		ranker: ranker,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "api-server"),
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      requestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(correlate)
	r.Use(s.observe)
	r.Use(cors.Handler(s.corsOptions()))

	r.Get("/healthz", s.handleHealth)
	if s.opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Get("/rank/{username}", s.handleRank)
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/search", s.handleSearch)
		r.Get("/tiers", s.handleTiers)
	})
	return r
}

func (s *Server) corsOptions() cors.Options {
	origins := make([]string, 0, len(s.opts.AllowedOrigins))
	for _, origin := range s.opts.AllowedOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}
}

// Run listens on the configured bind address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.opts.Bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api shutdown: %w", err)
	}
	s.logger.Info("api server stopped")
	return nil
}
