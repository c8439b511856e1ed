package pipeline

import (
	"context"
	"log/slog"

	"cinetier/internal/config"
	"cinetier/internal/filmcache"
	"cinetier/internal/filmdetail"
	"cinetier/internal/identification"
	"cinetier/internal/identification/tmdb"
	"cinetier/internal/letterboxd"
	"cinetier/internal/logging"
	"cinetier/internal/services"
)

// Stack is an assembled Service plus the collaborators that commands use
// directly.
type Stack struct {
	Service  *Service
	Resolver *identification.Resolver
	Fetcher  *filmdetail.Fetcher
	Cache    *filmcache.Layered
}

// Build assembles the pipeline from configuration. A missing TMDB key is not
// an error here: the returned Service reports ErrConfiguration per request.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Stack, error) {
	var searcher tmdb.Searcher
	if cfg.TMDBConfigured() {
		client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
			tmdb.WithTimeout(cfg.TMDBTimeout()),
			tmdb.WithRateLimit(cfg.TMDB.RequestsPerSecond))
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "pipeline", "build", "tmdb client", err)
		}
		searcher = client
	} else {
		logging.WarnWithContext(logger, "tmdb api key missing", "tmdb_unconfigured",
			logging.String(logging.FieldImpact, "rankings and search are unavailable"),
			logging.String(logging.FieldErrorHint, "set TMDB_API_KEY or [tmdb] api_key"))
	}

	cache := filmcache.New(ctx, cfg, logger)
	resolver := identification.NewResolver(searcher, logger,
		identification.WithAlternateLanguages(cfg.TMDB.AlternateLanguages...))
	fetcher := filmdetail.NewFetcher(searcher, cache, logger,
		filmdetail.WithImageBaseURL(cfg.TMDB.ImageBaseURL))
	scraper := letterboxd.NewScraper(logger,
		letterboxd.WithBaseURL(cfg.Letterboxd.BaseURL),
		letterboxd.WithUserAgent(cfg.Letterboxd.UserAgent),
		letterboxd.WithTimeouts(cfg.ProfileTimeout(), cfg.StatsTimeout()))

	return &Stack{
		Service:  NewService(scraper, resolver, fetcher, searcher, cfg.TMDB.ImageBaseURL, logger),
		Resolver: resolver,
		Fetcher:  fetcher,
		Cache:    cache,
	}, nil
}

// Close releases the persistent cache.
func (s *Stack) Close() error {
	if s == nil || s.Cache == nil {
		return nil
	}
	return s.Cache.Close()
}
