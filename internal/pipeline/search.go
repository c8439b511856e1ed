package pipeline

import (
	"context"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"cinetier/internal/identification/tmdb"
	"cinetier/internal/logging"
	"cinetier/internal/services"
)

const (
	minSearchRunes     = 2
	maxSearchResults   = 10
	searchCreditsLimit = 4
)

// SearchHit is one film search result.
type SearchHit struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Year      int    `json:"year,omitempty"`
	PosterURL string `json:"poster,omitempty"`
	Director  string `json:"director,omitempty"`
}

// SearchFilms returns up to ten TMDB matches for query, each with its first
// credited director. Queries shorter than two characters return no hits.
func (s *Service) SearchFilms(ctx context.Context, query string) ([]SearchHit, error) {
	if s.searcher == nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "search", "tmdb api key not configured", nil)
	}
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSearchRunes {
		return []SearchHit{}, nil
	}
	ctx, _ = withRequestID(ctx)
	logger := logging.WithContext(ctx, s.logger)

	resp, err := s.searcher.SearchMovieWithOptions(ctx, query, tmdb.SearchOptions{})
	if err != nil {
		return nil, services.Wrap(services.ErrUpstream, "pipeline", "search", "tmdb search failed", err)
	}
	results := resp.Results
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}

	hits := make([]SearchHit, len(results))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(searchCreditsLimit)
	for i, r := range results {
		i, r := i, r
		hits[i] = SearchHit{ID: r.ID, Title: r.Title, Year: r.Year()}
		if r.PosterPath != "" && s.imageBase != "" {
			hits[i].PosterURL = s.imageBase + "/" + strings.TrimLeft(r.PosterPath, "/")
		}
		g.Go(func() error {
			credits, err := s.searcher.GetMovieCredits(gctx, r.ID)
			if err != nil {
				logger.Debug("credits unavailable for search hit",
					logging.Int64(logging.FieldTMDBID, r.ID),
					logging.Error(err))
				return nil
			}
			if directors := credits.Directors(); len(directors) > 0 {
				hits[i].Director = directors[0]
			}
			return nil
		})
	}
	_ = g.Wait()

	logger.Debug("film search completed",
		logging.String("query", query),
		logging.Int("results", len(hits)))
	return hits, nil
}
