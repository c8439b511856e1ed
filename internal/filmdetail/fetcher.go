// Package filmdetail turns a TMDB id into a fully derived film record, with a
// cache in front of TMDB.
package filmdetail

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"cinetier/internal/film"
	"cinetier/internal/filmcache"
	"cinetier/internal/identification/tmdb"
	"cinetier/internal/language"
	"cinetier/internal/logging"
	"cinetier/internal/ranking"
	"cinetier/internal/services"
)

const (
	blackAndWhiteBefore = 1960
	silentEraBefore     = 1930
)

// Fetcher retrieves film details. A Fetcher without a searcher is disabled and
// answers every lookup with (nil, nil).
type Fetcher struct {
	searcher  tmdb.Searcher
	cache     filmcache.Cache
	imageBase string
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithImageBaseURL sets the prefix used to build poster URLs.
func WithImageBaseURL(base string) Option {
	return func(f *Fetcher) {
		f.imageBase = strings.TrimSpace(base)
	}
}

// WithClock overrides the clock used for the rarity age component.
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) {
		if now != nil {
			f.now = now
		}
	}
}

// NewFetcher builds a Fetcher. searcher may be nil when TMDB is not
// configured; cache may be nil for no caching.
func NewFetcher(searcher tmdb.Searcher, cache filmcache.Cache, logger *slog.Logger, opts ...Option) *Fetcher {
	if cache == nil {
		cache = filmcache.Nop{}
	}
	f := &Fetcher{
		searcher: searcher,
		cache:    cache,
		now:      time.Now,
		logger:   logging.NewComponentLogger(logger, "filmdetail"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Enabled reports whether TMDB credentials are configured.
func (f *Fetcher) Enabled() bool {
	return f.searcher != nil
}

// Details returns the film for id. It returns (nil, nil) when TMDB is not
// configured or does not know id, and an ErrUpstream-marked error for any
// other TMDB failure.
func (f *Fetcher) Details(ctx context.Context, id int64) (*film.Film, error) {
	if id <= 0 {
		return nil, services.Wrap(services.ErrValidation, "filmdetail", "details", "tmdb id must be positive", nil)
	}
	logger := logging.WithContext(ctx, f.logger).With(logging.Int64(logging.FieldTMDBID, id))
	if !f.Enabled() {
		logger.Debug("tmdb not configured; skipping detail fetch")
		return nil, nil
	}

	if cached, ok := f.cache.Get(ctx, id); ok {
		logger.Debug("film served from cache", logging.String("title", cached.Title))
		return cached.WithPosterURL(f.imageBase), nil
	}

	details, err := f.searcher.GetMovieDetails(ctx, id)
	if tmdb.IsNotFound(err) {
		logger.Info("tmdb has no such film")
		return nil, nil
	}
	if err != nil {
		return nil, services.Wrap(services.ErrUpstream, "filmdetail", "details", "tmdb details request failed", err)
	}

	if details.Credits == nil {
		credits, err := f.searcher.GetMovieCredits(ctx, id)
		if err != nil {
			logging.WarnWithContext(logger, "tmdb credits unavailable", "credits_fetch_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "directors unknown for this film"),
				logging.String(logging.FieldErrorHint, "retry later; TMDB may be degraded"))
		} else {
			details.Credits = credits
		}
	}

	out := Build(details, f.now())
	f.cache.Put(ctx, out)
	logger.Debug("film details fetched",
		logging.String("title", out.Title),
		logging.Int("year", out.Year),
		logging.Float64("rating", out.Rating),
		logging.Int("rarity", out.RarityScore))
	return out.WithPosterURL(f.imageBase), nil
}

// Build derives a film record from a TMDB details payload. The black-and-white
// and foreign flags are heuristics: any film before 1960 counts as black and
// white, and any original language other than English counts as foreign.
func Build(details *tmdb.MovieDetails, now time.Time) *film.Film {
	year := details.Year()
	out := &film.Film{
		TMDBID:           details.ID,
		Title:            details.Title,
		Year:             year,
		Rating:           details.VoteAverage,
		VoteCount:        int(details.VoteCount),
		Genres:           make([]string, 0, len(details.Genres)),
		Directors:        details.Credits.Directors(),
		OriginalLanguage: language.Normalize(details.OriginalLanguage),
		PosterPath:       details.PosterPath,
	}
	if out.Directors == nil {
		out.Directors = []string{}
	}
	for _, g := range details.Genres {
		out.Genres = append(out.Genres, g.Name)
	}
	for _, c := range details.ProductionCountries {
		out.Countries = append(out.Countries, c.Code)
	}

	out.IsForeignLanguage = language.IsForeign(details.OriginalLanguage)
	out.IsSilentEra = year > 0 && year < silentEraBefore
	out.IsBlackAndWhite = year > 0 && year < blackAndWhiteBefore
	if !out.IsBlackAndWhite {
		for _, kw := range details.KeywordNames() {
			if strings.Contains(strings.ToLower(kw), "black and white") {
				out.IsBlackAndWhite = true
				break
			}
		}
	}
	out.RarityScore = ranking.RarityAt(out.VoteCount, out.Rating, year, now)
	return out
}
