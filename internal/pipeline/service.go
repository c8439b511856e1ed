package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"cinetier/internal/film"
	"cinetier/internal/identification"
	"cinetier/internal/identification/tmdb"
	"cinetier/internal/letterboxd"
	"cinetier/internal/logging"
	"cinetier/internal/metrics"
	"cinetier/internal/ranking"
	"cinetier/internal/services"
)

// FilmsPerRanking is how many favourites a ranking scores.
const FilmsPerRanking = 4

// ErrNotEnoughFilms reports that fewer than four films exist for the request.
// A shortfall caused by TMDB failing is reported as services.ErrUpstream
// instead.
var ErrNotEnoughFilms = fmt.Errorf("%w: not enough films", services.ErrValidation)

// ProfileScraper reads favourites from a profile.
type ProfileScraper interface {
	ScrapeFavorites(ctx context.Context, username string) (letterboxd.Profile, error)
}

// TitleResolver maps a title and optional year to a TMDB id.
type TitleResolver interface {
	Resolve(ctx context.Context, title string, year int) (identification.Match, error)
}

// DetailFetcher produces full film records.
type DetailFetcher interface {
	Details(ctx context.Context, id int64) (*film.Film, error)
	Enabled() bool
}

// Ranking is a scored set of films.
type Ranking struct {
	ranking.Result
	Films     []*film.Film `json:"films"`
	RequestID string       `json:"requestId,omitempty"`
}

// ProfileRanking is a Ranking of a profile's favourites.
type ProfileRanking struct {
	Ranking
	Username  string                   `json:"username"`
	Favorites []letterboxd.FavoriteRef `json:"favorites"`
	Stats     letterboxd.Stats         `json:"profileStats"`
}

// Service runs the ranking pipeline.
type Service struct {
	scraper   ProfileScraper
	resolver  TitleResolver
	details   DetailFetcher
	searcher  tmdb.Searcher
	imageBase string
	logger    *slog.Logger
}

// NewService assembles a Service. searcher backs SearchFilms and may be nil
// when TMDB is not configured.
func NewService(scraper ProfileScraper, resolver TitleResolver, details DetailFetcher, searcher tmdb.Searcher, imageBase string, logger *slog.Logger) *Service {
	return &Service{
		scraper:   scraper,
		resolver:  resolver,
		details:   details,
		searcher:  searcher,
		imageBase: strings.TrimRight(imageBase, "/"),
		logger:    logging.NewComponentLogger(logger, "pipeline"),
	}
}

// withRequestID stamps a correlation id unless the caller already set one.
func withRequestID(ctx context.Context) (context.Context, string) {
	if id, ok := services.RequestIDFromContext(ctx); ok {
		return ctx, id
	}
	id := uuid.NewString()
	return services.WithRequestID(ctx, id), id
}

func (s *Service) requireTMDB(operation string) error {
	if s.details == nil || !s.details.Enabled() {
		return services.Wrap(services.ErrConfiguration, "pipeline", operation, "tmdb api key not configured", nil)
	}
	return nil
}

// RankByProfile scrapes username's favourites and scores them.
func (s *Service) RankByProfile(ctx context.Context, username string) (*ProfileRanking, error) {
	if err := s.requireTMDB("rank_profile"); err != nil {
		return nil, err
	}
	ctx, requestID := withRequestID(ctx)
	ctx = services.WithUsername(ctx, username)
	logger := logging.WithContext(ctx, s.logger)
	start := time.Now()

	profile, err := s.scraper.ScrapeFavorites(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(profile.Films) < FilmsPerRanking {
		return nil, fmt.Errorf("%w: profile %s shows %d of %d favourites", ErrNotEnoughFilms, profile.Username, len(profile.Films), FilmsPerRanking)
	}
	refs := profile.Films[:FilmsPerRanking]

	films := make([]*film.Film, len(refs))
	causes := make([]error, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			films[i], causes[i] = s.resolveFavorite(gctx, ref)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, services.Wrap(services.ErrTimeout, "pipeline", "rank_profile", "request abandoned", err)
	}

	resolved := 0
	for i, f := range films {
		if f != nil {
			resolved++
			continue
		}
		films[i] = film.Placeholder(displayTitle(refs[i]), refs[i].Year)
		metrics.PlaceholderFilmsTotal.Inc()
		logging.WarnWithContext(logger, "favourite scored as placeholder", "film_placeholder",
			logging.String("title", refs[i].Title),
			logging.Int("year", refs[i].Year),
			logging.Error(causes[i]),
			logging.String(logging.FieldImpact, "score uses nominal rating for this film"),
			logging.String(logging.FieldErrorHint, "check the favourite title against TMDB"))
	}
	if resolved == 0 {
		return nil, shortfall("rank_profile", "favourites of "+profile.Username, resolved, len(refs), causes)
	}

	out := &ProfileRanking{
		Ranking:   s.score(logger, "profile", films, requestID, start),
		Username:  profile.Username,
		Favorites: refs,
		Stats:     profile.Stats,
	}
	return out, nil
}

// resolveFavorite returns (nil, cause) when ref cannot be turned into a film.
func (s *Service) resolveFavorite(ctx context.Context, ref letterboxd.FavoriteRef) (*film.Film, error) {
	match, err := s.resolver.Resolve(ctx, displayTitle(ref), ref.Year)
	if err != nil {
		return nil, err
	}
	if !match.Found() {
		return nil, services.Wrap(services.ErrNotFound, "pipeline", "resolve", "no tmdb match for "+displayTitle(ref), nil)
	}
	f, err := s.details.Details(ctx, match.TMDBID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, services.Wrap(services.ErrNotFound, "pipeline", "details", fmt.Sprintf("tmdb id %d unavailable", match.TMDBID), nil)
	}
	return f, nil
}

// RankByFilmIDs scores four films given by TMDB id.
func (s *Service) RankByFilmIDs(ctx context.Context, ids [FilmsPerRanking]int64) (*Ranking, error) {
	if err := s.requireTMDB("rank_ids"); err != nil {
		return nil, err
	}
	for _, id := range ids {
		if id <= 0 {
			return nil, services.Wrap(services.ErrValidation, "pipeline", "rank_ids", "film ids must be positive", nil)
		}
	}
	ctx, requestID := withRequestID(ctx)
	logger := logging.WithContext(ctx, s.logger)
	start := time.Now()

	films := make([]*film.Film, len(ids))
	causes := make([]error, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			films[i], causes[i] = s.details.Details(gctx, id)
			if causes[i] == nil && films[i] == nil {
				causes[i] = services.Wrap(services.ErrNotFound, "pipeline", "details", fmt.Sprintf("tmdb id %d unavailable", id), nil)
			}
			return nil
		})
	}
	_ = g.Wait()

	available := len(ids)
	for i, cause := range causes {
		if cause == nil {
			continue
		}
		available--
		logging.WarnWithContext(logger, "film unavailable", "film_unavailable",
			logging.Int64(logging.FieldTMDBID, ids[i]),
			logging.Error(cause),
			logging.String(logging.FieldImpact, "ranking not computed"),
			logging.String(logging.FieldErrorHint, "check the id on TMDB"))
	}
	if available < len(ids) {
		return nil, shortfall("rank_ids", "requested ids", available, len(ids), causes)
	}

	out := s.score(logger, "ids", films, requestID, start)
	return &out, nil
}

// shortfall classifies the per-film failures behind an incomplete film set.
// When every failure is a missing film the request has too few films; any
// other failure means TMDB could not answer, reported as upstream. Causes are
// kept in the message text only, never wrapped.
func shortfall(operation, subject string, available, total int, causes []error) error {
	detail := fmt.Sprintf("%s: %d of %d films available", subject, available, total)
	for _, cause := range causes {
		if cause != nil && !errors.Is(cause, services.ErrNotFound) {
			return services.Wrap(services.ErrUpstream, "pipeline", operation, detail+" ("+cause.Error()+")", nil)
		}
	}
	return fmt.Errorf("%w: %s", ErrNotEnoughFilms, detail)
}

func (s *Service) score(logger *slog.Logger, entry string, films []*film.Film, requestID string, start time.Time) Ranking {
	result := ranking.Score(films)
	metrics.ObserveRank(entry, result.Level)
	b := result.Breakdown
	logger.Info("ranking computed",
		logging.String("entry", entry),
		logging.Int("level", result.Level),
		logging.String("tier", result.Tier.Name),
		logging.Int("score", result.Score),
		logging.Float64("avg_rating", result.AvgRating),
		logging.String("breakdown", fmt.Sprintf("rating=%d genre=%d rarity=%d era=%d traits=%d penalty=%d",
			b.Rating, b.Genre, b.Rarity, b.Era, b.Traits, b.Penalty)),
		logging.Duration("elapsed", time.Since(start)))
	return Ranking{Result: result, Films: films, RequestID: requestID}
}

func displayTitle(ref letterboxd.FavoriteRef) string {
	if t := strings.TrimSpace(ref.Title); t != "" {
		return t
	}
	return letterboxd.HumanizeSlug(ref.Slug)
}
