package identification

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"cinetier/internal/identification/tmdb"
	"cinetier/internal/logging"
	"cinetier/internal/services"
)

// minMeaningfulYear is the threshold above which a supplied year constrains
// matching. Anything at or below it is treated as "no year".
const minMeaningfulYear = 1800

// Match is the outcome of a resolution. The zero value means no match.
type Match struct {
	TMDBID int64  `json:"tmdbId"`
	Title  string `json:"title"`
	Year   int    `json:"year"`
	Rule   Rule   `json:"rule"`
}

// Found reports whether a candidate was selected.
func (m Match) Found() bool {
	return m.TMDBID > 0
}

// Resolver maps titles to TMDB identifiers.
type Resolver struct {
	searcher     tmdb.Searcher
	logger       *slog.Logger
	altLanguages []string
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithAlternateLanguages adds one bare-title query per language so foreign
// films whose English title differs from the scraped one still surface.
func WithAlternateLanguages(languages ...string) ResolverOption {
	return func(r *Resolver) {
		for _, lang := range languages {
			if lang = strings.TrimSpace(lang); lang != "" {
				r.altLanguages = append(r.altLanguages, lang)
			}
		}
	}
}

// NewResolver constructs a Resolver on top of a TMDB searcher.
func NewResolver(searcher tmdb.Searcher, logger *slog.Logger, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		searcher: searcher,
		logger:   logging.NewComponentLogger(logger, "resolver"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type searchQuery struct {
	label string
	opts  tmdb.SearchOptions
}

// Resolve returns the TMDB film that title (and year, when > 1800) refers to.
// A zero Match with a nil error means no candidate passed the ladder. An error
// is returned only when the title is blank or every search query failed.
func (r *Resolver) Resolve(ctx context.Context, title string, year int) (Match, error) {
	logger := logging.WithContext(ctx, r.logger)
	clean := cleanTitle(title)
	if clean == "" {
		return Match{}, services.Wrap(services.ErrValidation, "resolver", "resolve", "title is empty", nil)
	}
	if year <= minMeaningfulYear {
		year = 0
	}

	plan := r.queryPlan(year)
	candidates, err := r.search(ctx, logger, clean, plan)
	if err != nil {
		return Match{}, err
	}

	logger.Debug("tmdb candidates collected",
		logging.String("title", clean),
		logging.Int("year", year),
		logging.Int("queries", len(plan)),
		logging.Int("candidates", len(candidates)))

	return selectCandidate(logger, clean, year, candidates), nil
}

func (r *Resolver) queryPlan(year int) []searchQuery {
	plan := []searchQuery{{label: "title"}}
	if year > 0 {
		plan = append(plan,
			searchQuery{label: "year", opts: tmdb.SearchOptions{Year: year}},
			searchQuery{label: "primary_release_year", opts: tmdb.SearchOptions{PrimaryReleaseYear: year}},
		)
	}
	for _, lang := range r.altLanguages {
		plan = append(plan, searchQuery{label: "language:" + lang, opts: tmdb.SearchOptions{Language: lang}})
	}
	return plan
}

// search runs every query concurrently and merges the result lists in plan
// order, keeping the first occurrence of each TMDB id.
func (r *Resolver) search(ctx context.Context, logger *slog.Logger, title string, plan []searchQuery) ([]tmdb.Result, error) {
	results := make([][]tmdb.Result, len(plan))
	var (
		mu       sync.Mutex
		failures int
		firstErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, query := range plan {
		i, query := i, query
		g.Go(func() error {
			start := time.Now()
			resp, err := r.searcher.SearchMovieWithOptions(gctx, title, query.opts)
			if err != nil {
				logging.WarnWithContext(logger, "tmdb search query failed", "tmdb_search_failed",
					logging.String("query", query.label),
					logging.Duration("elapsed", time.Since(start)),
					logging.Error(err),
					logging.String(logging.FieldImpact, "candidate pool narrowed"),
					logging.String(logging.FieldErrorHint, "check TMDB availability and api key"))
				mu.Lock()
				failures++
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return nil
			}
			results[i] = resp.Results
			return nil
		})
	}
	_ = g.Wait()

	if failures == len(plan) {
		return nil, services.Wrap(services.ErrUpstream, "resolver", "search", "every TMDB query failed", firstErr)
	}

	seen := make(map[int64]struct{})
	var merged []tmdb.Result
	for _, batch := range results {
		for _, candidate := range batch {
			if _, dup := seen[candidate.ID]; dup {
				continue
			}
			seen[candidate.ID] = struct{}{}
			merged = append(merged, candidate)
		}
	}
	return merged, nil
}

// cleanTitle trims and unifies curly apostrophes before matching.
func cleanTitle(title string) string {
	return strings.TrimSpace(strings.NewReplacer("‘", "'", "’", "'").Replace(title))
}
