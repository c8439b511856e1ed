package letterboxd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"cinetier/internal/logging"
	"cinetier/internal/metrics"
	"cinetier/internal/services"
)

const (
	defaultBaseURL      = "https://letterboxd.com"
	defaultUserAgent    = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	defaultTimeout      = 10 * time.Second
	defaultStatsTimeout = 15 * time.Second
	maxFavorites        = 4
	maxPageBytes        = 8 << 20
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,64}$`)

// FavoriteRef is one favourite as found on the profile page. Title or Slug is
// always set; Year is zero when the page does not carry it.
type FavoriteRef struct {
	Title string `json:"title"`
	Year  int    `json:"year,omitempty"`
	Slug  string `json:"slug,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Profile is the outcome of a scrape.
type Profile struct {
	Username string        `json:"username"`
	Films    []FavoriteRef `json:"films"`
	Stats    Stats         `json:"stats"`
}

// Scraper fetches Letterboxd profile pages.
type Scraper struct {
	baseURL      string
	userAgent    string
	timeout      time.Duration
	statsTimeout time.Duration
	httpClient   *http.Client
	logger       *slog.Logger
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithBaseURL points the scraper at another host, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(s *Scraper) {
		if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
			s.baseURL = trimmed
		}
	}
}

// WithUserAgent overrides the browser user agent sent with each request.
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		if ua = strings.TrimSpace(ua); ua != "" {
			s.userAgent = ua
		}
	}
}

// WithTimeouts sets the profile and stats page budgets. Non-positive values
// keep the defaults.
func WithTimeouts(profile, stats time.Duration) Option {
	return func(s *Scraper) {
		if profile > 0 {
			s.timeout = profile
		}
		if stats > 0 {
			s.statsTimeout = stats
		}
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Scraper) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// NewScraper constructs a Scraper.
func NewScraper(logger *slog.Logger, opts ...Option) *Scraper {
	s := &Scraper{
		baseURL:      defaultBaseURL,
		userAgent:    defaultUserAgent,
		timeout:      defaultTimeout,
		statsTimeout: defaultStatsTimeout,
		httpClient:   &http.Client{},
		logger:       logging.NewComponentLogger(logger, "letterboxd"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScrapeFavorites reads the favourite films and profile statistics of
// username. A profile without favourites yields an empty Films slice and no
// error.
func (s *Scraper) ScrapeFavorites(ctx context.Context, username string) (Profile, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if !usernamePattern.MatchString(username) {
		return Profile{}, services.Wrap(services.ErrValidation, "letterboxd", "scrape", "invalid username", nil)
	}
	logger := logging.WithContext(ctx, s.logger).With(logging.String(logging.FieldUsername, username))

	doc, err := s.fetchDocument(ctx, "profile", s.baseURL+"/"+username+"/", s.timeout)
	if err != nil {
		return Profile{}, err
	}

	profile := Profile{Username: username, Stats: extractProfileStats(doc, username)}
	for _, ex := range extractors {
		films := ex.extract(doc, s.baseURL)
		if len(films) == 0 {
			logger.Debug("favourite extractor found nothing", logging.String("extractor", ex.name))
			continue
		}
		profile.Films = films
		logger.Info("favourites extracted",
			logging.String("extractor", ex.name),
			logging.Int("films", len(films)))
		break
	}
	if len(profile.Films) == 0 {
		logging.WarnWithContext(logger, "no favourites found on profile", "favorites_missing",
			logging.String(logging.FieldImpact, "profile cannot be ranked"),
			logging.String(logging.FieldErrorHint, "user must pin four favourite films"))
	}

	statsDoc, err := s.fetchDocument(ctx, "stats", s.baseURL+"/"+username+"/stats/", s.statsTimeout)
	if err != nil {
		logging.WarnWithContext(logger, "stats page unavailable", "stats_fetch_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "stats limited to profile page"),
			logging.String(logging.FieldErrorHint, "stats pages may be restricted to patron accounts"))
		return profile, nil
	}
	mergeStatsPage(&profile.Stats, statsDoc)
	return profile, nil
}

// fetchDocument downloads pageURL within timeout and parses it.
func (s *Scraper) fetchDocument(ctx context.Context, operation, pageURL string, timeout time.Duration) (*goquery.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrUpstream, "letterboxd", operation, "build request", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		metrics.ObserveUpstream("letterboxd", operation, 0, latency)
		return nil, services.Wrap(services.ErrUpstream, "letterboxd", operation, "could not fetch profile",
			fmt.Errorf("latency=%v: %w", latency, err))
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream("letterboxd", operation, resp.StatusCode, latency)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, services.Wrap(services.ErrNotFound, "letterboxd", operation, "profile not found", nil)
	case resp.StatusCode != http.StatusOK:
		return nil, services.Wrap(services.ErrUpstream, "letterboxd", operation, "could not fetch profile",
			fmt.Errorf("status %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, services.Wrap(services.ErrUpstream, "letterboxd", operation, "parse page", err)
	}
	return doc, nil
}
