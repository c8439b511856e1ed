package filmdetail

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"cinetier/internal/filmcache"
	"cinetier/internal/identification/tmdb"
	"cinetier/internal/logging"
	"cinetier/internal/services"
)

var fixedNow = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

type fakeTMDB struct {
	details     func(id int64) (*tmdb.MovieDetails, error)
	credits     func(id int64) (*tmdb.Credits, error)
	detailCalls atomic.Int32
	creditCalls atomic.Int32
}

func (f *fakeTMDB) SearchMovieWithOptions(context.Context, string, tmdb.SearchOptions) (*tmdb.Response, error) {
	return nil, errors.New("not used")
}

func (f *fakeTMDB) GetMovieDetails(_ context.Context, id int64) (*tmdb.MovieDetails, error) {
	f.detailCalls.Add(1)
	return f.details(id)
}

func (f *fakeTMDB) GetMovieCredits(_ context.Context, id int64) (*tmdb.Credits, error) {
	f.creditCalls.Add(1)
	if f.credits == nil {
		return nil, errors.New("not used")
	}
	return f.credits(id)
}

func ikiru() *tmdb.MovieDetails {
	return &tmdb.MovieDetails{
		ID: 3782, Title: "Ikiru", OriginalLanguage: "ja", ReleaseDate: "1952-10-09",
		VoteAverage: 8.0, VoteCount: 1200, PosterPath: "/ikiru.jpg",
		Genres:              []tmdb.Genre{{ID: 18, Name: "Drama"}},
		ProductionCountries: []tmdb.Country{{Code: "JP", Name: "Japan"}},
		Credits:             &tmdb.Credits{Crew: []tmdb.CrewMember{{Name: "Akira Kurosawa", Job: "Director"}}},
	}
}

func TestDetailsFetchesDerivesAndCaches(t *testing.T) {
	fake := &fakeTMDB{details: func(int64) (*tmdb.MovieDetails, error) { return ikiru(), nil }}
	fetcher := NewFetcher(fake, filmcache.NewLayered(nil, logging.NewNop()), logging.NewNop(),
		WithImageBaseURL("https://img.test/w500"), WithClock(func() time.Time { return fixedNow }))

	got, err := fetcher.Details(context.Background(), 3782)
	if err != nil {
		t.Fatalf("Details returned error: %v", err)
	}
	if got.Title != "Ikiru" || got.Year != 1952 || !got.IsForeignLanguage || !got.IsBlackAndWhite || got.IsSilentEra {
		t.Fatalf("unexpected film %+v", got)
	}
	// 30 (votes) + 7 (age 74) + 10 (gem)
	if got.RarityScore != 47 {
		t.Fatalf("rarity = %d, want 47", got.RarityScore)
	}
	if got.PosterURL != "https://img.test/w500/ikiru.jpg" || got.Countries[0] != "JP" || got.Directors[0] != "Akira Kurosawa" {
		t.Fatalf("unexpected film %+v", got)
	}

	again, err := fetcher.Details(context.Background(), 3782)
	if err != nil || again.Title != "Ikiru" || again.PosterURL == "" {
		t.Fatalf("cached lookup = %+v, %v", again, err)
	}
	if fake.detailCalls.Load() != 1 {
		t.Fatalf("expected a single TMDB call, got %d", fake.detailCalls.Load())
	}
}

func TestDetailsWithoutCacheMatchesCached(t *testing.T) {
	fake := &fakeTMDB{details: func(int64) (*tmdb.MovieDetails, error) { return ikiru(), nil }}
	clock := WithClock(func() time.Time { return fixedNow })
	plain, err := NewFetcher(fake, nil, logging.NewNop(), clock).Details(context.Background(), 3782)
	if err != nil {
		t.Fatalf("Details returned error: %v", err)
	}
	cached := NewFetcher(fake, filmcache.NewLayered(nil, logging.NewNop()), logging.NewNop(), clock)
	_, _ = cached.Details(context.Background(), 3782)
	fromCache, err := cached.Details(context.Background(), 3782)
	if err != nil {
		t.Fatalf("Details returned error: %v", err)
	}
	if plain.Title != fromCache.Title || plain.RarityScore != fromCache.RarityScore || plain.IsBlackAndWhite != fromCache.IsBlackAndWhite {
		t.Fatalf("cache changed the result: %+v vs %+v", plain, fromCache)
	}
}

func TestDetailsDisabled(t *testing.T) {
	fetcher := NewFetcher(nil, nil, logging.NewNop())
	if fetcher.Enabled() {
		t.Fatal("fetcher without searcher must be disabled")
	}
	got, err := fetcher.Details(context.Background(), 3782)
	if got != nil || err != nil {
		t.Fatalf("expected (nil, nil), got %+v, %v", got, err)
	}
}

func TestDetailsErrors(t *testing.T) {
	tests := []struct {
		name    string
		id      int64
		err     error
		wantErr error
	}{
		{"not found is not an error", 9, &tmdb.StatusError{Operation: "details", StatusCode: http.StatusNotFound}, nil},
		{"server error is upstream", 9, &tmdb.StatusError{Operation: "details", StatusCode: http.StatusBadGateway}, services.ErrUpstream},
		{"timeout is upstream", 9, context.DeadlineExceeded, services.ErrUpstream},
		{"invalid id", 0, nil, services.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTMDB{details: func(int64) (*tmdb.MovieDetails, error) { return nil, tt.err }}
			got, err := NewFetcher(fake, nil, logging.NewNop()).Details(context.Background(), tt.id)
			if got != nil {
				t.Fatalf("expected no film, got %+v", got)
			}
			if tt.wantErr == nil && err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDetailsFallsBackToCreditsEndpoint(t *testing.T) {
	withoutCredits := func(int64) (*tmdb.MovieDetails, error) {
		d := ikiru()
		d.Credits = nil
		return d, nil
	}

	fake := &fakeTMDB{
		details: withoutCredits,
		credits: func(int64) (*tmdb.Credits, error) {
			return &tmdb.Credits{Crew: []tmdb.CrewMember{{Name: "Akira Kurosawa", Job: "Director"}}}, nil
		},
	}
	got, err := NewFetcher(fake, nil, logging.NewNop()).Details(context.Background(), 3782)
	if err != nil || len(got.Directors) != 1 {
		t.Fatalf("expected directors from credits endpoint, got %+v, %v", got, err)
	}

	failing := &fakeTMDB{details: withoutCredits}
	got, err = NewFetcher(failing, nil, logging.NewNop()).Details(context.Background(), 3782)
	if err != nil {
		t.Fatalf("credits failure must not fail the film: %v", err)
	}
	if got.Directors == nil || len(got.Directors) != 0 {
		t.Fatalf("expected empty directors, got %#v", got.Directors)
	}
	if failing.creditCalls.Load() != 1 {
		t.Fatalf("expected one credits call, got %d", failing.creditCalls.Load())
	}
}

func TestBuildFlags(t *testing.T) {
	tests := []struct {
		name                string
		date, lang          string
		keywords            []string
		foreign, bw, silent bool
	}{
		{"modern english", "2014-10-10", "en", nil, false, false, false},
		{"silent german", "1927-01-10", "de", nil, true, true, true},
		{"late black and white keyword", "1993-11-30", "en", []string{"Black and White"}, false, true, false},
		{"unknown year is not old", "", "", nil, false, false, false},
		{"upper case language", "1960-01-01", "EN", nil, false, false, false},
		{"cantonese", "1994-07-14", "cn", nil, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &tmdb.MovieDetails{ID: 1, Title: "x", ReleaseDate: tt.date, OriginalLanguage: tt.lang}
			if tt.keywords != nil {
				d.Keywords = &struct {
					Keywords []tmdb.Keyword `json:"keywords"`
				}{}
				for _, kw := range tt.keywords {
					d.Keywords.Keywords = append(d.Keywords.Keywords, tmdb.Keyword{Name: kw})
				}
			}
			f := Build(d, fixedNow)
			if f.IsForeignLanguage != tt.foreign || f.IsBlackAndWhite != tt.bw || f.IsSilentEra != tt.silent {
				t.Fatalf("flags = foreign %v bw %v silent %v", f.IsForeignLanguage, f.IsBlackAndWhite, f.IsSilentEra)
			}
		})
	}
}

func TestDetailsAgainstHTTPServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/1398" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"id":1398,"title":"Stalker","original_language":"ru","release_date":"1979-05-25",
			"vote_average":8.1,"vote_count":2500,"genres":[{"id":18,"name":"Drama"},{"id":878,"name":"Science Fiction"}],
			"credits":{"crew":[{"name":"Andrei Tarkovsky","job":"Director"}]}}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "en-US")
	if err != nil {
		t.Fatalf("tmdb.New returned error: %v", err)
	}
	fetcher := NewFetcher(client, nil, logging.NewNop(), WithClock(func() time.Time { return fixedNow }))

	got, err := fetcher.Details(context.Background(), 1398)
	if err != nil {
		t.Fatalf("Details returned error: %v", err)
	}
	if got.Title != "Stalker" || len(got.Genres) != 2 || got.Directors[0] != "Andrei Tarkovsky" || got.IsBlackAndWhite {
		t.Fatalf("unexpected film %+v", got)
	}
	missing, err := fetcher.Details(context.Background(), 77)
	if missing != nil || err != nil {
		t.Fatalf("expected (nil, nil) for unknown id, got %+v, %v", missing, err)
	}
}
