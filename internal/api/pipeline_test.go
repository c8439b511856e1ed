package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cinetier/internal/filmdetail"
	"cinetier/internal/identification"
	"cinetier/internal/identification/tmdb"
	"cinetier/internal/letterboxd"
	"cinetier/internal/logging"
	"cinetier/internal/pipeline"
)

const favouritesProfile = `<html><body><section id="favourites"><ul>
  <li><div data-item-name="Rashomon (1950)"><img alt="Rashomon"></div><a href="/film/rashomon/"></a></li>
  <li><div data-item-name="Persona (1966)"><img alt="Persona"></div><a href="/film/persona/"></a></li>
  <li><div data-item-name="Stalker (1979)"><img alt="Stalker"></div><a href="/film/stalker/"></a></li>
  <li><div data-item-name="Cure (1997)"><img alt="Cure"></div><a href="/film/cure-1997/"></a></li>
</ul></section></body></html>`

// newTMDBStub answers /search/movie with no results and /movie/{id} with a
// minimal details payload for ids in known. Every request fails with 500 when
// down is set.
func newTMDBStub(t *testing.T, down bool, known ...int64) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if down {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/search/movie" {
			_, _ = w.Write([]byte(`{"page":1,"results":[]}`))
			return
		}
		for _, id := range known {
			if r.URL.Path == fmt.Sprintf("/movie/%d", id) {
				fmt.Fprintf(w, `{"id":%d,"title":"Film %d","release_date":"1970-01-01","original_language":"en",
					"vote_average":7.5,"vote_count":1000,"genres":[{"id":18,"name":"Drama"}],
					"credits":{"crew":[{"name":"Someone","job":"Director"}]}}`, id, id)
				return
			}
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func newPipelineServer(t *testing.T, tmdbURL string) *httptest.Server {
	t.Helper()
	profiles := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ana/" {
			_, _ = w.Write([]byte(favouritesProfile))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(profiles.Close)

	client, err := tmdb.New("key", tmdbURL, "")
	if err != nil {
		t.Fatalf("tmdb.New: %v", err)
	}
	logger := logging.NewNop()
	svc := pipeline.NewService(
		letterboxd.NewScraper(logger, letterboxd.WithBaseURL(profiles.URL)),
		identification.NewResolver(client, logger),
		filmdetail.NewFetcher(client, nil, logger),
		client, "", logger)
	srv := httptest.NewServer(NewServer(svc, Options{TMDBConfigured: true}, logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestShortfallStatusThroughPipeline(t *testing.T) {
	tests := []struct {
		name       string
		down       bool
		known      []int64
		rank       bool
		wantStatus int
	}{
		{name: "analyze with tmdb down", down: true, wantStatus: http.StatusBadGateway},
		{name: "analyze with one unknown id", known: []int64{1, 2, 3}, wantStatus: http.StatusBadRequest},
		{name: "rank with tmdb down", down: true, rank: true, wantStatus: http.StatusBadGateway},
		{name: "rank with no favourite on tmdb", rank: true, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newPipelineServer(t, newTMDBStub(t, tt.down, tt.known...).URL)
			var (
				resp *http.Response
				err  error
			)
			if tt.rank {
				resp, err = http.Get(srv.URL + "/api/rank/ana")
			} else {
				resp, err = http.Post(srv.URL+"/api/analyze", "application/json", strings.NewReader(`{"movieIds":[1,2,3,4]}`))
			}
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			body := decodeBody[ErrorResponse](t, resp)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", resp.StatusCode, tt.wantStatus, body.Error)
			}
			if tt.wantStatus == http.StatusBadGateway && strings.Contains(body.Error, "validation") {
				t.Fatalf("upstream failure reported as validation: %q", body.Error)
			}
		})
	}
}
