package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"cinetier/internal/identification"
	"cinetier/internal/pipeline"
	"cinetier/internal/ranking"
)

type catalogueFilm struct {
	id       int64
	title    string
	date     string
	language string
	genre    string
	director string
	votes    int64
	rating   float64
}

var catalogue = []catalogueFilm{
	{1, "Rashomon", "1950-08-25", "ja", "Drama", "Akira Kurosawa", 3000, 8.0},
	{2, "Persona", "1966-10-18", "sv", "Mystery", "Ingmar Bergman", 2000, 8.1},
	{3, "Mulholland Drive", "2001-10-12", "en", "Thriller", "David Lynch", 9000, 7.6},
	{4, "Past Lives", "2023-06-02", "en", "Romance", "Celine Song", 2500, 7.8},
}

const profilePage = `<html><body>
<h1 class="title-1">Ana Lima</h1>
<section id="favourites"><ul>
  <li><div data-item-name="Rashomon (1950)"><img alt="Rashomon"></div><a href="/film/rashomon/"></a></li>
  <li><div data-item-name="Persona (1966)"><img alt="Persona"></div><a href="/film/persona/"></a></li>
  <li><div data-item-name="Mulholland Drive (2001)"><img alt="Mulholland Drive"></div><a href="/film/mulholland-drive/"></a></li>
  <li><div data-item-name="Past Lives (2023)"><img alt="Past Lives"></div><a href="/film/past-lives/"></a></li>
</ul></section>
</body></html>`

func newFakeTMDB(t *testing.T) *httptest.Server {
	t.Helper()
	write := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/search/movie" {
			query := strings.ToLower(r.URL.Query().Get("query"))
			results := []map[string]any{}
			for _, f := range catalogue {
				if strings.Contains(strings.ToLower(f.title), query) {
					results = append(results, map[string]any{
						"id": f.id, "title": f.title, "original_title": f.title,
						"release_date": f.date, "poster_path": fmt.Sprintf("/p%d.jpg", f.id),
					})
				}
			}
			write(w, map[string]any{"page": 1, "results": results})
			return
		}
		rest, ok := strings.CutPrefix(r.URL.Path, "/movie/")
		if !ok {
			http.NotFound(w, r)
			return
		}
		idPart, wantCredits := strings.CutSuffix(rest, "/credits")
		id, _ := strconv.ParseInt(idPart, 10, 64)
		for _, f := range catalogue {
			if f.id != id {
				continue
			}
			credits := map[string]any{"id": f.id, "crew": []map[string]string{{"name": f.director, "job": "Director"}}}
			if wantCredits {
				write(w, credits)
				return
			}
			write(w, map[string]any{
				"id": f.id, "title": f.title, "original_title": f.title, "original_language": f.language,
				"release_date": f.date, "vote_average": f.rating, "vote_count": f.votes,
				"genres":  []map[string]any{{"id": 1, "name": f.genre}},
				"credits": credits,
			})
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func newFakeLetterboxd(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ana/" {
			_, _ = w.Write([]byte(profilePage))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

type cliEnv struct {
	configPath string
	dir        string
}

func setupCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("TMDB_API_KEY", "key")
	t.Setenv("CINETIER_REDIS_ADDR", "")
	t.Setenv("CINETIER_POSTGRES_DSN", "")

	tmdbServer := newFakeTMDB(t)
	letterboxdServer := newFakeLetterboxd(t)
	content := fmt.Sprintf(`[tmdb]
api_key = "key"
base_url = %q
image_base_url = "https://img.test/w342"
requests_per_second = 0

[letterboxd]
base_url = %q

[cache]
backend = "sqlite"
sqlite_path = %q

[server]
lock_path = %q

[logging]
level = "error"
`, tmdbServer.URL, letterboxdServer.URL, filepath.Join(dir, "films.db"), filepath.Join(dir, "serve.lock"))

	path := filepath.Join(dir, "cinetier.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cliEnv{configPath: path, dir: dir}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q in output:\n%s", needle, haystack)
	}
}

func TestRankCommandEndToEnd(t *testing.T) {
	env := setupCLIEnv(t)

	out, err := runCLI(t, env.configPath, "rank", "ana")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	var result pipeline.ProfileRanking
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode rank output: %v\n%s", err, out)
	}
	if result.Username != "ana" || result.Stats.DisplayName != "Ana Lima" || len(result.Films) != 4 {
		t.Fatalf("unexpected ranking %+v", result)
	}
	for i, f := range result.Films {
		if f.Placeholder || f.TMDBID != catalogue[i].id || len(f.Directors) != 1 {
			t.Fatalf("film %d not resolved: %+v", i, f)
		}
	}
	if result.Tier.Level != result.Level || result.Level < 1 {
		t.Fatalf("inconsistent tier in %+v", result.Result)
	}

	out, err = runCLI(t, env.configPath, "cache", "get", "3")
	if err != nil {
		t.Fatalf("cache get: %v", err)
	}
	requireContains(t, out, `"title": "Mulholland Drive"`)

	out, err = runCLI(t, env.configPath, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "backend: sqlite")
	if _, err := runCLI(t, env.configPath, "cache", "get", "3"); err == nil {
		t.Fatal("expected a miss after clearing the cache")
	}
}

func TestAnalyzeCommand(t *testing.T) {
	env := setupCLIEnv(t)

	out, err := runCLI(t, env.configPath, "analyze", "4", "3", "2", "1")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var result pipeline.Ranking
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode analyze output: %v", err)
	}
	if len(result.Films) != 4 || result.Films[0].Title != "Past Lives" {
		t.Fatalf("unexpected films %+v", result.Films)
	}

	if _, err := runCLI(t, env.configPath, "analyze", "1", "2", "3", "abc"); err == nil {
		t.Fatal("expected invalid id error")
	}
	if _, err := runCLI(t, env.configPath, "analyze", "1", "2", "3"); err == nil {
		t.Fatal("expected argument count error")
	}
	if _, err := runCLI(t, env.configPath, "analyze", "1", "2", "3", "77"); err == nil {
		t.Fatal("expected an error for an unknown film")
	}
}

func TestResolveCommand(t *testing.T) {
	env := setupCLIEnv(t)

	out, err := runCLI(t, env.configPath, "resolve", "--year", "1966", "Persona")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	var match identification.Match
	if err := json.Unmarshal([]byte(out), &match); err != nil {
		t.Fatalf("decode resolve output: %v", err)
	}
	if match.TMDBID != 2 || match.Rule != identification.RuleExactYearTitle {
		t.Fatalf("unexpected match %+v", match)
	}
}

func TestSearchCommand(t *testing.T) {
	env := setupCLIEnv(t)

	out, err := runCLI(t, env.configPath, "search", "rash")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	var hits []pipeline.SearchHit
	if err := json.Unmarshal([]byte(out), &hits); err != nil {
		t.Fatalf("decode search output: %v", err)
	}
	if len(hits) != 1 || hits[0].Director != "Akira Kurosawa" || hits[0].PosterURL != "https://img.test/w342/p1.jpg" {
		t.Fatalf("unexpected hits %+v", hits)
	}
}

func TestTiersCommandSkipsConfig(t *testing.T) {
	out, err := runCLI(t, filepath.Join(t.TempDir(), "missing", "bad.toml"), "tiers")
	if err != nil {
		t.Fatalf("tiers: %v", err)
	}
	var tiers []ranking.Tier
	if err := json.Unmarshal([]byte(out), &tiers); err != nil {
		t.Fatalf("decode tiers: %v", err)
	}
	if len(tiers) != 10 {
		t.Fatalf("expected 10 tiers, got %d", len(tiers))
	}
}

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLIEnv(t)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected refusal to overwrite")
	}

	out, err = runCLI(t, env.configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "# tmdb configured: yes")
	requireContains(t, out, "****")
	if strings.Contains(out, `api_key = 'key'`) || strings.Contains(out, `api_key = "key"`) {
		t.Fatalf("api key leaked:\n%s", out)
	}
}

func TestLogLevelFlagValidated(t *testing.T) {
	env := setupCLIEnv(t)
	if _, err := runCLI(t, env.configPath, "--log-level", "chatty", "config", "show"); err == nil {
		t.Fatal("expected invalid log level to be rejected")
	}
}

func TestServeLockIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locks", "serve.lock")
	first, err := acquireServeLock(path)
	if err != nil {
		t.Fatalf("first lock: %v", err)
	}
	defer first.Unlock()
	if _, err := acquireServeLock(path); err == nil {
		t.Fatal("expected second lock to fail")
	}
}

func TestCommandLoggerIsBuiltOnce(t *testing.T) {
	env := setupCLIEnv(t)
	configFlag, jsonFlag, levelFlag := env.configPath, false, ""
	ctx := newCommandContext(&configFlag, &jsonFlag, &levelFlag)

	first, err := ctx.logger()
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	err = ctx.withPipeline(context.Background(), func(*pipeline.Stack) error {
		second, err := ctx.logger()
		if err != nil {
			return err
		}
		if second != first {
			t.Fatal("expected the pipeline to share the command logger")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("withPipeline: %v", err)
	}
}
