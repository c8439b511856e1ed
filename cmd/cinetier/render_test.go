package main

import (
	"bytes"
	"strings"
	"testing"

	"cinetier/internal/film"
	"cinetier/internal/identification"
	"cinetier/internal/letterboxd"
	"cinetier/internal/pipeline"
	"cinetier/internal/ranking"
)

func TestRenderProfileRanking(t *testing.T) {
	films := []*film.Film{
		{Title: "Rashomon", Year: 1950, Rating: 8.0, RarityScore: 40, OriginalLanguage: "ja", Directors: []string{"Akira Kurosawa"}, Genres: []string{"Drama"}},
		{Title: "Persona", Year: 1966, Rating: 8.1, Genres: []string{"Drama"}},
		{Title: "Stalker", Year: 1979, Rating: 8.1, Genres: []string{"Science Fiction"}},
		film.Placeholder("Lost Reel", 0),
	}
	r := &pipeline.ProfileRanking{
		Ranking:  pipeline.Ranking{Result: ranking.Score(films), Films: films},
		Username: "ana",
		Stats:    letterboxd.Stats{DisplayName: "Ana Lima", FilmsWatched: 1234},
	}
	var out bytes.Buffer
	renderProfileRanking(&out, r)
	text := out.String()
	for _, want := range []string{"Ana Lima (@ana): 1234 films watched", r.Tier.Name, "Akira Kurosawa", "Japanese", "Lost Reel (unresolved)", "Franchise penalty", "Why:"} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in:\n%s", want, text)
		}
	}
}

func TestRenderHelpers(t *testing.T) {
	if got := renderTiers(ranking.Tiers()); !strings.Contains(got, "The Cinema Deity") {
		t.Fatalf("tiers table missing top tier:\n%s", got)
	}
	if got := renderSearchHits([]pipeline.SearchHit{{ID: 1398, Title: "Stalker"}}); !strings.Contains(got, "unknown") || !strings.Contains(got, "?") {
		t.Fatalf("search table should mark unknown director and year:\n%s", got)
	}
	if got := renderMatch(identification.Match{}); got != "No confident TMDB match" {
		t.Fatalf("renderMatch(zero) = %q", got)
	}
	if penaltyLabel(0) != "0" || penaltyLabel(6) != "-6" {
		t.Fatal("unexpected penalty labels")
	}
}

func TestMasking(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"abc", "****"},
		{"0123456789abcdef", "****cdef"},
	}
	for _, tt := range tests {
		if got := maskSecret(tt.in); got != tt.want {
			t.Fatalf("maskSecret(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	dsns := []struct {
		in, want string
	}{
		{"postgres://cine:s3cret@db:5432/cinetier", "postgres://cine:****@db:5432/cinetier"},
		{"postgres://db:5432/cinetier", "postgres://db:5432/cinetier"},
		{"postgres://cine@db/cinetier", "postgres://cine@db/cinetier"},
	}
	for _, tt := range dsns {
		if got := maskDSN(tt.in); got != tt.want {
			t.Fatalf("maskDSN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
