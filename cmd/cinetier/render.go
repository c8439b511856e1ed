package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"cinetier/internal/film"
	"cinetier/internal/identification"
	"cinetier/internal/language"
	"cinetier/internal/pipeline"
	"cinetier/internal/ranking"
)

func renderRanking(out io.Writer, heading string, r *pipeline.Ranking) {
	if heading != "" {
		fmt.Fprintln(out, heading)
	}
	fmt.Fprintf(out, "%s  Level %d: %s (%d/100)\n", r.Tier.Icon, r.Level, r.Tier.Name, r.Score)
	fmt.Fprintf(out, "%s\n\n", r.Tier.Description)

	fmt.Fprintln(out, renderFilms(r.Films))

	b := r.Breakdown
	fmt.Fprintln(out, renderTable(
		[]string{"Component", "Points"},
		[][]string{
			{"Rating", strconv.Itoa(b.Rating)},
			{"Genre diversity", strconv.Itoa(b.Genre)},
			{"Rarity", strconv.Itoa(b.Rarity)},
			{"Era spread", strconv.Itoa(b.Era)},
			{"Traits", strconv.Itoa(b.Traits)},
			{"Franchise penalty", penaltyLabel(b.Penalty)},
			{"Total", strconv.Itoa(b.FinalScore)},
		},
		[]columnAlignment{alignLeft, alignRight},
	))

	if len(r.Reasons) > 0 {
		fmt.Fprintln(out, "\nWhy:")
		for _, reason := range r.Reasons {
			fmt.Fprintf(out, "  - %s\n", reason)
		}
	}
}

func renderProfileRanking(out io.Writer, r *pipeline.ProfileRanking) {
	name := r.Stats.DisplayName
	if name == "" {
		name = r.Username
	}
	heading := fmt.Sprintf("%s (@%s)", name, r.Username)
	if r.Stats.FilmsWatched > 0 {
		heading += fmt.Sprintf(": %d films watched", r.Stats.FilmsWatched)
	}
	renderRanking(out, heading, &r.Ranking)
}

func renderFilms(films []*film.Film) string {
	rows := make([][]string, 0, len(films))
	for _, f := range films {
		if f == nil {
			continue
		}
		title := f.Title
		if f.Placeholder {
			title += " (unresolved)"
		}
		rows = append(rows, []string{
			title,
			yearLabel(f.Year),
			fmt.Sprintf("%.1f", f.Rating),
			strconv.Itoa(f.RarityScore),
			language.DisplayName(f.OriginalLanguage),
			strings.Join(f.Directors, ", "),
			strings.Join(f.Genres, ", "),
		})
	}
	return renderTable(
		[]string{"Film", "Year", "Rating", "Rarity", "Language", "Director", "Genres"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft, alignLeft, alignLeft},
	)
}

func renderTiers(tiers []ranking.Tier) string {
	rows := make([][]string, 0, len(tiers))
	for _, t := range tiers {
		rows = append(rows, []string{strconv.Itoa(t.Level), t.Icon + " " + t.Name, t.Description})
	}
	return renderTable([]string{"Level", "Tier", "Description"}, rows, []columnAlignment{alignRight})
}

func renderSearchHits(hits []pipeline.SearchHit) string {
	rows := make([][]string, 0, len(hits))
	for _, h := range hits {
		director := h.Director
		if director == "" {
			director = "unknown"
		}
		rows = append(rows, []string{strconv.FormatInt(h.ID, 10), h.Title, yearLabel(h.Year), director})
	}
	return renderTable([]string{"TMDB ID", "Title", "Year", "Director"}, rows, []columnAlignment{alignRight})
}

func renderMatch(m identification.Match) string {
	if !m.Found() {
		return "No confident TMDB match"
	}
	return renderTable(
		[]string{"TMDB ID", "Title", "Year", "Rule"},
		[][]string{{strconv.FormatInt(m.TMDBID, 10), m.Title, yearLabel(m.Year), string(m.Rule)}},
		[]columnAlignment{alignRight},
	)
}

func penaltyLabel(p int) string {
	if p <= 0 {
		return "0"
	}
	return "-" + strconv.Itoa(p)
}

func yearLabel(year int) string {
	if year <= 0 {
		return "?"
	}
	return strconv.Itoa(year)
}
