package ranking

import (
	"fmt"
	"math"
	"slices"

	"cinetier/internal/film"
)

const maxSubScore = 20

// Breakdown holds the rounded sub-scores. RawTotal is their sum minus the
// penalty before clamping; FinalScore is the clamped value.
type Breakdown struct {
	Rating     int `json:"rating"`
	Genre      int `json:"genre"`
	Rarity     int `json:"rarity"`
	Era        int `json:"era"`
	Traits     int `json:"traits"`
	Penalty    int `json:"penalty"`
	RawTotal   int `json:"rawTotal"`
	FinalScore int `json:"finalScore"`
}

// Analysis carries the derived figures shown next to a score. Year fields are
// zero when no film has a known year.
type Analysis struct {
	FilmCount      int     `json:"filmCount"`
	GenreCount     int     `json:"genreCount"`
	YearSpread     int     `json:"yearSpread"`
	OldestYear     int     `json:"oldestFilm"`
	NewestYear     int     `json:"newestFilm"`
	AvgYearGap     float64 `json:"avgYearGap"`
	AvgRarity      int     `json:"avgRarity"`
	AuteurCount    int     `json:"auteurCount"`
	HasForeign     bool    `json:"hasForeign"`
	HasClassic     bool    `json:"hasClassic"`
	HasSilentOrBW  bool    `json:"hasSilentOrBW"`
	FranchiseCount int     `json:"franchiseCount"`
}

// Result is a scored set of films.
type Result struct {
	Level     int       `json:"level"`
	Tier      Tier      `json:"tier"`
	Score     int       `json:"score"`
	AvgRating float64   `json:"avgRating"`
	Breakdown Breakdown `json:"scoreBreakdown"`
	Analysis  Analysis  `json:"analysis"`
	Reasons   []string  `json:"reasons"`
}

type aggregate struct {
	films          int
	ratingSum      float64
	raritySum      int
	genres         map[string]struct{}
	years          []int
	hasForeign     bool
	hasClassic     bool
	hasSilent      bool
	hasBlackWhite  bool
	hasModern      bool
	auteurCount    int
	franchiseCount int
}

// Score computes the taste score of films. Nil entries are ignored; an empty
// set scores zero at level 1 with a single diagnostic reason.
func Score(films []*film.Film) Result {
	agg := collect(films)
	if agg.films == 0 {
		return Result{
			Level:   1,
			Tier:    TierFor(1),
			Reasons: []string{"No valid films found"},
		}
	}

	avgRating := agg.ratingSum / float64(agg.films)
	avgRarity := float64(agg.raritySum) / float64(agg.films)
	spread := 0
	if len(agg.years) > 0 {
		spread = agg.years[len(agg.years)-1] - agg.years[0]
	}

	var (
		b       Breakdown
		reasons []string
	)

	b.Rating = subScore((avgRating - 5) * 5)
	switch {
	case avgRating >= 8.0:
		reasons = append(reasons, fmt.Sprintf("Excellent taste: %.1f avg rating", avgRating))
	case avgRating >= 7.0:
		reasons = append(reasons, fmt.Sprintf("Solid picks: %.1f avg rating", avgRating))
	default:
		reasons = append(reasons, fmt.Sprintf("Average rating: %.1f", avgRating))
	}

	genreCount := len(agg.genres)
	b.Genre = subScore(float64(genreCount) * 2.5)
	switch {
	case genreCount >= 7:
		reasons = append(reasons, fmt.Sprintf("Diverse palette: %d genres explored", genreCount))
	case genreCount >= 5:
		reasons = append(reasons, fmt.Sprintf("Good variety: %d genres", genreCount))
	}

	b.Rarity = subScore(avgRarity * 0.4)
	switch {
	case avgRarity >= 35:
		reasons = append(reasons, "Deep cuts: you dig beyond the surface")
	case avgRarity >= 20:
		reasons = append(reasons, "Nice mix of popular and lesser-known films")
	}

	b.Era = subScore(float64(spread) * 0.25)
	switch {
	case spread >= 50:
		reasons = append(reasons, fmt.Sprintf("Time traveler: spans %d years of cinema", spread))
	case spread >= 25:
		reasons = append(reasons, fmt.Sprintf("Decent range: %d year spread", spread))
	}

	var traits float64
	if agg.hasForeign {
		traits += 5
		reasons = append(reasons, "Subtitles don't scare you")
	}
	if agg.hasClassic {
		traits += 5
		reasons = append(reasons, "Respects the classics")
	}
	traits += math.Min(5, float64(agg.auteurCount)*1.5)
	if agg.auteurCount >= 2 {
		reasons = append(reasons, fmt.Sprintf("Auteur appreciation: %d master directors", agg.auteurCount))
	}
	if agg.hasModern {
		traits += 5
		reasons = append(reasons, "Eye for modern masterpieces")
	}
	b.Traits = subScore(traits)

	switch {
	case agg.franchiseCount >= 3:
		b.Penalty = 12
		reasons = append(reasons, "Franchise heavy: branch out!")
	case agg.franchiseCount == 2:
		b.Penalty = 6
		reasons = append(reasons, "Leaning on franchises")
	}

	b.RawTotal = b.Rating + b.Genre + b.Rarity + b.Era + b.Traits - b.Penalty
	b.FinalScore = clampScore(b.RawTotal)
	level := LevelFor(b.FinalScore)

	analysis := Analysis{
		FilmCount:      agg.films,
		GenreCount:     genreCount,
		YearSpread:     spread,
		AvgYearGap:     averageGap(agg.years),
		AvgRarity:      int(math.Round(avgRarity)),
		AuteurCount:    agg.auteurCount,
		HasForeign:     agg.hasForeign,
		HasClassic:     agg.hasClassic,
		HasSilentOrBW:  agg.hasSilent || agg.hasBlackWhite,
		FranchiseCount: agg.franchiseCount,
	}
	if len(agg.years) > 0 {
		analysis.OldestYear = agg.years[0]
		analysis.NewestYear = agg.years[len(agg.years)-1]
	}

	return Result{
		Level:     level,
		Tier:      TierFor(level),
		Score:     b.FinalScore,
		AvgRating: round1(avgRating / 2),
		Breakdown: b,
		Analysis:  analysis,
		Reasons:   reasons,
	}
}

func collect(films []*film.Film) aggregate {
	agg := aggregate{genres: make(map[string]struct{})}
	for _, f := range films {
		if f == nil {
			continue
		}
		agg.films++
		agg.ratingSum += f.Rating
		agg.raritySum += f.RarityScore
		for _, g := range f.Genres {
			agg.genres[g] = struct{}{}
		}
		if f.Year > 0 {
			agg.years = append(agg.years, f.Year)
			agg.hasClassic = agg.hasClassic || f.Year < 1970
			agg.hasSilent = agg.hasSilent || f.Year < 1930
			agg.hasModern = agg.hasModern || (f.Year >= 2000 && f.Rating >= 8.0)
		}
		agg.hasForeign = agg.hasForeign || f.IsForeignLanguage
		agg.hasBlackWhite = agg.hasBlackWhite || f.IsBlackAndWhite
		for _, d := range f.Directors {
			if IsAuteur(d) {
				agg.auteurCount++
			}
		}
		if IsFranchise(f.Title) {
			agg.franchiseCount++
		}
	}
	slices.Sort(agg.years)
	return agg
}

// subScore rounds v and clamps it to 0..20.
func subScore(v float64) int {
	return min(max(int(math.Round(v)), 0), maxSubScore)
}

func clampScore(raw int) int {
	return min(max(raw, 0), 100)
}

// averageGap is the mean difference between consecutive sorted years.
func averageGap(sorted []int) float64 {
	if len(sorted) < 2 {
		return 0
	}
	return round1(float64(sorted[len(sorted)-1]-sorted[0]) / float64(len(sorted)-1))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
