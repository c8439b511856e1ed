// Package film defines the resolved film record shared by detail fetching,
// caching, scoring and the output surfaces.
package film

import "strings"

// PlaceholderRating is the nominal TMDB-scale rating given to a favourite that
// could not be resolved.
const PlaceholderRating = 6.0

// Film is a favourite resolved against TMDB. Year 0 means unknown.
type Film struct {
	TMDBID            int64    `json:"tmdbId,omitempty"`
	Title             string   `json:"title"`
	Year              int      `json:"year"`
	Rating            float64  `json:"rating"`
	VoteCount         int      `json:"voteCount"`
	Genres            []string `json:"genres"`
	Directors         []string `json:"directors"`
	Countries         []string `json:"countries,omitempty"`
	OriginalLanguage  string   `json:"originalLanguage,omitempty"`
	IsForeignLanguage bool     `json:"isForeignLanguage"`
	IsBlackAndWhite   bool     `json:"isBlackAndWhite"`
	IsSilentEra       bool     `json:"isSilentEra"`
	RarityScore       int      `json:"rarityScore"`
	PosterPath        string   `json:"posterPath,omitempty"`
	PosterURL         string   `json:"posterUrl,omitempty"`
	Placeholder       bool     `json:"placeholder,omitempty"`
}

// Placeholder stands in for a favourite that could not be resolved so scoring
// still sees four films.
func Placeholder(title string, year int) *Film {
	if year < 0 {
		year = 0
	}
	return &Film{
		Title:       strings.TrimSpace(title),
		Year:        year,
		Rating:      PlaceholderRating,
		Genres:      []string{},
		Directors:   []string{},
		Placeholder: true,
	}
}

// Clone returns a deep copy so cached records are never shared with callers.
func (f *Film) Clone() *Film {
	if f == nil {
		return nil
	}
	out := *f
	out.Genres = cloneStrings(f.Genres)
	out.Directors = cloneStrings(f.Directors)
	out.Countries = cloneStrings(f.Countries)
	return &out
}

// WithPosterURL fills PosterURL from imageBase when a poster path is known.
func (f *Film) WithPosterURL(imageBase string) *Film {
	if f != nil && f.PosterPath != "" && imageBase != "" {
		f.PosterURL = strings.TrimRight(imageBase, "/") + "/" + strings.TrimLeft(f.PosterPath, "/")
	}
	return f
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
