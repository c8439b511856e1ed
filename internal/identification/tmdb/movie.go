package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Genre is a TMDB genre entry.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Country is a TMDB production country entry.
type Country struct {
	Code string `json:"iso_3166_1"`
	Name string `json:"name"`
}

// CrewMember is a single crew credit.
type CrewMember struct {
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

// Credits holds the crew list of a movie.
type Credits struct {
	ID   int64        `json:"id"`
	Crew []CrewMember `json:"crew"`
}

// Directors returns the names credited with the Director job, in credit order.
func (c *Credits) Directors() []string {
	if c == nil {
		return nil
	}
	var names []string
	for _, member := range c.Crew {
		if member.Job == "Director" && strings.TrimSpace(member.Name) != "" {
			names = append(names, member.Name)
		}
	}
	return names
}

// Keyword is a TMDB keyword entry.
type Keyword struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MovieDetails is the /movie/{id} payload with credits and keywords appended.
type MovieDetails struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	OriginalTitle       string    `json:"original_title"`
	OriginalLanguage    string    `json:"original_language"`
	ReleaseDate         string    `json:"release_date"`
	PosterPath          string    `json:"poster_path"`
	VoteAverage         float64   `json:"vote_average"`
	VoteCount           int64     `json:"vote_count"`
	Popularity          float64   `json:"popularity"`
	Genres              []Genre   `json:"genres"`
	ProductionCountries []Country `json:"production_countries"`
	Credits             *Credits  `json:"credits"`
	Keywords            *struct {
		Keywords []Keyword `json:"keywords"`
	} `json:"keywords"`
}

// Year returns the release year, or 0 when unknown.
func (d *MovieDetails) Year() int {
	return yearFromDate(d.ReleaseDate)
}

// KeywordNames returns the keyword names in payload order.
func (d *MovieDetails) KeywordNames() []string {
	if d.Keywords == nil {
		return nil
	}
	names := make([]string, 0, len(d.Keywords.Keywords))
	for _, kw := range d.Keywords.Keywords {
		names = append(names, kw.Name)
	}
	return names
}

// GetMovieDetails fetches movie details by TMDB ID with credits and keywords
// appended in the same response.
func (c *Client) GetMovieDetails(ctx context.Context, movieID int64) (*MovieDetails, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	params := url.Values{}
	params.Set("append_to_response", "credits,keywords")

	var payload MovieDetails
	if err := c.getJSON(ctx, "details", fmt.Sprintf("/movie/%d", movieID), params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetMovieCredits fetches the credits of a movie.
func (c *Client) GetMovieCredits(ctx context.Context, movieID int64) (*Credits, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	var payload Credits
	if err := c.getJSON(ctx, "credits", fmt.Sprintf("/movie/%d/credits", movieID), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
