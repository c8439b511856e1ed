package letterboxd

import "testing"

func TestHumanizeSlug(t *testing.T) {
	tests := map[string]string{
		"the-godfather":  "The Godfather",
		"la-haine":       "La Haine",
		"/8-1-2/":        "8 1 2",
		"":               "Unknown",
		"  ":             "Unknown",
		"in--the--mood-": "In The Mood",
	}
	for slug, want := range tests {
		if got := HumanizeSlug(slug); got != want {
			t.Errorf("HumanizeSlug(%q) = %q, want %q", slug, got, want)
		}
	}
}

func TestSlugFromTitle(t *testing.T) {
	tests := map[string]string{
		"Paris, Texas":             "paris-texas",
		"Schindler's List":         "schindlers-list",
		"Schindler’s List":         "schindlers-list",
		"Amélie":                   "amelie",
		"  2001: A Space Odyssey ": "2001-a-space-odyssey",
		"!!!":                      "",
	}
	for title, want := range tests {
		if got := SlugFromTitle(title); got != want {
			t.Errorf("SlugFromTitle(%q) = %q, want %q", title, got, want)
		}
	}
}

func TestYearFromSlug(t *testing.T) {
	tests := []struct {
		slug string
		want int
		ok   bool
	}{
		{"cure-1997", 1997, true},
		{"cure-1997/", 1997, true},
		{"blade-runner-2049", 0, false},
		{"the-godfather", 0, false},
		{"1917", 0, false},
		{"film-1066", 0, false},
	}
	for _, tt := range tests {
		got, ok := YearFromSlug(tt.slug)
		if got != tt.want || ok != tt.ok {
			t.Errorf("YearFromSlug(%q) = %d, %v; want %d, %v", tt.slug, got, ok, tt.want, tt.ok)
		}
	}
}
