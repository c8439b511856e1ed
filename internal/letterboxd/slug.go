package letterboxd

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugYearPattern    = regexp.MustCompile(`-(\d{4})$`)
	nonSlugRunePattern = regexp.MustCompile(`[^a-z0-9]+`)
)

// HumanizeSlug turns "the-godfather" into "The Godfather".
func HumanizeSlug(slug string) string {
	slug = strings.Trim(strings.TrimSpace(slug), "-/")
	if slug == "" {
		return "Unknown"
	}
	return cases.Title(language.English).String(strings.Join(strings.FieldsFunc(slug, func(r rune) bool { return r == '-' }), " "))
}

// SlugFromTitle derives a URL slug from a title: accents folded, lowercase,
// apostrophes dropped, every other run of non-alphanumerics collapsed to one
// hyphen.
func SlugFromTitle(title string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), title)
	if err != nil {
		folded = title
	}
	lower := strings.ToLower(strings.TrimSpace(folded))
	lower = strings.NewReplacer("'", "", "’", "", "‘", "").Replace(lower)
	return strings.Trim(nonSlugRunePattern.ReplaceAllString(lower, "-"), "-")
}

// YearFromSlug returns the release year encoded in a disambiguation suffix such
// as "cure-1997". Years in the future are rejected.
func YearFromSlug(slug string) (int, bool) {
	m := slugYearPattern.FindStringSubmatch(strings.TrimRight(slug, "/"))
	if m == nil {
		return 0, false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil || year < 1870 || year > time.Now().Year()+1 {
		return 0, false
	}
	return year, true
}
