package letterboxd

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"cinetier/internal/textutil"
)

var yearSuffixPattern = regexp.MustCompile(`\s*\((\d{4})\)\s*$`)

type extractor struct {
	name    string
	extract func(doc *goquery.Document, baseURL string) []FavoriteRef
}

// extractors run in order; the first non-empty result is used.
var extractors = []extractor{
	{name: "favourites_section", extract: extractFavouritesSection},
	{name: "film_slug_attribute", extract: extractFilmSlugAttributes},
	{name: "film_links", extract: extractFilmLinks},
}

// extractFavouritesSection reads the poster list inside the favourites
// section, taking the title from the poster alt text.
func extractFavouritesSection(doc *goquery.Document, baseURL string) []FavoriteRef {
	var films []FavoriteRef
	doc.Find("section#favourites li, #favourites li, .favourites li").EachWithBreak(func(_ int, item *goquery.Selection) bool {
		title := strings.TrimSpace(item.Find("img").First().AttrOr("alt", ""))
		if title == "" {
			return true
		}
		href := item.Find("a").First().AttrOr("href", "")
		slug := slugFromHref(href)

		var year int
		poster := item.Find("[data-item-name], [data-item-full-display-name]").First()
		if poster.Length() == 0 {
			poster = item
		}
		for _, attr := range []string{"data-item-name", "data-item-full-display-name"} {
			if _, y, ok := splitYearSuffix(poster.AttrOr(attr, "")); ok {
				year = y
				break
			}
		}
		films = append(films, newRef(baseURL, title, year, slug))
		return len(films) < maxFavorites
	})
	return films
}

// extractFilmSlugAttributes reads the first four elements carrying a film
// slug attribute, as rendered by the lazy poster components.
func extractFilmSlugAttributes(doc *goquery.Document, baseURL string) []FavoriteRef {
	var films []FavoriteRef
	seen := make(map[string]struct{})
	items := doc.Find("[data-film-slug]")
	if items.Length() > maxFavorites {
		items = items.Slice(0, maxFavorites)
	}
	items.Each(func(_ int, item *goquery.Selection) {
		slug := strings.Trim(strings.TrimSpace(item.AttrOr("data-film-slug", "")), "/")
		if slug == "" {
			return
		}
		if _, dup := seen[slug]; dup {
			return
		}
		seen[slug] = struct{}{}

		alt := strings.TrimSpace(item.Find("img").First().AttrOr("alt", ""))
		named := firstNonEmpty(item.AttrOr("data-item-name", ""), item.AttrOr("data-item-full-display-name", ""), alt)
		title, year, ok := splitYearSuffix(named)
		if !ok {
			title = firstNonEmpty(item.AttrOr("data-film-name", ""), alt, HumanizeSlug(slug))
		}
		films = append(films, newRef(baseURL, title, year, slug))
	})
	return films
}

// extractFilmLinks is the last resort: any relative film link on the page.
func extractFilmLinks(doc *goquery.Document, baseURL string) []FavoriteRef {
	var films []FavoriteRef
	seen := make(map[string]struct{})
	doc.Find(`a[href^="/film/"]`).EachWithBreak(func(_ int, link *goquery.Selection) bool {
		slug := slugFromHref(link.AttrOr("href", ""))
		if slug == "" || slug == "more" || strings.Contains(slug, "/") {
			return true
		}
		if _, dup := seen[slug]; dup {
			return true
		}
		seen[slug] = struct{}{}

		container := link.Closest("[data-item-name], [data-film-slug]")
		named := firstNonEmpty(container.AttrOr("data-item-name", ""), strings.TrimSpace(link.Find("img").First().AttrOr("alt", "")))
		title, year, ok := splitYearSuffix(named)
		if !ok {
			title = firstNonEmpty(named, link.AttrOr("title", ""), HumanizeSlug(slug))
		}
		films = append(films, newRef(baseURL, title, year, slug))
		return len(films) < maxFavorites
	})
	return films
}

// newRef fills in the derived slug, URL and slug-suffix year.
func newRef(baseURL, title string, year int, slug string) FavoriteRef {
	title = strings.TrimSpace(title)
	if slug == "" {
		slug = SlugFromTitle(title)
	}
	if year == 0 && title != "" {
		if y, ok := YearFromSlug(slug); ok && !strings.HasSuffix(textutil.Normalize(title), strconv.Itoa(y)) {
			year = y
		}
	}
	ref := FavoriteRef{Title: title, Year: year, Slug: slug}
	if slug != "" {
		ref.URL = baseURL + "/film/" + slug + "/"
	}
	return ref
}

// slugFromHref returns "the-godfather" for "/film/the-godfather/" and for the
// absolute form of the same link.
func slugFromHref(href string) string {
	_, rest, ok := strings.Cut(href, "/film/")
	if !ok {
		return ""
	}
	return strings.TrimSuffix(strings.TrimSpace(rest), "/")
}

// splitYearSuffix splits "Paris, Texas (1984)" into its title and year.
func splitYearSuffix(named string) (string, int, bool) {
	named = strings.TrimSpace(named)
	m := yearSuffixPattern.FindStringSubmatchIndex(named)
	if m == nil {
		return named, 0, false
	}
	year, err := strconv.Atoi(named[m[2]:m[3]])
	if err != nil {
		return named, 0, false
	}
	return strings.TrimSpace(named[:m[0]]), year, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
