package letterboxd

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxStatEntries = 10

var (
	countPattern   = regexp.MustCompile(`(\d[\d,]*(?:\.\d+)?)\s*([kK])?`)
	hoursPattern   = regexp.MustCompile(`([\d,]+)\s*hours?`)
	ratingPattern  = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	decadePattern  = regexp.MustCompile(`\d{4}`)
	spaceCollapser = regexp.MustCompile(`\s+`)
)

// Count is a named tally from the stats page.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}

// Stats is what the profile and stats pages reveal about a member. Every
// field is best-effort; zero values mean the page did not show it.
type Stats struct {
	DisplayName   string  `json:"displayName"`
	Bio           string  `json:"bio,omitempty"`
	FilmsWatched  int     `json:"filmsWatched"`
	FilmsThisYear int     `json:"filmsThisYear"`
	Following     int     `json:"following"`
	Followers     int     `json:"followers"`
	Lists         int     `json:"lists"`
	Reviews       int     `json:"reviews"`
	TopGenres     []Count `json:"topGenres,omitempty"`
	TopDecades    []Count `json:"topDecades,omitempty"`
	TopCountries  []Count `json:"topCountries,omitempty"`
	HoursWatched  int     `json:"hoursWatched,omitempty"`
	AverageRating float64 `json:"averageRating,omitempty"`
}

func extractProfileStats(doc *goquery.Document, username string) Stats {
	stats := Stats{
		DisplayName: firstNonEmpty(
			cleanText(doc.Find("h1.title-1").First()),
			cleanText(doc.Find(".profile-name h1").First()),
			cleanText(doc.Find(".profile-name .displayname").First()),
			username),
		Bio: firstNonEmpty(
			cleanText(doc.Find(".bio .collapsible-text").First()),
			cleanText(doc.Find(".bio").First())),
	}

	doc.Find(".profile-stats a, .profile-statistic").Each(func(_ int, s *goquery.Selection) {
		label := strings.ToLower(cleanText(s))
		value := parseCount(label)
		if value == 0 {
			return
		}
		switch {
		case strings.Contains(label, "year"):
			setIfZero(&stats.FilmsThisYear, value)
		case strings.Contains(label, "film"):
			setIfZero(&stats.FilmsWatched, value)
		case strings.Contains(label, "following"):
			setIfZero(&stats.Following, value)
		case strings.Contains(label, "follower"):
			setIfZero(&stats.Followers, value)
		case strings.Contains(label, "list"):
			setIfZero(&stats.Lists, value)
		case strings.Contains(label, "review"):
			setIfZero(&stats.Reviews, value)
		}
	})

	lower := strings.ToLower(username)
	linkCount := func(fragment string) int {
		var found int
		doc.Find(`a[href*="` + fragment + `"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href := strings.ToLower(s.AttrOr("href", ""))
			if !strings.Contains(href, "/"+lower+"/") {
				return true
			}
			found = parseCount(cleanText(s))
			return found == 0
		})
		return found
	}
	setIfZero(&stats.FilmsWatched, linkCount("/films/"))
	setIfZero(&stats.Reviews, linkCount("/reviews/"))
	setIfZero(&stats.Lists, linkCount("/lists/"))
	return stats
}

// mergeStatsPage adds the stats subpage breakdowns.
func mergeStatsPage(stats *Stats, doc *goquery.Document) {
	stats.TopGenres = countList(doc, "#stats-genres .stat, section.stats-genres .stat, .stats-chart a", nil)
	stats.TopDecades = countList(doc, "#stats-decades .stat, section.stats-decades .stat", decadePattern.MatchString)
	stats.TopCountries = countList(doc, "#stats-countries .stat, section.stats-countries .stat", nil)
	if len(stats.TopGenres) == 0 {
		stats.TopGenres = sectionList(doc, "genre")
	}
	if len(stats.TopCountries) == 0 {
		stats.TopCountries = sectionList(doc, "countr")
	}

	doc.Find("h4, .statistic").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.ToLower(cleanText(s))
		if stats.HoursWatched == 0 {
			if m := hoursPattern.FindStringSubmatch(text); m != nil {
				stats.HoursWatched, _ = strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
			}
		}
		if stats.AverageRating == 0 && strings.Contains(text, "average") {
			if m := ratingPattern.FindStringSubmatch(text); m != nil {
				stats.AverageRating, _ = strconv.ParseFloat(m[1], 64)
			}
		}
		return stats.HoursWatched == 0 || stats.AverageRating == 0
	})
}

func countList(doc *goquery.Document, selector string, accept func(string) bool) []Count {
	var out []Count
	seen := make(map[string]struct{})
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		name := firstNonEmpty(cleanText(s.Find(".name, .title").First()), cleanText(s.Clone().Children().Remove().End()))
		if name == "" || strings.HasPrefix(strings.ToLower(name), "more") {
			return true
		}
		if accept != nil && !accept(name) {
			return true
		}
		if _, dup := seen[name]; dup {
			return true
		}
		seen[name] = struct{}{}
		out = append(out, Count{Name: name, Count: parseCount(cleanText(s.Find(".count").First()))})
		return len(out) < maxStatEntries
	})
	return out
}

// sectionList collects the link texts of the first section whose heading
// mentions keyword.
func sectionList(doc *goquery.Document, keyword string) []Count {
	var out []Count
	doc.Find("section").EachWithBreak(func(_ int, section *goquery.Selection) bool {
		heading := strings.ToLower(cleanText(section.Find("h2, h3").First()))
		if !strings.Contains(heading, keyword) {
			return true
		}
		section.Find("li").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if name := cleanText(s); name != "" && len(out) < maxStatEntries {
				out = append(out, Count{Name: name})
			}
			return len(out) < maxStatEntries
		})
		return len(out) == 0
	})
	return out
}

// parseCount reads the first number in text, honouring a "k" suffix and
// thousands separators.
func parseCount(text string) int {
	m := countPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0
	}
	if m[2] != "" {
		value *= 1000
	}
	return int(math.Round(value))
}

func cleanText(s *goquery.Selection) string {
	return strings.TrimSpace(spaceCollapser.ReplaceAllString(s.Text(), " "))
}

func setIfZero(dst *int, value int) {
	if *dst == 0 {
		*dst = value
	}
}
