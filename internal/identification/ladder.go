package identification

import (
	"fmt"
	"log/slog"

	"cinetier/internal/identification/tmdb"
	"cinetier/internal/logging"
	"cinetier/internal/textutil"
)

// Rule names the ladder rung that selected a candidate.
type Rule string

const (
	RuleNone             Rule = ""
	RuleExactYearTitle   Rule = "exact_year_title"
	RuleExactYearSimilar Rule = "exact_year_similar"
	RuleExactYear        Rule = "exact_year"
	RuleNearYearTitle    Rule = "near_year_title"
	RuleTitleNoYear      Rule = "title_no_year"
	RuleSimilarNoYear    Rule = "similar_no_year"
)

const (
	yearSimilarityThreshold   = 50
	noYearSimilarityThreshold = 80
	yearTolerance             = 1
)

type rung struct {
	rule   Rule
	accept func(c tmdb.Result) bool
}

// selectCandidate walks the priority ladder top to bottom and returns the first
// candidate accepted by the first rung that accepts any.
func selectCandidate(logger *slog.Logger, title string, year int, candidates []tmdb.Result) Match {
	for _, step := range ladder(title, year) {
		for _, c := range candidates {
			if !step.accept(c) {
				continue
			}
			match := Match{TMDBID: c.ID, Title: c.Title, Year: c.Year(), Rule: step.rule}
			attrs := append(logging.DecisionAttrs("tmdb_resolution", "matched", string(step.rule)),
				logging.String("title", title),
				logging.Int("year", year),
				logging.Int64(logging.FieldTMDBID, c.ID),
				logging.String("candidate_title", c.Title),
				logging.Int("candidate_year", match.Year))
			logger.Info("tmdb match selected", logging.Args(attrs...)...)
			return match
		}
	}

	for idx, c := range candidates {
		logger.Debug("tmdb candidate rejected",
			logging.Int("result_index", idx),
			logging.Int64(logging.FieldTMDBID, c.ID),
			logging.String("candidate_title", c.Title),
			logging.String("candidate_original_title", c.OriginalTitle),
			logging.Int("candidate_year", c.Year()),
			logging.String("reason", rejectionReason(title, year, c)))
	}
	reason := "no candidate satisfied the title rules"
	if year > 0 {
		reason = "no candidate satisfied the year rules"
	}
	if len(candidates) == 0 {
		reason = "search returned no candidates"
	}
	attrs := append(logging.DecisionAttrs("tmdb_resolution", "none", reason),
		logging.String("title", title),
		logging.Int("year", year),
		logging.Int("candidates", len(candidates)))
	logger.Info("tmdb match rejected", logging.Args(attrs...)...)
	return Match{}
}

func ladder(title string, year int) []rung {
	if year > 0 {
		return []rung{
			{RuleExactYearTitle, func(c tmdb.Result) bool {
				return c.Year() == year && titleMatches(title, c)
			}},
			{RuleExactYearSimilar, func(c tmdb.Result) bool {
				return c.Year() == year && bestSimilarity(title, c) >= yearSimilarityThreshold
			}},
			{RuleExactYear, func(c tmdb.Result) bool {
				return c.Year() == year
			}},
			{RuleNearYearTitle, func(c tmdb.Result) bool {
				return withinYears(c.Year(), year, yearTolerance) && titleMatches(title, c)
			}},
		}
	}
	return []rung{
		{RuleTitleNoYear, func(c tmdb.Result) bool {
			return titleMatches(title, c)
		}},
		{RuleSimilarNoYear, func(c tmdb.Result) bool {
			return bestSimilarity(title, c) >= noYearSimilarityThreshold
		}},
	}
}

func titleMatches(title string, c tmdb.Result) bool {
	return textutil.TitlesMatch(title, c.Title) || textutil.TitlesMatch(title, c.OriginalTitle)
}

func bestSimilarity(title string, c tmdb.Result) int {
	return max(textutil.TitleSimilarity(title, c.Title), textutil.TitleSimilarity(title, c.OriginalTitle))
}

func withinYears(candidate, want, tolerance int) bool {
	if candidate == 0 {
		return false
	}
	diff := candidate - want
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}

func rejectionReason(title string, year int, c tmdb.Result) string {
	cy := c.Year()
	if year > 0 {
		if withinYears(cy, year, yearTolerance) {
			return fmt.Sprintf("year %d is off by one but title does not match", cy)
		}
		return fmt.Sprintf("year %d outside %d±%d", cy, year, yearTolerance)
	}
	return fmt.Sprintf("title mismatch (similarity %d < %d)", bestSimilarity(title, c), noYearSimilarityThreshold)
}
