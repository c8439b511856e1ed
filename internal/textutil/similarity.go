package textutil

import (
	"math"
	"strings"
)

// TitleSimilarity scores two titles from 0 to 100. The score is the smaller of
// the two shared-token ratios multiplied by the ratio of normalized lengths, so
// both word overlap and similar length are required for a high value. A title
// that normalizes to nothing (non-Latin script, punctuation) scores 0 even
// against itself.
func TitleSimilarity(a, b string) int {
	normA := Normalize(a)
	normB := Normalize(b)
	if normA == "" || normB == "" {
		return 0
	}
	if normA == normB {
		return 100
	}

	tokensA := uniqueTokens(normA)
	tokensB := uniqueTokens(normB)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	shared := 0
	for token := range tokensA {
		if _, ok := tokensB[token]; ok {
			shared++
		}
	}
	minRatio := math.Min(
		float64(shared)/float64(len(tokensA)),
		float64(shared)/float64(len(tokensB)),
	)
	lengthRatio := float64(min(len(normA), len(normB))) / float64(max(len(normA), len(normB)))
	return int(math.Round(minRatio * lengthRatio * 100))
}

// uniqueTokens splits a normalized title on spaces, keeping tokens longer than
// one byte.
func uniqueTokens(normalized string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Split(normalized, " ") {
		if len(token) > 1 {
			set[token] = struct{}{}
		}
	}
	return set
}
