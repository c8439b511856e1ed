package textutil

import "strings"

// TitlesMatch reports whether two titles are the same film title: equal after
// normalization, or equal once a single leading "the " or "a " is removed from
// either side. Substrings and partial words never match, and a title that
// normalizes to nothing matches no title.
func TitlesMatch(search, candidate string) bool {
	a := Normalize(search)
	b := Normalize(candidate)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	for _, article := range []string{"the ", "a "} {
		strippedA := strings.TrimPrefix(a, article)
		strippedB := strings.TrimPrefix(b, article)
		if strippedA == strippedB || strippedA == b || a == strippedB {
			return true
		}
	}
	return false
}
