package textutil

import (
	"strings"
	"unicode"
)

// Normalize lowercases title, unifies quote variants, turns separators into
// spaces, spells out '&', and drops every rune outside [a-z0-9 ']. Accented
// letters are dropped rather than folded. Whitespace is collapsed and trimmed.
func Normalize(title string) string {
	if title == "" {
		return ""
	}
	lower := strings.ToLower(title)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case isSingleQuote(r):
			b.WriteByte('\'')
		case r == '&':
			b.WriteString("and")
		case isSeparator(r), unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func isSingleQuote(r rune) bool {
	switch r {
	case '\'', '‘', '’', '`', '´':
		return true
	}
	return false
}

func isSeparator(r rune) bool {
	switch r {
	case ':', '-', '–', '—', ',', '.', '!', '?':
		return true
	}
	return false
}
