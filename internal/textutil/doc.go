// Package textutil canonicalizes film titles and compares them.
//
// The primary use cases are:
//   - Normalize: a deterministic, idempotent canonical form for titles
//   - TitlesMatch: strict equality modulo a leading "the" or "a"
//   - TitleSimilarity: a 0..100 token-overlap score penalized by length ratio
//
// Matching is intentionally strict. A short title fully contained in a longer
// one ("Cure" in "The Cure for Wellness") is not a match and scores low.
package textutil
