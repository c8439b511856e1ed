// Package pipeline wires scraping, resolution, detail fetching and scoring
// into the two ranking entry points plus film search.
//
// Per-film work runs concurrently. A favourite that cannot be resolved is
// scored as a placeholder; the request fails only when no favourite could be
// resolved at all, or when the profile has fewer than four favourites.
package pipeline
