// Package identification resolves a scraped film title, with an optional
// release year, to a single TMDB identifier.
//
// The Resolver widens the candidate pool with several concurrent TMDB queries
// (bare title, year filters, alternate languages), merges them in plan order
// without duplicates, and walks a strict priority ladder where the release
// year outranks title text. When a year is known and no rung matches, the
// result is "no match": a wrong film is worse than none.
//
// Keep new matching heuristics inside the ladder so every rejection stays
// visible in the debug log.
package identification
