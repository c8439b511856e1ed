// Package letterboxd scrapes a public profile page for its four favourite
// films and the profile statistics shown alongside them.
//
// Favourites are read by an ordered list of extractors over the parsed
// document; the first extractor that finds anything wins and results are never
// merged across extractors. Statistics come from the same page plus a
// best-effort fetch of the stats subpage whose failure never fails the scrape.
package letterboxd
