// Command cinetier ranks a Letterboxd profile by its four favourite films.
//
// It runs the ranking pipeline in-process for one-off commands (rank,
// analyze, resolve, search, tiers) and serves the same pipeline over HTTP
// with `cinetier serve`.
package main
