// Package language normalizes the original-language codes TMDB reports for a
// film and names them for display.
//
// TMDB mostly uses ISO 639-1 codes, with a few of its own ("cn" for
// Cantonese, "xx" for no linguistic content). Locale tags such as "pt-BR",
// ISO 639-2 codes and English language names are accepted as input too.
package language
