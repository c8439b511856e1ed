// Package ranking turns four resolved films into a 0-100 taste score, a 1-10
// tier and the reasons behind it.
//
// Rarity is a pure function of vote count, rating and age. The engine is a
// deterministic reduction over the films: five capped sub-scores, each rounded
// before summation so the breakdown always adds up to the displayed total, minus
// a franchise penalty. The auteur and franchise lists and the tier table are
// read-only package data.
package ranking
