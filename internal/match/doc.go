// Package match suggests known names for misspelled ones.
//
// Identifiers are normalized (CamelCase split, separators dropped, lower
// case) and compared by Levenshtein similarity. Suggest ranks every
// candidate above a threshold; Closest picks the best one.
package match
