// Package match ranks known type names by similarity to an unknown one.
//
// It backs the "did you mean" suggestions attached to unsupported-type
// diagnostics:
//   - NormalizeIdent: folds an identifier for fuzzy comparison
//   - Levenshtein: computes edit distance between strings
//   - RankCandidates: orders known names by similarity
//   - Suggest: returns the best few names above a threshold
package match
