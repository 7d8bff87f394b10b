package match

import (
	"sort"
)

// Suggestion thresholds.
const (
	// DefaultMinScore is the minimum similarity for a name to be suggested.
	DefaultMinScore = 0.6
	// DefaultLimit is the number of suggestions reported.
	DefaultLimit = 3
)

// Candidate is a known name scored against the name being looked up.
type Candidate struct {
	Name       string  // known name as spelled by the source
	Normalized string  // NormalizeIdent(Name)
	Score      float64 // similarity in [0, 1]
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates scores every known name against name.
// Returns candidates sorted by score (descending).
func RankCandidates(name string, known []string) CandidateList {
	target := NormalizeIdent(name)

	candidates := make(CandidateList, 0, len(known))
	for _, k := range known {
		norm := NormalizeIdent(k)

		candidates = append(candidates, Candidate{
			Name:       k,
			Normalized: norm,
			Score:      Similarity(norm, target),
		})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns up to limit known names whose similarity to name is at
// least DefaultMinScore, best first.
func Suggest(name string, known []string, limit int) []string {
	var names []string

	for _, c := range RankCandidates(name, known).AboveThreshold(DefaultMinScore).Top(limit) {
		names = append(names, c.Name)
	}

	return names
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by name for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}
	return c[:n]
}

// AboveThreshold returns candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList
	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}
	return result
}
