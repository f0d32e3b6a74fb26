package resolver

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// MatchStrategy scores free-text candidates against a hint and picks the
// best one. It is a swappable strategy so the scoring algorithm can be
// tested and replaced independently of resolution logic.
type MatchStrategy interface {
	// BestMatch returns the index of the best-matching candidate, or -1
	// when there are no candidates. Ties go to the first-encountered
	// candidate.
	BestMatch(candidates []string, hint string) int
}

// LevenshteinStrategy scores candidates by normalized edit distance.
// This is a heuristic, not a guaranteed-correct disambiguation: two
// aircraft types sharing an ICAO code can have near-identical marketing
// names, and the hint text is whatever the source happened to carry.
type LevenshteinStrategy struct{}

var _ MatchStrategy = LevenshteinStrategy{}

func (LevenshteinStrategy) BestMatch(candidates []string, hint string) int {
	if len(candidates) == 0 {
		return -1
	}
	if strings.TrimSpace(hint) == "" {
		return 0
	}

	normHint := normalize(hint)

	best := 0
	bestScore := -1.0
	for i, c := range candidates {
		score := similarity(normalize(c), normHint)
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	return best
}

// similarity maps edit distance into [0,1], 1 being identical
func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	max := len([]rune(a))
	if l := len([]rune(b)); l > max {
		max = l
	}
	if max == 0 {
		return 1
	}
	return 1 - float64(dist)/float64(max)
}

func normalize(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}
