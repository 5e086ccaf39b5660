package namematch

import (
	"github.com/antzucaro/matchr"
)

// Matcher resolves free-text names against a set of canonical names. Lookups
// are exact on the normalized form first; when that misses, the closest
// canonical name by Jaro-Winkler similarity wins if it clears the threshold.
type Matcher struct {
	byNorm    map[string]string // normalized -> canonical
	norms     []string          // insertion order, for deterministic fallback
	threshold float64
}

// NewMatcher builds a Matcher over canonical names. threshold is the minimum
// Jaro-Winkler similarity for a fuzzy match; pass 0 to disable fuzzy
// fallback entirely.
func NewMatcher(canonical []string, threshold float64) *Matcher {
	m := &Matcher{
		byNorm:    make(map[string]string, len(canonical)),
		threshold: threshold,
	}
	for _, name := range canonical {
		n := Normalize(name)
		if n == "" {
			continue
		}
		if _, seen := m.byNorm[n]; !seen {
			m.byNorm[n] = name
			m.norms = append(m.norms, n)
		}
	}
	return m
}

// Len returns the number of distinct canonical names indexed.
func (m *Matcher) Len() int {
	return len(m.byNorm)
}

// Best returns the canonical name for a free-text name, and whether any
// acceptable match was found.
func (m *Matcher) Best(name string) (string, bool) {
	n := Normalize(name)
	if n == "" {
		return "", false
	}

	if canonical, ok := m.byNorm[n]; ok {
		return canonical, true
	}

	if m.threshold <= 0 {
		return "", false
	}

	bestSim := m.threshold
	var best string
	for _, candidate := range m.norms {
		sim := matchr.JaroWinkler(n, candidate, false)
		if sim > bestSim {
			bestSim = sim
			best = m.byNorm[candidate]
		}
	}
	return best, best != ""
}
