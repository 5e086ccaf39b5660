package discover

import (
	"sort"

	"go.uber.org/zap"

	"github.com/pitchside/transfer-cli/internal/namematch"
)

// MatchPlayers resolves transfer dataset names against the scraped index.
// Exact normalized matches win; a fuzzy fallback above threshold catches
// spelling variants. Returns the name -> stats URL map plus the names that
// could not be resolved, in input order.
func MatchPlayers(names []string, index map[string]string, threshold float64) (map[string]string, []string) {
	indexNames := make([]string, 0, len(index))
	for name := range index {
		indexNames = append(indexNames, name)
	}
	sort.Strings(indexNames) // deterministic fuzzy tie-breaking
	matcher := namematch.NewMatcher(indexNames, threshold)

	matched := make(map[string]string, len(names))
	var unmatched []string
	for _, name := range names {
		indexName, ok := matcher.Best(name)
		if !ok {
			unmatched = append(unmatched, name)
			continue
		}
		if indexName != name {
			zap.S().Debugw("fuzzy name match", "input", name, "index", indexName)
		}
		matched[name] = index[indexName]
	}
	return matched, unmatched
}
