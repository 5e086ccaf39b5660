// Package discover finds player page URLs by scraping the site's
// alphabetical player index. Only the two-letter index pages implied by the
// transfer dataset's names are visited, with checkpointed resume.
package discover

import (
	"sort"
	"unicode"

	"go.uber.org/zap"

	"github.com/pitchside/transfer-cli/internal/namematch"
)

// RequiredPrefixes returns the sorted set of two-letter index prefixes
// needed to cover the given player names. Far cheaper than walking all
// 676 index pages.
func RequiredPrefixes(names []string) []string {
	set := make(map[string]bool)
	for _, name := range names {
		cleaned := lettersOnly(namematch.Normalize(name))
		if len(cleaned) < 2 {
			zap.S().Warnw("player name too short for index prefix", "name", name)
			continue
		}
		set[cleaned[:2]] = true
	}

	prefixes := make([]string, 0, len(set))
	for p := range set {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	return prefixes
}

// lettersOnly strips everything but letters, so "N'Golo Kanté" and
// "Jean-Philippe" reduce cleanly to index prefixes.
func lettersOnly(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsLetter(r) {
			out = append(out, r)
		}
	}
	return string(out)
}
