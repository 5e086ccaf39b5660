// Package namematch maps free-text player names from the transfer dataset to
// canonical identities from the statistics site. Matching is exact on an
// accent-insensitive normalized form, with a Jaro-Winkler fallback for
// spelling variants.
package namematch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, removes combining marks, and recomposes, so
// "Kylian Mbappé" and "Kylian Mbappe" normalize identically.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases a name, strips accents, and collapses whitespace.
func Normalize(name string) string {
	stripped, _, err := transform.String(stripMarks, name)
	if err != nil {
		stripped = name
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}

// FileStem converts a player name to the stem used for per-player stat
// files: spaces become underscores and apostrophes are dropped, so
// "N'Golo Kanté" stores as "NGolo_Kanté_standard_stats.csv".
func FileStem(name string) string {
	return strings.ReplaceAll(strings.ReplaceAll(name, "'", ""), " ", "_")
}
