package model

// CombinedSquad is the squad sentinel written when a season's statistics were
// aggregated across more than one club.
const CombinedSquad = "Combined"

// CombinedStats is the single record produced by aggregating all of a
// player's rows for one season. For single-club seasons it is the row
// verbatim; for multi-club seasons counting columns are summed, rate columns
// recomputed or dropped, and Squad is set to CombinedSquad.
type CombinedStats struct {
	Season string            `json:"season"`
	Squad  string            `json:"squad"`
	Kind   TableKind         `json:"kind"`
	Cells  map[string]string `json:"cells"`
}

// Cell returns the aggregated value for a column key, or "" when absent.
func (c *CombinedStats) Cell(key string) string {
	if c == nil {
		return ""
	}
	return c.Cells[key]
}

// UnresolvedReason classifies why a transfer could not be matched to
// prior-season statistics.
type UnresolvedReason string

const (
	ReasonMalformedSeason UnresolvedReason = "MalformedSeasonLabel"
	ReasonPlayerNotFound  UnresolvedReason = "PlayerNotFound"
	ReasonSeasonNotFound  UnresolvedReason = "SeasonNotFound"
)

// UnresolvedEntry records one transfer that produced an empty-statistics
// output row, for the companion audit report.
type UnresolvedEntry struct {
	Player         string           `json:"player"`
	TransferSeason string           `json:"transfer_season"`
	TargetSeason   string           `json:"target_season,omitempty"` // empty when the label was malformed
	Reason         UnresolvedReason `json:"reason"`
}

// MergedRow is one output row: the original transfer plus the aggregated
// prior-season statistics. Standard and Defensive are nil when unresolved;
// StatsSeason is empty in that case.
type MergedRow struct {
	Transfer    Transfer       `json:"transfer"`
	StatsSeason string         `json:"stats_season"`
	Standard    *CombinedStats `json:"standard,omitempty"`
	Defensive   *CombinedStats `json:"defensive,omitempty"`
}
