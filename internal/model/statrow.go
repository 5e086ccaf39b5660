package model

import "time"

// TableKind identifies which per-player statistics table a row belongs to.
type TableKind string

const (
	// TableStandard is the general performance table (goals, assists, minutes).
	TableStandard TableKind = "standard"
	// TableDefensive is the defensive-actions table (tackles, interceptions).
	TableDefensive TableKind = "defensive"
)

// Kinds lists all table kinds scraped per player, in output order.
var Kinds = []TableKind{TableStandard, TableDefensive}

// StatRow is one season row of a player's statistics table. Cells holds the
// raw cell text keyed by column key; Season and Squad are lifted out because
// they key the row. A player may have several rows for the same season
// (loan spells, mid-season moves) but never two rows for one (season, squad).
type StatRow struct {
	Season string            `json:"season"` // canonical form, e.g. "2009-2010"
	Squad  string            `json:"squad"`
	Cells  map[string]string `json:"cells"`
}

// Cell returns the raw cell text for a column key, or "" when absent.
func (r StatRow) Cell(key string) string {
	return r.Cells[key]
}

// StatTable is one scraped statistics table for one player.
type StatTable struct {
	Player    string    `json:"player"`
	Kind      TableKind `json:"kind"`
	Columns   []string  `json:"columns"` // column keys in source order
	Rows      []StatRow `json:"rows"`    // source order preserved
	ScrapedAt time.Time `json:"scraped_at"`
}
