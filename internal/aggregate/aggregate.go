package aggregate

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pitchside/transfer-cli/internal/model"
)

// ErrSeasonNotFound is returned when a history has no row for the target
// season. Distinct from a combined row whose counting stats are all zero:
// "never played" is not "played and recorded nothing".
var ErrSeasonNotFound = eris.New("aggregate: no rows for target season")

// Combine reduces all rows of a history matching the target season to one
// CombinedStats. A single matching row is returned verbatim with the season
// set; multiple rows (multi-club season) are merged per the schema: counting
// columns summed with missing values as zero, rate columns recomputed from
// their summed components or dropped, identity columns taken from the first
// row in source order, and Squad set to model.CombinedSquad.
func Combine(history []model.StatRow, schema *Schema, target string) (*model.CombinedStats, error) {
	if schema == nil {
		return nil, eris.New("aggregate: nil schema")
	}

	var matched []model.StatRow
	for _, row := range history {
		if row.Season == target {
			matched = append(matched, row)
		}
	}

	if len(matched) == 0 {
		return nil, eris.Wrapf(ErrSeasonNotFound, "season %s", target)
	}

	if len(matched) == 1 {
		return single(matched[0], target), nil
	}

	return combineMulti(matched, schema, target), nil
}

// single wraps a lone season row unchanged.
func single(row model.StatRow, target string) *model.CombinedStats {
	cells := make(map[string]string, len(row.Cells))
	for k, v := range row.Cells {
		cells[k] = v
	}
	cells["season"] = target
	cells["squad"] = row.Squad

	return &model.CombinedStats{
		Season: target,
		Squad:  row.Squad,
		Cells:  cells,
	}
}

func combineMulti(rows []model.StatRow, schema *Schema, target string) *model.CombinedStats {
	cells := make(map[string]string)

	// Counting columns: sum across spells, blanks count as zero. A column is
	// emitted only if at least one row carries it at all.
	sums := make(map[string]float64)
	present := make(map[string]bool)
	for _, col := range schema.Counting {
		for _, row := range rows {
			raw, ok := row.Cells[col]
			if !ok {
				continue
			}
			present[col] = true
			if v, ok := parseNumber(raw); ok {
				sums[col] += v
			}
		}
		if present[col] {
			cells[col] = formatNumber(sums[col])
		}
	}

	// Rate columns: never summed. Recompute from the summed components when
	// both are available, otherwise leave the column out entirely.
	for _, rule := range schema.Rates {
		num, haveNum := sums[rule.Numerator]
		den, haveDen := sums[rule.Denominator]
		if !haveNum && !present[rule.Numerator] || !haveDen && !present[rule.Denominator] || den == 0 {
			continue
		}
		scale := rule.Scale
		if scale == 0 {
			scale = 1
		}
		cells[rule.Column] = formatRate(num / den * scale)
	}

	// Everything else: first row's value in source order. Columns flagged
	// drop_on_combine stay empty because no single value describes the
	// combined season.
	first := rows[0]
	for col, val := range first.Cells {
		if _, done := cells[col]; done {
			continue
		}
		if schema.dropped(col) {
			continue
		}
		if schema.Class(col) == ClassRate {
			// Rate column with no recompute inputs: dropped above.
			continue
		}
		if schema.Class(col) == ClassUnknown && col != "season" && col != "squad" {
			zap.L().Debug("aggregate: unclassified column, taking first value",
				zap.String("column", col),
			)
		}
		cells[col] = val
	}

	cells["season"] = target
	cells["squad"] = model.CombinedSquad

	return &model.CombinedStats{
		Season: target,
		Squad:  model.CombinedSquad,
		Cells:  cells,
	}
}

// parseNumber parses a stat cell, tolerating thousands separators ("2,730").
func parseNumber(raw string) (float64, bool) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// formatNumber renders a summed counting stat: whole values without a
// decimal point, fractional values (90s totals, xG) rounded to one decimal
// as the source presents them.
func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}

// formatRate renders a recomputed rate stat with two decimals, matching the
// source's per-90 presentation.
func formatRate(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', 2, 64)
}
