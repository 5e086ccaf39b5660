package merge

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"

	"github.com/pitchside/transfer-cli/internal/aggregate"
	"github.com/pitchside/transfer-cli/internal/model"
)

// Column prefixes in the merged output, standard table vs defensive table.
const (
	standardPrefix  = "Stats_"
	defensivePrefix = "Def_"

	// statsSeasonColumn records which statistics season each row carries.
	statsSeasonColumn = "Stats_Season"
)

// Writer serializes merge results to CSV. Output columns are the transfer
// columns verbatim, then the classified standard columns under Stats_, the
// statistics season, and the classified defensive columns under Def_.
type Writer struct {
	header        []string
	standardCols  []string
	defensiveCols []string
}

// NewWriter builds a Writer for a transfer header and classification.
func NewWriter(transferHeader []string, classification *aggregate.Classification) *Writer {
	w := &Writer{header: transferHeader}

	for _, col := range classification.Schema(model.TableStandard).Columns() {
		if col == "season" {
			continue // carried separately as Stats_Season
		}
		w.standardCols = append(w.standardCols, col)
	}
	for _, col := range classification.Schema(model.TableDefensive).Columns() {
		if col == "season" || col == "squad" || col == "comp" {
			continue // already present on the standard side
		}
		w.defensiveCols = append(w.defensiveCols, col)
	}
	return w
}

// Header returns the merged output header.
func (w *Writer) Header() []string {
	out := make([]string, 0, len(w.header)+len(w.standardCols)+len(w.defensiveCols)+1)
	out = append(out, w.header...)
	for _, col := range w.standardCols {
		out = append(out, standardPrefix+col)
	}
	out = append(out, statsSeasonColumn)
	for _, col := range w.defensiveCols {
		out = append(out, defensivePrefix+col)
	}
	return out
}

// Record flattens one merged row into output order. Unresolved rows get
// empty statistics cells.
func (w *Writer) Record(row model.MergedRow) []string {
	out := make([]string, 0, len(w.header)+len(w.standardCols)+len(w.defensiveCols)+1)
	out = append(out, row.Transfer.Row...)
	for _, col := range w.standardCols {
		out = append(out, row.Standard.Cell(col))
	}
	out = append(out, row.StatsSeason)
	for _, col := range w.defensiveCols {
		out = append(out, row.Defensive.Cell(col))
	}
	return out
}

// WriteMerged writes all merged rows to a CSV file.
func (w *Writer) WriteMerged(path string, rows []model.MergedRow) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "merge: create %s", path)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(w.Header()); err != nil {
		return eris.Wrapf(err, "merge: write header %s", path)
	}
	for _, row := range rows {
		if err := cw.Write(w.Record(row)); err != nil {
			return eris.Wrapf(err, "merge: write row %s", path)
		}
	}
	cw.Flush()
	return eris.Wrapf(cw.Error(), "merge: flush %s", path)
}

// WriteUnresolved writes the companion report of transfers that produced
// empty statistics fields.
func WriteUnresolved(path string, entries []model.UnresolvedEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "merge: create %s", path)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"Player", "Transfer_Season", "Target_Season", "Reason"}); err != nil {
		return eris.Wrapf(err, "merge: write header %s", path)
	}
	for _, e := range entries {
		record := []string{e.Player, e.TransferSeason, e.TargetSeason, string(e.Reason)}
		if err := cw.Write(record); err != nil {
			return eris.Wrapf(err, "merge: write row %s", path)
		}
	}
	cw.Flush()
	return eris.Wrapf(cw.Error(), "merge: flush %s", path)
}
