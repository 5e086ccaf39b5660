// Package transfers reads the input transfer dataset. Player and Season are
// the only columns the pipeline interprets; everything else passes through
// to the merged output untouched.
package transfers

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/pitchside/transfer-cli/internal/model"
)

// Column names recognized in the input header, case-sensitive as exported
// by the transfer data source.
const (
	playerColumn = "Player"
	seasonColumn = "Season"
)

// ParseCSV reads a transfer dataset from a CSV file.
func ParseCSV(path string) (*model.TransferSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "transfers: open csv")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "transfers: read csv")
	}

	return fromRecords(records)
}

// fromRecords builds a TransferSet from raw rows (header first).
func fromRecords(records [][]string) (*model.TransferSet, error) {
	if len(records) < 2 {
		return nil, eris.New("transfers: dataset has no data rows")
	}

	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.TrimSpace(col)
	}

	colIdx := make(map[string]int, len(header))
	for i, col := range header {
		colIdx[col] = i
	}
	for _, col := range []string{playerColumn, seasonColumn} {
		if _, ok := colIdx[col]; !ok {
			return nil, eris.Errorf("transfers: missing required column %q", col)
		}
	}

	set := &model.TransferSet{Header: header}
	for _, row := range records[1:] {
		player := getCol(row, colIdx, playerColumn)
		if player == "" {
			continue
		}

		// Normalize row length so passthrough indexing is always safe.
		cells := make([]string, len(header))
		for i := range header {
			if i < len(row) {
				cells[i] = strings.TrimSpace(row[i])
			}
		}

		set.Transfers = append(set.Transfers, model.Transfer{
			Player: player,
			Season: getCol(row, colIdx, seasonColumn),
			Row:    cells,
		})
	}

	if len(set.Transfers) == 0 {
		return nil, eris.New("transfers: no valid rows found")
	}

	return set, nil
}

// getCol safely retrieves a column value from a CSV row.
func getCol(row []string, colIdx map[string]int, col string) string {
	idx, ok := colIdx[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// UniquePlayers returns the distinct player names in the set, in first-seen
// order.
func UniquePlayers(set *model.TransferSet) []string {
	seen := make(map[string]bool, len(set.Transfers))
	var players []string
	for _, tr := range set.Transfers {
		if !seen[tr.Player] {
			seen[tr.Player] = true
			players = append(players, tr.Player)
		}
	}
	return players
}
