package statsrc

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/pitchside/transfer-cli/internal/model"
	"github.com/pitchside/transfer-cli/internal/namematch"
)

// File suffixes for per-player stat CSVs, by table kind.
var kindSuffix = map[model.TableKind]string{
	model.TableStandard:  "_standard_stats.csv",
	model.TableDefensive: "_defensive_actions.csv",
}

// FileName returns the stat CSV filename for a player and table kind,
// e.g. "Fernando_Torres_standard_stats.csv".
func FileName(player string, kind model.TableKind) string {
	return namematch.FileStem(player) + kindSuffix[kind]
}

// CSVSource reads player histories from a directory of per-player stat
// CSVs, one file per (player, kind).
type CSVSource struct {
	dir string
}

// NewCSVSource creates a source over the given stats directory.
func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{dir: dir}
}

func (s *CSVSource) History(ctx context.Context, player string, kind model.TableKind) ([]model.StatRow, error) {
	path := filepath.Join(s.dir, FileName(player, kind))
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, eris.Wrapf(ErrPlayerNotFound, "%s (%s)", player, kind)
		}
		return nil, eris.Wrapf(err, "statsrc: open %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "statsrc: read %s", path)
	}
	if len(records) < 2 {
		return nil, eris.Wrapf(ErrPlayerNotFound, "%s (%s): empty table", player, kind)
	}

	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.TrimSpace(col)
	}

	rows := make([]model.StatRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := model.StatRow{Cells: make(map[string]string, len(header))}
		for i, key := range header {
			if i >= len(rec) {
				break
			}
			row.Cells[key] = strings.TrimSpace(rec[i])
		}
		row.Season = row.Cells["season"]
		row.Squad = row.Cells["squad"]
		rows = append(rows, row)
	}
	return rows, nil
}
