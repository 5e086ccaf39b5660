package scraper

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/pitchside/transfer-cli/internal/model"
	"github.com/pitchside/transfer-cli/internal/statsrc"
)

// SaveCSV writes a scraped table to dir as a per-player CSV, header first,
// in the table's column order. Creates dir if needed.
func SaveCSV(dir string, table *model.StatTable) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrapf(err, "scraper: create output dir %s", dir)
	}

	path := filepath.Join(dir, statsrc.FileName(table.Player, table.Kind))
	f, err := os.Create(path)
	if err != nil {
		return "", eris.Wrapf(err, "scraper: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(table.Columns); err != nil {
		return "", eris.Wrapf(err, "scraper: write header %s", path)
	}
	for _, row := range table.Rows {
		record := make([]string, len(table.Columns))
		for i, key := range table.Columns {
			record[i] = row.Cell(key)
		}
		if err := w.Write(record); err != nil {
			return "", eris.Wrapf(err, "scraper: write row %s", path)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", eris.Wrapf(err, "scraper: flush %s", path)
	}
	return path, nil
}
