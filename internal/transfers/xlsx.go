package transfers

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/pitchside/transfer-cli/internal/model"
)

// ParseXLSX reads a transfer dataset from the first sheet of an XLSX file.
// Same column contract as ParseCSV.
func ParseXLSX(path string) (*model.TransferSet, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "transfers: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("transfers: xlsx has no sheets")
	}

	sheet := f.Sheets[0]
	records := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = cell.String()
		}
		records = append(records, cells)
	}

	set, err := fromRecords(records)
	if err != nil {
		return nil, eris.Wrapf(err, "sheet %s", sheet.Name)
	}
	return set, nil
}

// Parse dispatches on file extension: .xlsx via ParseXLSX, anything else as
// CSV.
func Parse(path string) (*model.TransferSet, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ParseXLSX(path)
	}
	return ParseCSV(path)
}
