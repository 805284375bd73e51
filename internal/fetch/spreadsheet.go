package fetch

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"mdscli/internal/reference"
)

// SpreadsheetReader turns workbook bytes into a 2D cell grid.
type SpreadsheetReader interface {
	ReadGrid(data []byte) ([][]string, error)
}

// ExcelReader reads xlsx workbooks via excelize.
type ExcelReader struct{}

// ReadGrid opens the workbook and returns the rows of the sheet that
// carries enrollment data. Sheets are probed for a jurisdiction label in
// their leading rows; if none matches, the first non-empty sheet wins.
func (ExcelReader) ReadGrid(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var fallback [][]string
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		if sheetHasJurisdictions(rows) {
			return rows, nil
		}
		if fallback == nil {
			fallback = rows
		}
	}
	if fallback == nil {
		return nil, fmt.Errorf("workbook has no non-empty sheets")
	}
	return fallback, nil
}

func sheetHasJurisdictions(rows [][]string) bool {
	limit := len(rows)
	if limit > 60 {
		limit = 60
	}
	for _, row := range rows[:limit] {
		for _, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if reference.LSSCodeFor(cell) != "" {
				return true
			}
		}
	}
	return false
}
