package ingest

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	apperrors "mdscli/internal/errors"
	"mdscli/internal/reference"
	"mdscli/pkg/contracts/domain"
)

const (
	// yearScanRows bounds the header scan for the year column.
	yearScanRows = 10
	// blockWindowRows bounds how far below a jurisdiction header its rows
	// are scanned.
	blockWindowRows = 30
)

// ParseSpreadsheetBlocks parses a one-block-per-jurisdiction sheet. The
// grid has no reliable header row: the year column is located by scanning
// for a cell equal to the target year (or its school-year spelling), then
// each jurisdiction block is found by name in the first column and its
// rows matched against the grade synonym tables.
func ParseSpreadsheetBlocks(source string, endYear int, grid [][]string) ([]RawRecord, error) {
	if len(grid) == 0 {
		return nil, apperrors.NewParseError(source, endYear, fmt.Errorf("empty grid"))
	}

	defaultYearCol := findYearColumn(grid, 0, yearScanRows, endYear)

	var records []RawRecord
	for _, jurisdiction := range reference.JurisdictionLabels() {
		headerRow := findJurisdictionRow(grid, jurisdiction)
		if headerRow < 0 {
			continue
		}

		rec := scanBlock(grid, headerRow, jurisdiction, endYear, defaultYearCol)
		if rec == nil {
			continue
		}
		records = append(records, *rec)
	}

	if len(records) == 0 {
		return nil, apperrors.NewParseError(source, endYear,
			fmt.Errorf("no jurisdiction blocks found in %d-row grid", len(grid)))
	}
	return records, nil
}

// findYearColumn scans rows [start, start+limit) for a cell whose text is
// the target year, returning its column or -1.
func findYearColumn(grid [][]string, start, limit, endYear int) int {
	plain := strconv.Itoa(endYear)
	spelled := domain.SchoolYear(endYear)
	end := start + limit
	if end > len(grid) {
		end = len(grid)
	}
	for r := start; r < end; r++ {
		for c, cell := range grid[r] {
			text := strings.TrimSpace(cell)
			if text == plain || text == spelled {
				return c
			}
		}
	}
	return -1
}

// findJurisdictionRow locates the header row for one jurisdiction in the
// first column. Exact case-insensitive matches win; a substring match is
// accepted only when the cell is not the exact label of a different
// jurisdiction, so "Baltimore City" can never be claimed by "Baltimore".
func findJurisdictionRow(grid [][]string, jurisdiction string) int {
	needle := strings.ToLower(jurisdiction)

	for r := range grid {
		if cellText(grid, r, 0) == needle {
			return r
		}
	}

	for r := range grid {
		cell := cellText(grid, r, 0)
		if cell == "" || !strings.Contains(cell, needle) {
			continue
		}
		if isExactJurisdiction(cell) && cell != needle {
			continue
		}
		return r
	}
	return -1
}

func cellText(grid [][]string, row, col int) string {
	if row >= len(grid) || col >= len(grid[row]) {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(grid[row][col]))
}

func isExactJurisdiction(cell string) bool {
	for _, label := range reference.JurisdictionLabels() {
		if cell == strings.ToLower(label) {
			return true
		}
	}
	return false
}

// scanBlock reads one jurisdiction block: it re-locates the year column
// within the block (column positions shift block to block), then matches
// row labels against the grade and band synonym tables until the next
// jurisdiction header or a terminal marker.
func scanBlock(grid [][]string, headerRow int, jurisdiction string, endYear, defaultYearCol int) *RawRecord {
	blockEnd := findBlockEnd(grid, headerRow)

	yearCol := findYearColumn(grid, headerRow, blockEnd-headerRow, endYear)
	if yearCol < 0 {
		yearCol = defaultYearCol
	}
	if yearCol < 0 {
		slog.Warn("no year column found for jurisdiction block",
			slog.String("jurisdiction", jurisdiction),
			slog.Int("end_year", endYear))
		return nil
	}

	rec := NewRawRecord()
	rec.SetLabel(LabelDistrictName, jurisdiction)
	if jurisdiction == reference.StateAggregateLabel {
		rec.SetLabel(LabelLevel, string(domain.LevelState))
	}

	matched := false
	for r := headerRow + 1; r < blockEnd; r++ {
		label := strings.TrimSpace(firstCell(grid[r]))
		if label == "" {
			continue
		}

		field, ok := matchRowLabel(label)
		if !ok {
			continue
		}
		if yearCol >= len(grid[r]) {
			continue
		}
		rec.SetCount(field, Coerce(grid[r][yearCol]))
		matched = true
	}

	if !matched {
		return nil
	}
	return &rec
}

// findBlockEnd returns the exclusive end of a jurisdiction block: the next
// jurisdiction header, a terminal marker, or the bounded window edge.
func findBlockEnd(grid [][]string, headerRow int) int {
	limit := headerRow + 1 + blockWindowRows
	if limit > len(grid) {
		limit = len(grid)
	}
	for r := headerRow + 1; r < limit; r++ {
		label := strings.TrimSpace(firstCell(grid[r]))
		if label == "" {
			continue
		}
		if isExactJurisdiction(strings.ToLower(label)) || hasTerminalMarker(label) {
			return r
		}
	}
	return limit
}

func firstCell(row []string) string {
	if len(row) == 0 {
		return ""
	}
	return row[0]
}

func hasTerminalMarker(label string) bool {
	for _, marker := range reference.TerminalMarkers {
		if strings.HasPrefix(label, marker) {
			return true
		}
	}
	return false
}

// matchRowLabel resolves a block row label to the canonical field it feeds,
// via the grade synonym table first, then the aggregate-band labels.
func matchRowLabel(label string) (string, bool) {
	needle := strings.ToLower(label)

	for grade, synonyms := range reference.GradeSynonyms {
		for _, s := range synonyms {
			if needle == strings.ToLower(s) {
				return domain.GradeField(grade), true
			}
		}
	}
	for field, synonyms := range reference.BandSynonyms {
		for _, s := range synonyms {
			if needle == strings.ToLower(s) {
				return field, true
			}
		}
	}
	return "", false
}
