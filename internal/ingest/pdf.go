package ingest

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	apperrors "mdscli/internal/errors"
	"mdscli/internal/reference"
	"mdscli/pkg/contracts/domain"
)

// numberPattern extracts numeric substrings, thousands separators included.
var numberPattern = regexp.MustCompile(`\d{1,3}(?:,\d{3})+|\d+`)

// ParsePDFLineTable parses text extracted from a PDF enrollment table, one
// plain-text string per page. A line belongs to a jurisdiction when it
// starts with that jurisdiction's name (most specific name wins) or with a
// state-total label. The numbers on the line map positionally onto the
// fixed column schema; there are no headers in the text stream to verify
// against, so a full-width line is cross-checked (total vs race sum) and
// logged on mismatch rather than trusted blindly.
func ParsePDFLineTable(source string, endYear int, pages []string) ([]RawRecord, error) {
	if len(pages) == 0 {
		return nil, apperrors.NewParseError(source, endYear, fmt.Errorf("no pages of text"))
	}

	var records []RawRecord
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			rec := parsePDFLine(line, endYear)
			if rec != nil {
				records = append(records, *rec)
			}
		}
	}

	if len(records) == 0 {
		return nil, apperrors.NewParseError(source, endYear,
			fmt.Errorf("no jurisdiction lines matched in %d pages", len(pages)))
	}
	return records, nil
}

func parsePDFLine(line string, endYear int) *RawRecord {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	name, isState := matchLinePrefix(line)
	if name == "" && !isState {
		return nil
	}

	numbers := numberPattern.FindAllString(line, -1)
	if len(numbers) == 0 {
		return nil
	}

	rec := NewRawRecord()
	if isState {
		rec.SetLabel(LabelLevel, string(domain.LevelState))
	} else {
		rec.SetLabel(LabelDistrictName, name)
	}

	if len(numbers) < len(reference.PDFColumnOrder) {
		// Short line: only the total is trustworthy, demographics stay
		// unknown rather than being misattributed.
		rec.SetCount(domain.FieldRowTotal, Coerce(numbers[0]))
		return &rec
	}

	for i, field := range reference.PDFColumnOrder {
		rec.SetCount(field, Coerce(numbers[i]))
	}
	checkPositionalSchema(rec, line, endYear)
	return &rec
}

// matchLinePrefix finds the jurisdiction owning a line. Names are tried
// longest first so "Baltimore City" is claimed before "Baltimore County"
// could shadow it, and state labels are tried after district names.
func matchLinePrefix(line string) (name string, isState bool) {
	lower := strings.ToLower(line)
	for _, n := range reference.LSSNamesByLength() {
		if strings.HasPrefix(lower, strings.ToLower(n)) {
			return n, false
		}
	}
	for _, label := range reference.StateRowLabels {
		if strings.HasPrefix(lower, strings.ToLower(label)) {
			return "", true
		}
	}
	return "", false
}

// checkPositionalSchema verifies row_total against the race-field sum when
// a line parsed at full width. Mismatches are logged, not rejected:
// suppression upstream legitimately breaks exact equality.
func checkPositionalSchema(rec RawRecord, line string, endYear int) {
	total := rec.Values[domain.FieldRowTotal]
	if !total.Known {
		return
	}

	raceSum := domain.CountOf(0)
	for _, field := range domain.RaceFields {
		c := rec.Values[field]
		if !c.Known {
			return
		}
		raceSum = raceSum.Add(c)
	}

	if raceSum.Value != total.Value {
		slog.Warn("positional schema mismatch in PDF line",
			slog.Int("end_year", endYear),
			slog.Float64("row_total", total.Value),
			slog.Float64("race_sum", raceSum.Value),
			slog.String("line", line))
	}
}
