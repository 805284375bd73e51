package dataprocessing

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"mdscli/internal/ingest"
	"mdscli/internal/reference"
	"mdscli/pkg/contracts/domain"
)

// Normalizer maps historical source column spellings onto the canonical
// schema. Matching is exact and case-sensitive; columns it does not know
// are ignored rather than guessed, so a renamed source column surfaces as
// missing data instead of silently misattributed data.
type Normalizer struct {
	logger *slog.Logger
}

// NewNormalizer creates a normalizer.
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger.With(slog.String("component", "normalizer"))}
}

// Normalize converts adapter records into canonical rows for one end year.
// Every output row carries the complete canonical field set; fields the
// source did not resolve stay unknown, identifiers stay empty.
func (n *Normalizer) Normalize(records []ingest.RawRecord, endYear int) []*domain.CanonicalRow {
	rows := make([]*domain.CanonicalRow, 0, len(records))
	unmapped := make(map[string]struct{})

	for _, rec := range records {
		row := domain.NewCanonicalRow(endYear, domain.LevelDistrict)

		for _, key := range rec.Keys() {
			canonical, known := resolveColumn(key)
			if !known {
				unmapped[key] = struct{}{}
				continue
			}
			applyField(row, canonical, rec, key)
		}

		finishIdentity(row)
		rows = append(rows, row)
	}

	if len(unmapped) > 0 {
		names := make([]string, 0, len(unmapped))
		for k := range unmapped {
			names = append(names, k)
		}
		n.logger.Debug("ignored unmapped source columns",
			slog.Int("end_year", endYear),
			slog.Any("columns", names))
	}
	return rows
}

// resolveColumn accepts canonical field names as-is (adapters that had to
// resolve labels themselves emit them directly) and otherwise consults the
// rename table.
func resolveColumn(key string) (string, bool) {
	if isCanonicalField(key) {
		return key, true
	}
	return reference.CanonicalColumn(key)
}

var identityFields = map[string]struct{}{
	"end_year":        {},
	ingest.LabelLevel: {},
	"district_id":     {},
	"district_name":   {},
	"school_id":       {},
	"school_name":     {},
}

func isCanonicalField(key string) bool {
	if _, ok := identityFields[key]; ok {
		return true
	}
	for _, f := range domain.CanonicalCountFields {
		if key == f {
			return true
		}
	}
	return false
}

func applyField(row *domain.CanonicalRow, canonical string, rec ingest.RawRecord, key string) {
	switch canonical {
	case "end_year":
		// The fetch year is authoritative; a source's own year column is
		// matched only so it is not reported as unmapped.
	case ingest.LabelLevel:
		row.Level = domain.AggregationLevel(rec.Labels[key])
	case "district_id":
		row.DistrictID = padDistrictID(rawText(rec, key))
	case "district_name":
		row.DistrictName = strings.TrimSpace(rec.Labels[key])
	case "school_id":
		row.SchoolID = rawText(rec, key)
	case "school_name":
		row.SchoolName = strings.TrimSpace(rec.Labels[key])
	default:
		row.SetCount(canonical, rec.Values[key])
	}
}

// rawText prefers the label form of an identifier but falls back to the
// numeric form for sources that publish codes as numbers.
func rawText(rec ingest.RawRecord, key string) string {
	if s, ok := rec.Labels[key]; ok {
		return strings.TrimSpace(s)
	}
	if v, ok := rec.Values[key]; ok && v.Known {
		return strconv.FormatInt(v.Int(), 10)
	}
	return ""
}

func padDistrictID(id string) string {
	if len(id) == 1 {
		return "0" + id
	}
	return id
}

// finishIdentity settles the aggregation level and district code after all
// columns are applied: an explicit state marker wins, then a school id
// makes the row a school, then the district name is resolved to its code.
func finishIdentity(row *domain.CanonicalRow) {
	for _, label := range reference.StateRowLabels {
		if strings.EqualFold(row.DistrictName, label) {
			row.Level = domain.LevelState
			break
		}
	}

	if row.Level == domain.LevelState {
		row.DistrictID = ""
		row.DistrictName = ""
		return
	}

	if row.SchoolID != "" || row.SchoolName != "" {
		row.Level = domain.LevelSchool
	}

	if row.DistrictID == "" && row.DistrictName != "" {
		row.DistrictID = reference.LSSCodeFor(row.DistrictName)
	}
	if row.DistrictName == "" && row.DistrictID != "" {
		row.DistrictName = reference.LSSCodes[row.DistrictID]
	}
}

// ValidateDistrictID reports whether a district code is one of the 24 LSS
// codes, for callers that must reject malformed codes outright.
func ValidateDistrictID(id string) error {
	if _, ok := reference.LSSCodes[id]; !ok {
		return fmt.Errorf("malformed district code %q", id)
	}
	return nil
}
