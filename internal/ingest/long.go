package ingest

import (
	"fmt"
	"strings"

	apperrors "mdscli/internal/errors"
	"mdscli/internal/reference"
	"mdscli/pkg/contracts/domain"
)

// Column spellings the long-format exports use for their code and count
// columns, tried in order.
var (
	longRaceColumns       = []string{"Race", "RACE", "race", "Race Code", "race_code"}
	longSexColumns        = []string{"Sex", "SEX", "sex", "Gender", "sex_code"}
	longGradeColumns      = []string{"Grade", "GRADE", "grade", "Grade Code", "grade_code"}
	longCountColumns      = []string{"Enrolled Count", "ENROLLED_COUNT", "enrolled_count", "Count", "Enrollment"}
	longEntityColumns     = []string{"LEA Number", "LSS Number", "lss_number", "District Number"}
	longNameColumns       = []string{"LEA Name", "LSS Name", "lss_name", "District Name"}
	longSchoolColumns     = []string{"School Number", "school_number"}
	longSchoolNameColumns = []string{"School Name", "school_name"}
)

// PivotDisaggregated pivots a pre-disaggregated long export (one row per
// entity, race code, and sex code, optionally per grade) into one record
// per entity. Race fields are taken only from sex-total rows (sex=99) and
// sex fields only from race-total rows (race=99); the grand total comes
// from the row where both codes are 99. When the export carries a grade
// column, only grade-total rows feed the pivot, so a per-grade row cannot
// overwrite an entity-wide count. Summing across all rows without these
// filters double-counts every student.
func PivotDisaggregated(source string, endYear int, rows []RawRecord) ([]RawRecord, error) {
	byEntity := make(map[string]RawRecord)
	var order []string

	for _, row := range rows {
		race, raceOK := firstLabel(row, longRaceColumns)
		sex, sexOK := firstLabel(row, longSexColumns)
		if !raceOK || !sexOK {
			continue
		}
		race = strings.TrimSpace(race)
		sex = strings.TrimSpace(sex)

		if grade, ok := firstLabel(row, longGradeColumns); ok {
			if strings.TrimSpace(grade) != reference.CodeTotal {
				continue
			}
		}

		count := firstValue(row, longCountColumns)

		key, rec := entityRecord(byEntity, row)
		if _, seen := byEntity[key]; !seen {
			order = append(order, key)
			byEntity[key] = rec
		}

		switch {
		case race == reference.CodeTotal && sex == reference.CodeTotal:
			rec.SetCount(domain.FieldRowTotal, count)
		case sex == reference.CodeTotal:
			if field, ok := reference.RaceCodes[race]; ok {
				rec.SetCount(field, count)
			}
		case race == reference.CodeTotal:
			if field, ok := reference.SexCodes[sex]; ok {
				rec.SetCount(field, count)
			}
		default:
			// Row is a race x sex cell; using it would double-count.
		}
	}

	if len(order) == 0 {
		return nil, apperrors.NewParseError(source, endYear,
			fmt.Errorf("no rows carried race and sex codes"))
	}

	records := make([]RawRecord, 0, len(order))
	for _, key := range order {
		records = append(records, byEntity[key])
	}
	return records, nil
}

// entityRecord returns the pivot record for the entity a row describes,
// creating it on first sight.
func entityRecord(byEntity map[string]RawRecord, row RawRecord) (string, RawRecord) {
	id, _ := firstLabel(row, longEntityColumns)
	name, _ := firstLabel(row, longNameColumns)
	school, _ := firstLabel(row, longSchoolColumns)
	schoolName, _ := firstLabel(row, longSchoolNameColumns)
	key := id + "|" + name + "|" + school

	if rec, ok := byEntity[key]; ok {
		return key, rec
	}

	rec := NewRawRecord()
	if id != "" {
		rec.SetLabel(LabelDistrictID, id)
	}
	if name != "" {
		rec.SetLabel(LabelDistrictName, name)
	}
	if school != "" {
		rec.SetLabel(LabelSchoolID, school)
	}
	if schoolName != "" {
		rec.SetLabel(LabelSchoolName, schoolName)
	}
	return key, rec
}

func firstLabel(row RawRecord, columns []string) (string, bool) {
	for _, c := range columns {
		if v, ok := row.Labels[c]; ok {
			return v, true
		}
		// Numeric codes decoded from JSON arrive as values, not labels.
		if v, ok := row.Values[c]; ok && v.Known {
			return fmt.Sprintf("%d", v.Int()), true
		}
	}
	return "", false
}

func firstValue(row RawRecord, columns []string) domain.Count {
	for _, c := range columns {
		if v, ok := row.Values[c]; ok {
			return v
		}
	}
	return domain.Unknown()
}
