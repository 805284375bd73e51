package domain

import "fmt"

// AggregationLevel identifies the administrative entity a row describes.
type AggregationLevel string

const (
	LevelState    AggregationLevel = "State"
	LevelDistrict AggregationLevel = "District"
	LevelSchool   AggregationLevel = "School"
)

// Canonical numeric field names. Every CanonicalRow carries all of them;
// a field a source did not report is Unknown, never zero.
const (
	FieldRowTotal        = "row_total"
	FieldWhite           = "white"
	FieldBlack           = "black"
	FieldHispanic        = "hispanic"
	FieldAsian           = "asian"
	FieldNativeAmerican  = "native_american"
	FieldPacificIslander = "pacific_islander"
	FieldMultiracial     = "multiracial"
	FieldMale            = "male"
	FieldFemale          = "female"
)

// RaceFields lists the mutually exclusive race/ethnicity fields.
var RaceFields = []string{
	FieldWhite,
	FieldBlack,
	FieldHispanic,
	FieldAsian,
	FieldNativeAmerican,
	FieldPacificIslander,
	FieldMultiracial,
}

// GenderFields lists the gender count fields.
var GenderFields = []string{FieldMale, FieldFemale}

// CanonicalCountFields is the complete ordered canonical field set:
// total, races, genders, then one field per grade PK..12.
var CanonicalCountFields = buildCanonicalFields()

func buildCanonicalFields() []string {
	fields := []string{FieldRowTotal}
	fields = append(fields, RaceFields...)
	fields = append(fields, GenderFields...)
	for _, g := range PerGradeLevels {
		fields = append(fields, GradeField(g))
	}
	return fields
}

// GradeField returns the canonical count field name for a per-grade level,
// e.g. K -> "grade_k", 01 -> "grade_01".
func GradeField(g GradeLevel) string {
	switch g {
	case GradePK:
		return "grade_pk"
	case GradeK:
		return "grade_k"
	default:
		return fmt.Sprintf("grade_%s", string(g))
	}
}

// CanonicalRow is one wide enrollment record for a single entity and school
// year. Identity fields use the empty string when not applicable (State rows
// have no district, District rows no school).
type CanonicalRow struct {
	EndYear      int              `json:"end_year"`
	Level        AggregationLevel `json:"aggregation_level"`
	DistrictID   string           `json:"district_id,omitempty"`
	DistrictName string           `json:"district_name,omitempty"`
	SchoolID     string           `json:"school_id,omitempty"`
	SchoolName   string           `json:"school_name,omitempty"`

	Counts map[string]Count `json:"counts"`
}

// NewCanonicalRow returns a row with the full canonical field set populated
// as unknown.
func NewCanonicalRow(endYear int, level AggregationLevel) *CanonicalRow {
	counts := make(map[string]Count, len(CanonicalCountFields))
	for _, f := range CanonicalCountFields {
		counts[f] = Unknown()
	}
	return &CanonicalRow{
		EndYear: endYear,
		Level:   level,
		Counts:  counts,
	}
}

// Count returns the named canonical count, Unknown for any field the row
// does not carry.
func (r *CanonicalRow) Count(field string) Count {
	if r.Counts == nil {
		return Unknown()
	}
	return r.Counts[field]
}

// SetCount stores a canonical count value.
func (r *CanonicalRow) SetCount(field string, c Count) {
	if r.Counts == nil {
		r.Counts = make(map[string]Count, len(CanonicalCountFields))
	}
	r.Counts[field] = c
}

// EntityKey identifies the entity for merge matching. State rows match on
// level alone; District and School rows match on their identifiers.
func (r *CanonicalRow) EntityKey() string {
	if r.Level == LevelState {
		return string(LevelState)
	}
	return fmt.Sprintf("%s|%s|%s", r.Level, r.DistrictID, r.SchoolID)
}

// Clone returns a deep copy of the row.
func (r *CanonicalRow) Clone() *CanonicalRow {
	out := *r
	out.Counts = make(map[string]Count, len(r.Counts))
	for k, v := range r.Counts {
		out.Counts[k] = v
	}
	return &out
}
