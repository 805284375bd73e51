package reference

import "mdscli/pkg/contracts/domain"

// ColumnRenames maps every historical source column spelling to its
// canonical field name. Matching is exact and case-sensitive: a column
// absent from this table is passed through untouched and ignored
// downstream, never guessed into a canonical field.
var ColumnRenames = map[string]string{
	// Identity columns.
	"Academic Year":   "end_year",
	"School Year":     "end_year",
	"SchoolYear":      "end_year",
	"year":            "end_year",
	"LEA Number":      "district_id",
	"LSS Number":      "district_id",
	"LSS No":          "district_id",
	"lss_number":      "district_id",
	"District Number": "district_id",
	"LEA Name":        "district_name",
	"LSS Name":        "district_name",
	"lss_name":        "district_name",
	"District Name":   "district_name",
	"School Number":   "school_id",
	"school_number":   "school_id",
	"School Name":     "school_name",
	"school_name":     "school_name",

	// Totals.
	"Total Enrollment":       domain.FieldRowTotal,
	"Total Enrollment Count": domain.FieldRowTotal,
	"Total":                  domain.FieldRowTotal,
	"Enrollment":             domain.FieldRowTotal,
	"ENROLLED_COUNT":         domain.FieldRowTotal,
	"enrolled_count":         domain.FieldRowTotal,

	// Race / ethnicity.
	"White":                                     domain.FieldWhite,
	"White Count":                               domain.FieldWhite,
	"Black or African American":                 domain.FieldBlack,
	"Black/African American":                    domain.FieldBlack,
	"African American":                          domain.FieldBlack,
	"Black Count":                               domain.FieldBlack,
	"Hispanic/Latino of any race":               domain.FieldHispanic,
	"Hispanic/Latino":                           domain.FieldHispanic,
	"Hispanic":                                  domain.FieldHispanic,
	"Hispanic Count":                            domain.FieldHispanic,
	"Asian":                                     domain.FieldAsian,
	"Asian Count":                               domain.FieldAsian,
	"American Indian or Alaska Native":          domain.FieldNativeAmerican,
	"American Indian/Alaskan Native":            domain.FieldNativeAmerican,
	"Am. Indian/Alaska Native":                  domain.FieldNativeAmerican,
	"Native Hawaiian or Other Pacific Islander": domain.FieldPacificIslander,
	"Native Hawaiian/Pacific Islander":          domain.FieldPacificIslander,
	"Hawaiian/Pacific Islander":                 domain.FieldPacificIslander,
	"Two or More Races":                         domain.FieldMultiracial,
	"Two or more races":                         domain.FieldMultiracial,
	"Multiple Races":                            domain.FieldMultiracial,

	// Gender.
	"Male":         domain.FieldMale,
	"Male Count":   domain.FieldMale,
	"M":            domain.FieldMale,
	"Female":       domain.FieldFemale,
	"Female Count": domain.FieldFemale,
	"F":            domain.FieldFemale,

	// Per-grade columns.
	"Prekindergarten":  "grade_pk",
	"Pre-Kindergarten": "grade_pk",
	"Pre-K":            "grade_pk",
	"PK":               "grade_pk",
	"Kindergarten":     "grade_k",
	"K":                "grade_k",
	"KG":               "grade_k",
	"Grade 1":          "grade_01",
	"Grade 2":          "grade_02",
	"Grade 3":          "grade_03",
	"Grade 4":          "grade_04",
	"Grade 5":          "grade_05",
	"Grade 6":          "grade_06",
	"Grade 7":          "grade_07",
	"Grade 8":          "grade_08",
	"Grade 9":          "grade_09",
	"Grade 10":         "grade_10",
	"Grade 11":         "grade_11",
	"Grade 12":         "grade_12",
	"Grade 01":         "grade_01",
	"Grade 02":         "grade_02",
	"Grade 03":         "grade_03",
	"Grade 04":         "grade_04",
	"Grade 05":         "grade_05",
	"Grade 06":         "grade_06",
	"Grade 07":         "grade_07",
	"Grade 08":         "grade_08",
	"Grade 09":         "grade_09",
}

// CanonicalColumn resolves one source column name, reporting whether it is
// a known spelling.
func CanonicalColumn(name string) (string, bool) {
	canonical, ok := ColumnRenames[name]
	return canonical, ok
}
