package domain

// GradeLevel identifies the grade dimension of a tidy fact. Besides the
// per-grade levels it includes TOTAL (all grades) and the derived bands.
type GradeLevel string

const (
	GradeTotal GradeLevel = "TOTAL"
	GradePK    GradeLevel = "PK"
	GradeK     GradeLevel = "K"
	Grade01    GradeLevel = "01"
	Grade02    GradeLevel = "02"
	Grade03    GradeLevel = "03"
	Grade04    GradeLevel = "04"
	Grade05    GradeLevel = "05"
	Grade06    GradeLevel = "06"
	Grade07    GradeLevel = "07"
	Grade08    GradeLevel = "08"
	Grade09    GradeLevel = "09"
	Grade10    GradeLevel = "10"
	Grade11    GradeLevel = "11"
	Grade12    GradeLevel = "12"

	// Derived bands, computed from already-pivoted per-grade facts.
	BandK8  GradeLevel = "K8"
	BandHS  GradeLevel = "HS"
	BandK12 GradeLevel = "K12"
)

// PerGradeLevels is the ordered set of atomic grade levels as published.
var PerGradeLevels = []GradeLevel{
	GradePK, GradeK,
	Grade01, Grade02, Grade03, Grade04, Grade05, Grade06,
	Grade07, Grade08, Grade09, Grade10, Grade11, Grade12,
}

// Subgroup identifies the demographic dimension of a tidy fact.
type Subgroup string

const (
	SubgroupTotal           Subgroup = "total_enrollment"
	SubgroupWhite           Subgroup = "white"
	SubgroupBlack           Subgroup = "black"
	SubgroupHispanic        Subgroup = "hispanic"
	SubgroupAsian           Subgroup = "asian"
	SubgroupNativeAmerican  Subgroup = "native_american"
	SubgroupPacificIslander Subgroup = "pacific_islander"
	SubgroupMultiracial     Subgroup = "multiracial"
	SubgroupMale            Subgroup = "male"
	SubgroupFemale          Subgroup = "female"
)

// Subgroups is the full ordered subgroup set.
var Subgroups = []Subgroup{
	SubgroupTotal,
	SubgroupWhite, SubgroupBlack, SubgroupHispanic, SubgroupAsian,
	SubgroupNativeAmerican, SubgroupPacificIslander, SubgroupMultiracial,
	SubgroupMale, SubgroupFemale,
}

// SubgroupField maps a subgroup to the canonical wide-row field it reads.
func SubgroupField(s Subgroup) string {
	if s == SubgroupTotal {
		return FieldRowTotal
	}
	return string(s)
}

// TidyRecord is one atomic enrollment fact. Records are emitted once by the
// tidy transform and never mutated afterwards.
type TidyRecord struct {
	EndYear    int              `json:"end_year"`
	Level      AggregationLevel `json:"aggregation_level"`
	DistrictID string           `json:"district_id,omitempty"`
	SchoolID   string           `json:"school_id,omitempty"`
	Grade      GradeLevel       `json:"grade_level"`
	Subgroup   Subgroup         `json:"subgroup"`
	Count      Count            `json:"count"`
	Pct        Count            `json:"pct"`
}
