package reference

import "mdscli/pkg/contracts/domain"

// GradeSynonyms maps each per-grade level to the row labels spreadsheet
// blocks have used for it over the years. Matching against these labels is
// case-insensitive on the trimmed cell text.
var GradeSynonyms = map[domain.GradeLevel][]string{
	domain.GradePK: {"Prekindergarten", "Pre-Kindergarten", "Pre-K", "PreK", "PK"},
	domain.GradeK:  {"Kindergarten", "K", "KG"},
	domain.Grade01: {"Grade 1", "Grade 01", "1"},
	domain.Grade02: {"Grade 2", "Grade 02", "2"},
	domain.Grade03: {"Grade 3", "Grade 03", "3"},
	domain.Grade04: {"Grade 4", "Grade 04", "4"},
	domain.Grade05: {"Grade 5", "Grade 05", "5"},
	domain.Grade06: {"Grade 6", "Grade 06", "6"},
	domain.Grade07: {"Grade 7", "Grade 07", "7"},
	domain.Grade08: {"Grade 8", "Grade 08", "8"},
	domain.Grade09: {"Grade 9", "Grade 09", "9"},
	domain.Grade10: {"Grade 10", "10"},
	domain.Grade11: {"Grade 11", "11"},
	domain.Grade12: {"Grade 12", "12"},
}

// BandSynonyms maps aggregate-band row labels to the total field they feed.
// Spreadsheet blocks intermix these with per-grade rows.
var BandSynonyms = map[string][]string{
	"elementary":          {"Elementary", "Elem"},
	"middle":              {"Middle", "Middle School"},
	"high":                {"High", "High School"},
	domain.FieldRowTotal: {"Total", "Total Enrollment", "All Grades"},
}

// TerminalMarkers end a jurisdiction block scan when encountered in the
// label column.
var TerminalMarkers = []string{
	"Notes:",
	"Note:",
	"Source:",
	"* Data are suppressed",
}

// BandMembers fixes the grade membership of each derived band. The K12 band
// spans the full published range including prekindergarten.
var BandMembers = map[domain.GradeLevel][]domain.GradeLevel{
	domain.BandK8: {
		domain.GradeK,
		domain.Grade01, domain.Grade02, domain.Grade03, domain.Grade04,
		domain.Grade05, domain.Grade06, domain.Grade07, domain.Grade08,
	},
	domain.BandHS: {
		domain.Grade09, domain.Grade10, domain.Grade11, domain.Grade12,
	},
	domain.BandK12: {
		domain.GradePK, domain.GradeK,
		domain.Grade01, domain.Grade02, domain.Grade03, domain.Grade04,
		domain.Grade05, domain.Grade06, domain.Grade07, domain.Grade08,
		domain.Grade09, domain.Grade10, domain.Grade11, domain.Grade12,
	},
}
