package reference

import "mdscli/pkg/contracts/domain"

// Numeric demographic codes used by the disaggregated long-format exports.
// Code 99 marks the dimension total in both tables.
const (
	CodeTotal = "99"

	SexCodeMale   = "1"
	SexCodeFemale = "2"
)

// RaceCodes maps the 1..7 race codes to canonical count fields.
var RaceCodes = map[string]string{
	"1": domain.FieldWhite,
	"2": domain.FieldBlack,
	"3": domain.FieldHispanic,
	"4": domain.FieldAsian,
	"5": domain.FieldNativeAmerican,
	"6": domain.FieldPacificIslander,
	"7": domain.FieldMultiracial,
}

// SexCodes maps sex codes to canonical count fields.
var SexCodes = map[string]string{
	SexCodeMale:   domain.FieldMale,
	SexCodeFemale: domain.FieldFemale,
}

// PDFColumnOrder is the fixed positional schema of numeric columns in the
// PDF line tables: position 0 is the row total, positions 1..7 the race
// fields in publication order. The text stream carries no headers, so this
// order is a contract with the source documents and must not be reordered.
var PDFColumnOrder = []string{
	domain.FieldRowTotal,
	domain.FieldNativeAmerican,
	domain.FieldAsian,
	domain.FieldBlack,
	domain.FieldHispanic,
	domain.FieldPacificIslander,
	domain.FieldWhite,
	domain.FieldMultiracial,
}
