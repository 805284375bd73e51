// Package reference holds the static lookup tables the pipeline depends on:
// the LSS code table, historical column spellings, demographic code maps,
// and grade-label synonyms. All tables are immutable constant data.
package reference

import (
	"sort"
	"strings"
)

// LSSCodes maps the 2-digit MSDE local school system code to the official
// jurisdiction name. Exactly 24 entries, codes "01".."24", names unique.
var LSSCodes = map[string]string{
	"01": "Allegany",
	"02": "Anne Arundel",
	"03": "Baltimore County",
	"04": "Calvert",
	"05": "Caroline",
	"06": "Carroll",
	"07": "Cecil",
	"08": "Charles",
	"09": "Dorchester",
	"10": "Frederick",
	"11": "Garrett",
	"12": "Harford",
	"13": "Howard",
	"14": "Kent",
	"15": "Montgomery",
	"16": "Prince George's",
	"17": "Queen Anne's",
	"18": "St. Mary's",
	"19": "Somerset",
	"20": "Talbot",
	"21": "Washington",
	"22": "Wicomico",
	"23": "Worcester",
	"24": "Baltimore City",
}

// StateAggregateLabel is the label publications use for the statewide row in
// jurisdiction-per-block layouts.
const StateAggregateLabel = "Maryland"

// StateRowLabels are the labels a state-total line may start with in
// extracted PDF text.
var StateRowLabels = []string{"State", "Maryland", "Total"}

// LSSCodeFor resolves a jurisdiction name to its LSS code, matching
// case-insensitively. Returns "" when no jurisdiction matches.
func LSSCodeFor(name string) string {
	needle := strings.ToLower(strings.TrimSpace(name))
	for code, n := range LSSCodes {
		if strings.ToLower(n) == needle {
			return code
		}
	}
	return ""
}

// LSSNames returns the jurisdiction names ordered by code.
func LSSNames() []string {
	codes := make([]string, 0, len(LSSCodes))
	for c := range LSSCodes {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	names := make([]string, 0, len(codes))
	for _, c := range codes {
		names = append(names, LSSCodes[c])
	}
	return names
}

// JurisdictionLabels returns the 25 labels a block-per-jurisdiction sheet is
// scanned for: the 24 LSS names plus the state aggregate label.
func JurisdictionLabels() []string {
	return append(LSSNames(), StateAggregateLabel)
}

// LSSNamesByLength returns jurisdiction names longest first, so that
// prefix matching tries "Baltimore City" before "Baltimore".
func LSSNamesByLength() []string {
	names := LSSNames()
	sort.SliceStable(names, func(i, j int) bool {
		return len(names[i]) > len(names[j])
	})
	return names
}
