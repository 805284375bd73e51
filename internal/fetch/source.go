package fetch

import (
	"mdscli/internal/config"
	"mdscli/pkg/contracts/domain"
)

// Source describes one upstream publication: where to download it from and
// which adapter decodes it. URL patterns carry a %d verb for the end year
// and are tried in order.
type Source struct {
	Name        string
	Format      domain.SourceFormat
	URLPatterns []string
}

// SourcePlan is the ordered fetch plan for the enrollment dataset. The
// primary chain is tried source by source and the first one that parses to
// records wins; the supplement, when it loads, fills fields the primary
// chain left unknown.
type SourcePlan struct {
	Primary    []Source
	Supplement *Source
}

// EnrollmentPlan builds the default plan from the configured base URLs.
func EnrollmentPlan(cfg config.SourcesConfig) SourcePlan {
	api := cfg.APIBaseURL
	docs := cfg.DownloadBaseURL
	return SourcePlan{
		Primary: []Source{
			{
				Name:   "enrollment_api",
				Format: domain.FormatJSON,
				URLPatterns: []string{
					api + "/enrollment/state/%d",
					api + "/enrollment/%d",
				},
			},
			{
				Name:   "enrollment_workbook",
				Format: domain.FormatSpreadsheetBlock,
				URLPatterns: []string{
					docs + "/enrollment/%d/Enrollment.xlsx",
					docs + "/enrollment/Enrollment%d.xlsx",
				},
			},
			{
				Name:   "enrollment_pdf",
				Format: domain.FormatPDFLineTable,
				URLPatterns: []string{
					docs + "/enrollment/%d/Enrollment.pdf",
					docs + "/enrollment/Enrollment%d.pdf",
				},
			},
		},
		Supplement: &Source{
			Name:   "enrollment_disaggregated",
			Format: domain.FormatDisaggregatedLong,
			URLPatterns: []string{
				api + "/enrollment/disaggregated/%d",
			},
		},
	}
}
