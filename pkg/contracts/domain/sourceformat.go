package domain

// SourceFormat tags the shape of a raw publication so ingestion dispatches
// to exactly one adapter, selected once when the bytes arrive.
type SourceFormat string

const (
	FormatJSON              SourceFormat = "json"
	FormatSpreadsheetBlock  SourceFormat = "spreadsheet_block"
	FormatPDFLineTable      SourceFormat = "pdf_line_table"
	FormatDisaggregatedLong SourceFormat = "disaggregated_long"
	FormatGeneric           SourceFormat = "generic"
)

// DatasetKind names a cached dataset family, combined with an end year to
// form a cache key.
type DatasetKind string

const (
	DatasetEnrWide DatasetKind = "enr_wide"
	DatasetEnrTidy DatasetKind = "enr_tidy"
)
