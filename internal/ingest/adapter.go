// Package ingest turns raw publication payloads (JSON bytes, spreadsheet
// grids, extracted PDF text, long-format exports) into flat raw records for
// normalization. Each source format has exactly one adapter, selected by
// the SourceFormat tag at fetch time.
package ingest

import (
	"mdscli/pkg/contracts/domain"
)

// Label keys adapters use for identity values.
const (
	LabelDistrictName = "district_name"
	LabelDistrictID   = "district_id"
	LabelSchoolID     = "school_id"
	LabelSchoolName   = "school_name"
	LabelLevel        = "aggregation_level"
)

// RawRecord is one flat fragment parsed from a raw source. It is owned by
// its adapter and discarded after normalization. Text columns live in
// Labels; anything that looked numeric is additionally coerced into Values,
// so downstream never re-parses source scalars.
type RawRecord struct {
	Labels map[string]string
	Values map[string]domain.Count
}

// NewRawRecord returns an empty record.
func NewRawRecord() RawRecord {
	return RawRecord{
		Labels: make(map[string]string),
		Values: make(map[string]domain.Count),
	}
}

// Set stores a raw scalar under key, keeping both the text form and the
// coerced numeric form.
func (r RawRecord) Set(key string, raw interface{}) {
	if s, ok := raw.(string); ok {
		r.Labels[key] = s
	}
	r.Values[key] = Coerce(raw)
}

// SetCount stores an already-coerced count.
func (r RawRecord) SetCount(key string, c domain.Count) {
	r.Values[key] = c
}

// SetLabel stores a text-only identity value.
func (r RawRecord) SetLabel(key, value string) {
	r.Labels[key] = value
}

// Keys returns every key present in the record, labels and values merged.
func (r RawRecord) Keys() []string {
	seen := make(map[string]struct{}, len(r.Labels)+len(r.Values))
	keys := make([]string, 0, len(r.Labels)+len(r.Values))
	for k := range r.Labels {
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	for k := range r.Values {
		if _, dup := seen[k]; !dup {
			keys = append(keys, k)
		}
	}
	return keys
}

// Parse dispatches raw input to the adapter for the tagged format. JSON
// input arrives as bytes, spreadsheets as a 2D grid, PDFs as per-page text,
// long-format exports as pre-split rows; exactly one of those arguments is
// consulted per format.
func Parse(format domain.SourceFormat, source string, endYear int, data []byte, grid [][]string, pages []string) ([]RawRecord, error) {
	switch format {
	case domain.FormatJSON, domain.FormatGeneric:
		return ParseJSON(source, endYear, data)
	case domain.FormatSpreadsheetBlock:
		return ParseSpreadsheetBlocks(source, endYear, grid)
	case domain.FormatPDFLineTable:
		return ParsePDFLineTable(source, endYear, pages)
	case domain.FormatDisaggregatedLong:
		records, err := ParseJSON(source, endYear, data)
		if err != nil {
			return nil, err
		}
		return PivotDisaggregated(source, endYear, records)
	default:
		return ParseJSON(source, endYear, data)
	}
}
