package exporter

import (
	"fmt"

	"mdscli/pkg/contracts/domain"
)

// EnrollmentExporter flattens the processed datasets into CSV files named
// by end year and dataset kind.
type EnrollmentExporter struct {
	writer *CSVWriter
}

// NewEnrollmentExporter creates an exporter backed by the given writer.
func NewEnrollmentExporter(writer *CSVWriter) *EnrollmentExporter {
	return &EnrollmentExporter{writer: writer}
}

// ExportWide writes the canonical wide rows for one year.
func (e *EnrollmentExporter) ExportWide(endYear int, rows []*domain.CanonicalRow) error {
	headers := append([]string{
		"end_year", "school_year", "aggregation_level",
		"district_id", "district_name", "school_id", "school_name",
	}, domain.CanonicalCountFields...)

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		record := []string{
			formatInt(int64(row.EndYear)),
			domain.SchoolYear(row.EndYear),
			string(row.Level),
			row.DistrictID,
			row.DistrictName,
			row.SchoolID,
			row.SchoolName,
		}
		for _, field := range domain.CanonicalCountFields {
			record = append(record, formatCount(row.Count(field)))
		}
		records = append(records, record)
	}

	name := fmt.Sprintf("%s_%d.csv", domain.DatasetEnrWide, endYear)
	return e.writer.WriteSimpleCSV(name, headers, records)
}

// ExportTidy writes the tidy records for one year.
func (e *EnrollmentExporter) ExportTidy(endYear int, records []domain.TidyRecord) error {
	headers := []string{
		"end_year", "school_year", "aggregation_level",
		"district_id", "school_id", "grade_level", "subgroup", "count", "pct",
	}

	out := make([][]string, 0, len(records))
	for _, rec := range records {
		out = append(out, []string{
			formatInt(int64(rec.EndYear)),
			domain.SchoolYear(rec.EndYear),
			string(rec.Level),
			rec.DistrictID,
			rec.SchoolID,
			string(rec.Grade),
			string(rec.Subgroup),
			formatCount(rec.Count),
			formatPct(rec.Pct),
		})
	}

	name := fmt.Sprintf("%s_%d.csv", domain.DatasetEnrTidy, endYear)
	return e.writer.WriteSimpleCSV(name, headers, out)
}
