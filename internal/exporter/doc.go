// Package exporter writes the processed enrollment datasets to CSV.
//
// CSVWriter handles file placement under the managed export directory and
// Excel-friendly output (UTF-8 BOM). EnrollmentExporter flattens wide rows
// and tidy records into CSV tables; unknown counts are written as empty
// cells, never as zero.
package exporter
