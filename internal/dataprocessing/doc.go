// Package dataprocessing carries the schema-level passes of the pipeline:
// normalizing adapter output into canonical wide rows, synthesizing and
// merging aggregates, and pivoting wide rows into tidy facts.
package dataprocessing
