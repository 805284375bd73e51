package ingest

import (
	"encoding/json"
	"fmt"

	apperrors "mdscli/internal/errors"
)

// ParseJSON parses an API payload into flat raw records, one per object.
// Nested objects are flattened with dotted keys; the record array may sit
// at the top level or under a wrapper key ("results", "data", "records").
func ParseJSON(source string, endYear int, data []byte) ([]RawRecord, error) {
	var root interface{}
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, apperrors.NewParseError(source, endYear, fmt.Errorf("invalid JSON: %w", err))
	}

	items := recordArray(root)
	if items == nil {
		return nil, apperrors.NewParseError(source, endYear, fmt.Errorf("no record array found in JSON payload"))
	}

	records := make([]RawRecord, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		rec := NewRawRecord()
		flattenInto(rec, "", obj)
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, apperrors.NewParseError(source, endYear, fmt.Errorf("JSON payload contained no records"))
	}
	return records, nil
}

// recordArray locates the array of row objects in a decoded payload.
func recordArray(root interface{}) []interface{} {
	switch v := root.(type) {
	case []interface{}:
		return v
	case map[string]interface{}:
		for _, key := range []string{"results", "data", "records", "rows"} {
			if arr, ok := v[key].([]interface{}); ok {
				return arr
			}
		}
		// Fall back to the first array value in the wrapper.
		for _, val := range v {
			if arr, ok := val.([]interface{}); ok {
				return arr
			}
		}
	}
	return nil
}

func flattenInto(rec RawRecord, prefix string, obj map[string]interface{}) {
	for key, val := range obj {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		switch v := val.(type) {
		case map[string]interface{}:
			flattenInto(rec, name, v)
		case []interface{}:
			// Arrays inside a row carry no tabular meaning; skipped.
		case bool:
			rec.SetLabel(name, fmt.Sprintf("%t", v))
		default:
			rec.Set(name, v)
		}
	}
}
