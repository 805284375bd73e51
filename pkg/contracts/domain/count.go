package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Count is a student count (or ratio) that may be unknown. Publishers
// suppress small cells, so "no value" is a first-class state distinct from
// zero: an unknown Count must never be summed, compared, or serialized as 0.
type Count struct {
	Value float64 `json:"value"`
	Known bool    `json:"known"`
}

// CountOf returns a known Count.
func CountOf(v float64) Count {
	return Count{Value: v, Known: true}
}

// Unknown returns the unknown sentinel.
func Unknown() Count {
	return Count{}
}

// Add returns the sum of two counts. The sum of anything with an unknown
// value is itself unknown.
func (c Count) Add(other Count) Count {
	if !c.Known || !other.Known {
		return Unknown()
	}
	return CountOf(c.Value + other.Value)
}

// Int returns the count rounded to the nearest integer, or 0 if unknown.
// Callers must check Known before treating the result as data.
func (c Count) Int() int64 {
	if !c.Known {
		return 0
	}
	return int64(c.Value + 0.5)
}

// String renders the count for CSV export: an empty cell when unknown.
func (c Count) String() string {
	if !c.Known {
		return ""
	}
	return strconv.FormatFloat(c.Value, 'f', -1, 64)
}

// MarshalJSON encodes an unknown count as null so consumers cannot mistake
// suppression for zero.
func (c Count) MarshalJSON() ([]byte, error) {
	if !c.Known {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

// UnmarshalJSON accepts either null or a number.
func (c *Count) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = Unknown()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = CountOf(v)
	return nil
}

// SumCounts folds a slice of counts, skipping unknowns. It returns unknown
// only when every input is unknown, matching how the state-level synthesis
// treats districts with fully suppressed fields.
func SumCounts(counts []Count) Count {
	sum := Unknown()
	for _, c := range counts {
		if !c.Known {
			continue
		}
		if !sum.Known {
			sum = CountOf(0)
		}
		sum = sum.Add(c)
	}
	return sum
}
