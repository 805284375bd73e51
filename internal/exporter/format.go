package exporter

import (
	"fmt"

	"mdscli/pkg/contracts/domain"
)

// formatCount renders a count cell. Unknown values become empty cells so a
// suppressed count is never mistaken for zero.
func formatCount(c domain.Count) string {
	if !c.Known {
		return ""
	}
	if c.Value == float64(int64(c.Value)) {
		return fmt.Sprintf("%d", int64(c.Value))
	}
	return fmt.Sprintf("%g", c.Value)
}

// formatPct renders a ratio with 4 decimal places, empty when unknown.
func formatPct(c domain.Count) string {
	if !c.Known {
		return ""
	}
	return fmt.Sprintf("%.4f", c.Value)
}

// formatInt formats an int64 value for CSV output.
func formatInt(i int64) string {
	return fmt.Sprintf("%d", i)
}
