package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"mdscli/pkg/contracts/domain"
)

// suppressionTokens are the exact sentinel strings publishers use for
// withheld values. Matched after trimming, before any numeric parse.
var suppressionTokens = map[string]struct{}{
	"*":   {},
	".":   {},
	"-":   {},
	"-1":  {},
	"":    {},
	"N/A": {},
	"DS":  {},
	"SP":  {},
}

// boundedRangePattern matches "<N" / ">N" tokens. The true value is only
// known to be below or above N, so nothing recoverable remains.
var boundedRangePattern = regexp.MustCompile(`^[<>]\s*\d+$`)

// Coerce turns a raw scalar into a count-or-unknown. It never fails:
// malformed source data degrades to unknown instead of aborting the
// pipeline.
func Coerce(raw interface{}) domain.Count {
	switch v := raw.(type) {
	case nil:
		return domain.Unknown()
	case float64:
		return domain.CountOf(v)
	case float32:
		return domain.CountOf(float64(v))
	case int:
		return domain.CountOf(float64(v))
	case int64:
		return domain.CountOf(float64(v))
	case string:
		return coerceString(v)
	default:
		return domain.Unknown()
	}
}

func coerceString(raw string) domain.Count {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")

	if _, suppressed := suppressionTokens[s]; suppressed {
		return domain.Unknown()
	}
	if boundedRangePattern.MatchString(s) {
		return domain.Unknown()
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return domain.Unknown()
	}
	return domain.CountOf(v)
}
