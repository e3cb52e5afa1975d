package analytics

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Timestamp layouts tried in order. A trailing "Z" is normalized to a
// "+00:00" offset first, matching how the store writes timestamps.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses a stored ISO-8601 timestamp. The boolean is
// false for empty or unparsable text; callers skip such entries rather
// than failing the whole query.
func ParseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAmount parses stored numeric text, treating malformed or empty
// text as zero. Batch queries recover locally instead of aborting;
// direct accessors on the models propagate the parse error instead.
func parseAmount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// daysBetween returns whole days from earlier to later, truncated.
func daysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}
