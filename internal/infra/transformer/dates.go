package transformer

import (
	"time"

	"github.com/araddon/dateparse"
)

// ParsePubDate parses the heterogeneous timestamp formats used by the outlets.
// Timestamps without a zone are read as UTC.
func ParsePubDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
