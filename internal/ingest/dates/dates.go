// Package dates parses the order-date strings found in transaction
// exports, which arrive in several calendar formats.
package dates

import (
	"strconv"
	"strings"
	"time"
)

// Layouts tried before falling back to positional parsing.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// Parse converts a date string into a time. Direct layout parsing is
// tried first; failing that, the string is split on "/" or "-" and the
// pieces read positionally as month, day, year. When nothing parses
// (or the input is empty) the supplied now is returned. Callers must
// treat that fallback as a known behavior, not an error: unparseable
// dates silently become "now" rather than failing the row.
func Parse(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}

	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '/' || r == '-'
	})
	if len(parts) == 3 {
		month, errM := strconv.Atoi(strings.TrimSpace(parts[0]))
		day, errD := strconv.Atoi(strings.TrimSpace(parts[1]))
		year, errY := strconv.Atoi(strings.TrimSpace(parts[2]))
		if errM == nil && errD == nil && errY == nil {
			if year < 100 {
				year += 2000
			}
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		}
	}

	return now
}
