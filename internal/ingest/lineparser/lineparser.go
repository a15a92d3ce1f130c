// Package lineparser splits one line of delimited text into fields.
//
// The dialect matches what the export files actually contain: a double
// quote toggles quoted mode, in which the delimiter is literal text.
// Quote characters are consumed, and there is no doubled-quote escape
// for a literal quote inside a quoted field. That limitation is
// deliberate; encoding/csv's stricter RFC 4180 dialect would change
// which files are accepted.
package lineparser

import "strings"

// Split parses a single line using the given delimiter. Fields are
// trimmed. A non-empty trailing field is emitted even without a
// terminating delimiter; an empty trailing field is not.
func Split(line string, delim rune) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == delim && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}

	if last := strings.TrimSpace(current.String()); last != "" {
		fields = append(fields, last)
	}
	return fields
}
