package calendar

import (
	"strings"
	"time"
)

// layouts lists the accepted date encodings, most specific first.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// Parse reads a calendar date from s. Absent or unparseable values are not
// errors: they report ok == false and the zero time ("no date").
//
// Timestamps keep the calendar day as written, whatever their offset, so
// "2025-03-01T23:30:00-08:00" is March 1st.
func Parse(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return Truncate(parsed), true
		}
	}
	return time.Time{}, false
}

// Format renders t as YYYY-MM-DD, or "" for the zero time.
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
