package timeline

import (
	"fmt"
	"iter"
	"time"

	"github.com/matzehuels/roadmap/pkg/core/calendar"
)

// Tick is a header label or gridline position.
type Tick struct {
	Date    time.Time `json:"date"`
	X       float64   `json:"x"`
	Major   bool      `json:"major,omitempty"`
	Label   string    `json:"label,omitempty"`
	Weekend bool      `json:"weekend,omitempty"`
}

// Ticks returns the ticks for the mapper's scale, lazily:
//
//	daily      every day, major on Mondays, weekends flagged
//	weekly     Mondays labeled with the ISO week, major in a month's first week
//	monthly    first of each month, major on quarter starts
//	annual     first of each month, major on January 1st
//	multiYear  first of each quarter, major on January 1st
func (m Mapper) Ticks() iter.Seq[Tick] {
	scale := m.cfg.Scale
	return func(yield func(Tick) bool) {
		for i, d := range m.Days() {
			t, ok := tickFor(scale, d)
			if !ok {
				continue
			}
			t.X = float64(i) * m.dayWidth
			if !yield(t) {
				return
			}
		}
	}
}

func tickFor(s Scale, d time.Time) (Tick, bool) {
	t := Tick{Date: d}
	switch s {
	case Daily:
		t.Major = calendar.IsMonday(d)
		t.Weekend = calendar.IsWeekend(d)
		t.Label = d.Format("2")
		if t.Major {
			t.Label = d.Format("Mon 2 Jan")
		}
		return t, true
	case Weekly:
		if !calendar.IsMonday(d) {
			return t, false
		}
		t.Major = d.Day() <= 7
		t.Label = fmt.Sprintf("W%d", calendar.WeekNumber(d))
		return t, true
	case Annual:
		if !calendar.IsFirstOfMonth(d) {
			return t, false
		}
		t.Major = calendar.IsFirstOfYear(d)
		t.Label = d.Format("Jan")
		if t.Major {
			t.Label = d.Format("2006")
		}
		return t, true
	case MultiYear:
		if !calendar.IsFirstOfQuarter(d) {
			return t, false
		}
		t.Major = calendar.IsFirstOfYear(d)
		t.Label = fmt.Sprintf("Q%d", calendar.Quarter(d))
		if t.Major {
			t.Label = d.Format("2006")
		}
		return t, true
	default:
		if !calendar.IsFirstOfMonth(d) {
			return t, false
		}
		t.Major = calendar.IsFirstOfQuarter(d)
		t.Label = d.Format("Jan")
		if t.Major {
			t.Label = fmt.Sprintf("Q%d %s", calendar.Quarter(d), d.Format("2006"))
		}
		return t, true
	}
}
