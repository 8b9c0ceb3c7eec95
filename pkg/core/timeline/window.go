package timeline

import (
	"time"

	"github.com/matzehuels/roadmap/pkg/core/calendar"
	"github.com/matzehuels/roadmap/pkg/core/item"
)

// Window is the visible calendar span, both ends inclusive.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the number of calendar days in the window.
func (w Window) Days() int {
	return calendar.DaysBetween(w.Start, w.End) + 1
}

// normalize truncates both bounds to calendar days and ensures Start <= End.
func (w Window) normalize() Window {
	w.Start = calendar.Truncate(w.Start)
	w.End = calendar.Truncate(w.End)
	if w.Start.IsZero() {
		w.Start = calendar.Today()
	}
	if w.End.IsZero() || calendar.DaysBetween(w.Start, w.End) < 0 {
		w.End = w.Start
	}
	return w
}

// ComputeWindow derives the window from the dates of items: the earliest date
// minus the lead padding to the latest date plus the trail padding. With no
// dated item the window spans the default range around today.
func ComputeWindow(items []item.Item, t Tables, today time.Time) Window {
	var lo, hi time.Time
	for i := range items {
		for _, d := range items[i].Dates() {
			if lo.IsZero() || d.Before(lo) {
				lo = d
			}
			if hi.IsZero() || d.After(hi) {
				hi = d
			}
		}
	}

	if lo.IsZero() {
		today = calendar.Truncate(today)
		return Window{
			Start: calendar.AddDays(today, -t.DefaultBefore),
			End:   calendar.AddDays(today, t.DefaultAfter),
		}
	}

	return Window{
		Start: calendar.AddDays(calendar.Truncate(lo), -t.LeadDays),
		End:   calendar.AddDays(calendar.Truncate(hi), t.TrailDays),
	}
}
