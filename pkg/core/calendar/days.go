package calendar

import (
	"iter"
	"time"
)

// Days returns the calendar days from start to end inclusive, paired with
// their zero-based index. Nothing is allocated up front; each range over the
// returned sequence starts again at start. An end before start yields nothing.
func Days(start, end time.Time) iter.Seq2[int, time.Time] {
	n := DaysBetween(start, end) + 1
	return func(yield func(int, time.Time) bool) {
		for i := 0; i < n; i++ {
			if !yield(i, AddDays(start, i)) {
				return
			}
		}
	}
}
