package timeline_test

import (
	"fmt"

	"github.com/matzehuels/roadmap/pkg/core/calendar"
	"github.com/matzehuels/roadmap/pkg/core/timeline"
)

func ExampleMapper_BarBounds() {
	m := timeline.New(timeline.Config{
		Window: timeline.Window{Start: calendar.Date(2024, 1, 1), End: calendar.Date(2024, 3, 31)},
		Scale:  timeline.Weekly,
		Zoom:   timeline.Zoom150,
	}, timeline.DefaultTables())

	b := m.BarBounds(calendar.Date(2024, 1, 8), calendar.Date(2024, 1, 14))
	fmt.Printf("day=%.0f x=%.0f width=%.0f\n", m.DayWidth(), b.X, b.Width)
	fmt.Println(calendar.Format(m.XToDate(b.X + b.Width - 1)))
	// Output:
	// day=18 x=126 width=126
	// 2024-01-14
}
