// Package timeline maps calendar dates to horizontal pixel offsets.
//
// # Scales and Zoom
//
// A [Scale] (daily, weekly, monthly, annual, multi-year) selects a base width
// in pixels per calendar day from [Tables]; a discrete [Zoom] multiplies it.
// The product is the single derived day width every conversion uses:
//
//	m := timeline.New(timeline.Config{
//	    Window: w,
//	    Scale:  timeline.Monthly,
//	    Zoom:   timeline.Zoom150,
//	}, timeline.DefaultTables())
//	x := m.DateToX(d)
//
// # Immutability
//
// [Mapper] is a value. Changing the window, scale or zoom goes through
// [Mapper.WithConfig], which recomputes day width, total days and timeline
// width together so no derived field can go stale.
//
// # Windows
//
// [ComputeWindow] derives the visible span from the observed item dates plus
// fixed lead and trail padding, falling back to a default span around today
// when nothing is dated. Both bounds are calendar days and Start <= End.
//
// # Geometry
//
// [Mapper.BarBounds] uses inclusive end dates: a bar starting and ending on
// the same day is one day wide, and never narrower than the minimum bar width.
// [Mapper.ItemBox] turns a laid-out row into the bar or milestone box a
// renderer draws; undated rows have no box.
//
// # Ticks
//
// [Mapper.Days] and [Mapper.Ticks] are lazy sequences over the window. Ticks
// combine the day sequence with the calendar predicates to place header and
// gridline marks appropriate for the scale.
package timeline
