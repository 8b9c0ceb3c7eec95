package viewport

// Range is a horizontal pixel interval, both ends inclusive.
type Range struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Contains reports whether x lies in the range.
func (r Range) Contains(x float64) bool { return x >= r.Start && x <= r.End }

// Overlaps reports whether [x0, x1] intersects the range.
func (r Range) Overlaps(x0, x1 float64) bool { return x0 <= r.End && x1 >= r.Start }

// VisibleColumns returns the horizontal span of the timeline worth drawing:
// the viewport widened by the buffer, clipped to [0, timelineWidth].
func VisibleColumns(vp Viewport, timelineWidth float64, cfg Config) Range {
	start := max(vp.ScrollLeft-cfg.Buffer, 0)
	end := min(vp.ScrollLeft+vp.Width+cfg.Buffer, timelineWidth)
	if end < start {
		end = start
	}
	return Range{Start: start, End: end}
}
