package timeline

// Tables holds the lookup values the mapper derives geometry from.
// It is passed by value; two mappers never share mutable state.
type Tables struct {
	// DayWidths is the base width in pixels of one calendar day per scale.
	DayWidths [scaleCount]float64

	// MinBarWidth is the narrowest bar ever produced, in pixels.
	MinBarWidth float64

	// LeadDays and TrailDays pad the observed date range of the items.
	LeadDays  int
	TrailDays int

	// DefaultBefore and DefaultAfter span the window around today when no
	// item has a date.
	DefaultBefore int
	DefaultAfter  int
}

// DefaultTables returns the standard lookup values.
func DefaultTables() Tables {
	return Tables{
		DayWidths: [scaleCount]float64{
			Daily:     40,
			Weekly:    12,
			Monthly:   4,
			Annual:    1,
			MultiYear: 0.35,
		},
		MinBarWidth:   8,
		LeadDays:      14,
		TrailDays:     30,
		DefaultBefore: 30,
		DefaultAfter:  90,
	}
}

// DayWidth returns the base day width for s, falling back to the default
// table when the configured value is not positive.
func (t Tables) DayWidth(s Scale) float64 {
	if s < 0 || s >= scaleCount {
		s = DefaultScale
	}
	if w := t.DayWidths[s]; w > 0 {
		return w
	}
	return DefaultTables().DayWidths[s]
}
