package timeline

import (
	"iter"
	"math"
	"time"

	"github.com/matzehuels/roadmap/pkg/core/calendar"
	"github.com/matzehuels/roadmap/pkg/core/rows"
	"github.com/matzehuels/roadmap/pkg/core/viewport"
)

// eps absorbs floating point error when converting pixels back to days.
const eps = 1e-9

// Config selects the window and magnification of a [Mapper].
type Config struct {
	Window Window
	Scale  Scale
	Zoom   Zoom
}

// Mapper converts between calendar dates and horizontal pixel offsets.
// The zero value is not usable; construct one with [New].
type Mapper struct {
	cfg       Config
	tables    Tables
	dayWidth  float64
	totalDays int
	width     float64
}

// New returns a mapper for cfg. The window is normalized to calendar days
// with Start <= End, an invalid zoom snaps to the nearest level and an
// unknown scale becomes [DefaultScale].
func New(cfg Config, tables Tables) Mapper {
	cfg.Window = cfg.Window.normalize()
	if cfg.Scale < 0 || cfg.Scale >= scaleCount {
		cfg.Scale = DefaultScale
	}
	if !cfg.Zoom.Valid() {
		cfg.Zoom = ParseZoom(float64(cfg.Zoom))
	}
	if tables.MinBarWidth <= 0 {
		tables.MinBarWidth = DefaultTables().MinBarWidth
	}

	m := Mapper{cfg: cfg, tables: tables}
	m.dayWidth = tables.DayWidth(cfg.Scale) * float64(cfg.Zoom)
	m.totalDays = cfg.Window.Days()
	m.width = float64(m.totalDays) * m.dayWidth
	return m
}

// WithConfig returns a new mapper for cfg using the same tables.
func (m Mapper) WithConfig(cfg Config) Mapper {
	return New(cfg, m.tables)
}

// Config returns the normalized configuration.
func (m Mapper) Config() Config { return m.cfg }

// Tables returns the lookup tables.
func (m Mapper) Tables() Tables { return m.tables }

// Start returns the first day of the window.
func (m Mapper) Start() time.Time { return m.cfg.Window.Start }

// End returns the last day of the window.
func (m Mapper) End() time.Time { return m.cfg.Window.End }

// DayWidth returns the width of one calendar day in pixels.
func (m Mapper) DayWidth() float64 { return m.dayWidth }

// TotalDays returns the number of days in the window.
func (m Mapper) TotalDays() int { return m.totalDays }

// Width returns the full timeline width in pixels.
func (m Mapper) Width() float64 { return m.width }

// DateToX returns the offset of the start of day d from the window start.
// Days before the window give negative offsets.
func (m Mapper) DateToX(d time.Time) float64 {
	return float64(calendar.DaysBetween(m.cfg.Window.Start, d)) * m.dayWidth
}

// XToDate returns the calendar day that contains offset x.
func (m Mapper) XToDate(x float64) time.Time {
	return calendar.AddDays(m.cfg.Window.Start, int(math.Floor(x/m.dayWidth+eps)))
}

// Bounds is a horizontal extent in pixels.
type Bounds struct {
	X     float64 `json:"x"`
	Width float64 `json:"width"`
}

// BarBounds returns the extent of a bar from start to end inclusive. The
// width never drops below the minimum bar width, so same-day and inverted
// ranges still produce a visible bar at start.
func (m Mapper) BarBounds(start, end time.Time) Bounds {
	x := m.DateToX(start)
	w := m.DateToX(end) - x + m.dayWidth
	return Bounds{X: x, Width: max(w, m.tables.MinBarWidth)}
}

// MilestoneX returns the x a milestone on d is centered on.
func (m Mapper) MilestoneX(d time.Time) float64 {
	return m.DateToX(d)
}

// IsDateVisible reports whether d falls inside the window. The zero time
// ("no date") is never visible.
func (m Mapper) IsDateVisible(d time.Time) bool {
	if d.IsZero() {
		return false
	}
	return calendar.DaysBetween(m.cfg.Window.Start, d) >= 0 &&
		calendar.DaysBetween(d, m.cfg.Window.End) >= 0
}

// IsRangeVisible reports whether [start, end] overlaps the window. With only
// one bound present it degrades to [Mapper.IsDateVisible] on that bound; with
// neither it is false.
func (m Mapper) IsRangeVisible(start, end time.Time) bool {
	switch {
	case start.IsZero() && end.IsZero():
		return false
	case start.IsZero():
		return m.IsDateVisible(end)
	case end.IsZero():
		return m.IsDateVisible(start)
	}
	return calendar.DaysBetween(start, m.cfg.Window.End) >= 0 &&
		calendar.DaysBetween(m.cfg.Window.Start, end) >= 0
}

// VisibleRows applies viewport culling to rs. See [viewport.VisibleRows].
func (m Mapper) VisibleRows(rs []rows.Row, vp viewport.Viewport, totalItems int, cfg viewport.Config) []bool {
	return viewport.VisibleRows(rs, vp, totalItems, cfg)
}

// Days returns a lazy, restartable sequence over every day of the window.
func (m Mapper) Days() iter.Seq2[int, time.Time] {
	return calendar.Days(m.cfg.Window.Start, m.cfg.Window.End)
}
