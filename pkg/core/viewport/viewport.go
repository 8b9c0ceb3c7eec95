// Package viewport decides which rows and timeline columns are worth
// materializing for a scroll position.
//
// Culling is a pure function of row geometry, scroll offsets and viewport
// size. Below [Config.Threshold] items every row is visible: culling small
// timelines costs more than drawing them. Above it, rows intersecting the
// viewport (widened by [Config.Buffer] on both sides) are visible, and if that
// leaves fewer than [Config.MinVisible] rows the rows closest to the
// viewport's center are added until the floor is met.
package viewport

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/roadmap/pkg/core/rows"
)

// Config holds the culling constants.
type Config struct {
	// Threshold is the item count at which culling starts.
	Threshold int
	// Buffer widens the viewport on every side, in pixels.
	Buffer float64
	// MinVisible is the least number of rows marked visible when culling.
	MinVisible int
}

// DefaultConfig returns the standard culling constants.
func DefaultConfig() Config {
	return Config{
		Threshold:  100,
		Buffer:     200,
		MinVisible: 20,
	}
}

// Viewport is the scroll position and size of the visible area, in pixels.
type Viewport struct {
	ScrollTop  float64 `json:"scrollTop"`
	ScrollLeft float64 `json:"scrollLeft"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}

// CenterY returns the vertical center of the viewport in content coordinates.
func (v Viewport) CenterY() float64 { return v.ScrollTop + v.Height/2 }

// VisibleRows marks each row visible or not. totalItems is the size of the
// underlying item collection and decides whether culling applies at all.
// The result has one entry per row; rs is never modified.
func VisibleRows(rs []rows.Row, vp Viewport, totalItems int, cfg Config) []bool {
	visible := make([]bool, len(rs))
	if totalItems < cfg.Threshold {
		for i := range visible {
			visible[i] = true
		}
		return visible
	}

	top := vp.ScrollTop - cfg.Buffer
	bottom := vp.ScrollTop + vp.Height + cfg.Buffer

	count := 0
	for i, r := range rs {
		if r.Y <= bottom && r.Bottom() >= top {
			visible[i] = true
			count++
		}
	}

	if shortfall := cfg.MinVisible - count; shortfall > 0 {
		fillClosest(rs, visible, vp.CenterY(), shortfall)
	}
	return visible
}

// fillClosest marks the n hidden rows whose centers are nearest to center.
// Ties go to the lower row index.
func fillClosest(rs []rows.Row, visible []bool, center float64, n int) {
	hidden := make([]int, 0, len(rs))
	for i := range rs {
		if !visible[i] {
			hidden = append(hidden, i)
		}
	}
	slices.SortFunc(hidden, func(a, b int) int {
		da := math.Abs(rs[a].CenterY() - center)
		db := math.Abs(rs[b].CenterY() - center)
		if c := cmp.Compare(da, db); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	for _, i := range hidden[:min(n, len(hidden))] {
		visible[i] = true
	}
}

// Count returns the number of true entries in visible.
func Count(visible []bool) int {
	n := 0
	for _, v := range visible {
		if v {
			n++
		}
	}
	return n
}
