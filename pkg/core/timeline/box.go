package timeline

import (
	"github.com/matzehuels/roadmap/pkg/core/item"
	"github.com/matzehuels/roadmap/pkg/core/rows"
)

// Box is an axis-aligned rectangle in timeline coordinates.
// Y grows downward, so Top <= Bottom.
type Box struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Width returns the horizontal span of the box.
func (b Box) Width() float64 { return b.Right - b.Left }

// Height returns the vertical span of the box.
func (b Box) Height() float64 { return b.Bottom - b.Top }

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return (b.Left + b.Right) / 2 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return (b.Top + b.Bottom) / 2 }

// ItemBox returns the shape drawn for row r: a bar for Epics and Features, a
// square centered on the target day's x for Milestones. Group headers and rows
// whose item lacks the required dates report false.
func (m Mapper) ItemBox(r rows.Row, metrics rows.Metrics) (Box, bool) {
	it := r.Item
	if it == nil || !it.HasDates() {
		return Box{}, false
	}
	cy := r.CenterY()

	if it.Type == item.Milestone {
		half := metrics.MilestoneSize / 2
		x := m.MilestoneX(it.Target)
		return Box{Left: x - half, Right: x + half, Top: cy - half, Bottom: cy + half}, true
	}

	b := m.BarBounds(it.Start, it.Target)
	half := metrics.BarHeight(r.Kind) / 2
	return Box{Left: b.X, Right: b.X + b.Width, Top: cy - half, Bottom: cy + half}, true
}
