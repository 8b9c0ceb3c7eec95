package rows

import "strings"

// Density selects a row height preset.
type Density int

const (
	Compact Density = iota
	Normal
	Comfortable
)

// DefaultDensity is used for unrecognized density names.
const DefaultDensity = Normal

func (d Density) String() string {
	switch d {
	case Compact:
		return "compact"
	case Comfortable:
		return "comfortable"
	default:
		return "normal"
	}
}

// ParseDensity reads a density name, falling back to [DefaultDensity].
func ParseDensity(s string) Density {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "compact", "dense":
		return Compact
	case "comfortable", "relaxed", "spacious":
		return Comfortable
	}
	return DefaultDensity
}

// Metrics are the pixel sizes of rows and the shapes drawn in them.
type Metrics struct {
	RowHeights    [kindCount]float64
	BarHeights    [kindCount]float64
	MilestoneSize float64
}

// RowHeight returns the height of a row of kind k.
func (m Metrics) RowHeight(k Kind) float64 {
	if k < 0 || k >= kindCount {
		return m.RowHeights[KindFeature]
	}
	return m.RowHeights[k]
}

// BarHeight returns the height of the bar drawn in a row of kind k.
func (m Metrics) BarHeight(k Kind) float64 {
	if k < 0 || k >= kindCount {
		return m.BarHeights[KindFeature]
	}
	return m.BarHeights[k]
}

// MetricsFor returns the preset for a density.
func MetricsFor(d Density) Metrics {
	switch d {
	case Compact:
		return Metrics{
			RowHeights:    [kindCount]float64{KindEpic: 28, KindFeature: 24, KindMilestone: 22, KindGroupHeader: 26},
			BarHeights:    [kindCount]float64{KindEpic: 18, KindFeature: 14, KindMilestone: 0, KindGroupHeader: 0},
			MilestoneSize: 10,
		}
	case Comfortable:
		return Metrics{
			RowHeights:    [kindCount]float64{KindEpic: 48, KindFeature: 42, KindMilestone: 38, KindGroupHeader: 44},
			BarHeights:    [kindCount]float64{KindEpic: 32, KindFeature: 26, KindMilestone: 0, KindGroupHeader: 0},
			MilestoneSize: 18,
		}
	default:
		return Metrics{
			RowHeights:    [kindCount]float64{KindEpic: 36, KindFeature: 32, KindMilestone: 28, KindGroupHeader: 34},
			BarHeights:    [kindCount]float64{KindEpic: 24, KindFeature: 20, KindMilestone: 0, KindGroupHeader: 0},
			MilestoneSize: 14,
		}
	}
}
