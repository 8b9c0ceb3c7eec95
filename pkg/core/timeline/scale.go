package timeline

import (
	"math"
	"strings"
)

// Scale is the unit a timeline is read in.
type Scale int

const (
	Daily Scale = iota
	Weekly
	Monthly
	Annual
	MultiYear

	scaleCount
)

// DefaultScale is used for unrecognized scale names.
const DefaultScale = Monthly

var scaleNames = [scaleCount]string{
	Daily:     "daily",
	Weekly:    "weekly",
	Monthly:   "monthly",
	Annual:    "annual",
	MultiYear: "multiYear",
}

// Scales returns every scale in ascending order of span.
func Scales() []Scale {
	return []Scale{Daily, Weekly, Monthly, Annual, MultiYear}
}

func (s Scale) String() string {
	if s < 0 || s >= scaleCount {
		return scaleNames[DefaultScale]
	}
	return scaleNames[s]
}

// ParseScale reads a scale name case-insensitively, falling back to
// [DefaultScale].
func ParseScale(name string) Scale {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("-", "", "_", "", " ", "").Replace(n)
	switch n {
	case "daily", "day":
		return Daily
	case "weekly", "week":
		return Weekly
	case "monthly", "month":
		return Monthly
	case "annual", "annually", "yearly", "year":
		return Annual
	case "multiyear", "multiyearly", "years":
		return MultiYear
	}
	return DefaultScale
}

// Zoom is a discrete multiplier applied to the scale's day width.
type Zoom float64

const (
	Zoom50  Zoom = 0.5
	Zoom100 Zoom = 1
	Zoom150 Zoom = 1.5
	Zoom200 Zoom = 2
)

// Zooms returns the valid zoom levels in ascending order.
func Zooms() []Zoom {
	return []Zoom{Zoom50, Zoom100, Zoom150, Zoom200}
}

// ParseZoom snaps f to the nearest valid zoom level. Non-finite or
// non-positive values become [Zoom100]. Ties go to the smaller level.
func ParseZoom(f float64) Zoom {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return Zoom100
	}
	best := Zoom100
	bestDist := math.Inf(1)
	for _, z := range Zooms() {
		if d := math.Abs(float64(z) - f); d < bestDist {
			best, bestDist = z, d
		}
	}
	return best
}

// Valid reports whether z is one of the enumerated zoom levels.
func (z Zoom) Valid() bool {
	for _, v := range Zooms() {
		if z == v {
			return true
		}
	}
	return false
}
