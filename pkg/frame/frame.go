package frame

import (
	"time"

	"github.com/matzehuels/roadmap/pkg/core/connector"
	"github.com/matzehuels/roadmap/pkg/core/timeline"
	"github.com/matzehuels/roadmap/pkg/core/viewport"
)

// Version is the current frame format version.
const Version = 1

// =============================================================================
// Frame - Engine Output
// =============================================================================

// Frame is the output of one engine cycle.
type Frame struct {
	Version int `json:"version" bson:"version"`

	// Horizontal geometry
	Window   timeline.Window `json:"window" bson:"window"`
	Scale    string          `json:"scale" bson:"scale"`
	Zoom     float64         `json:"zoom" bson:"zoom"`
	DayWidth float64         `json:"dayWidth" bson:"day_width"`
	Width    float64         `json:"width" bson:"width"`

	// Vertical geometry
	Height float64 `json:"height" bson:"height"`

	// Culling inputs and the resulting column range
	Viewport viewport.Viewport `json:"viewport" bson:"viewport"`
	Columns  viewport.Range    `json:"columns" bson:"columns"`

	Rows       []Row           `json:"rows" bson:"rows"`
	Connectors []Connector     `json:"connectors,omitempty" bson:"connectors,omitempty"`
	Ticks      []timeline.Tick `json:"ticks,omitempty" bson:"ticks,omitempty"`

	Stats Stats `json:"stats" bson:"stats"`
}

// Stats summarizes a frame.
type Stats struct {
	Items      int           `json:"items" bson:"items"`
	Rows       int           `json:"rows" bson:"rows"`
	Visible    int           `json:"visible" bson:"visible"`
	Connectors int           `json:"connectors" bson:"connectors"`
	Ticks      int           `json:"ticks" bson:"ticks"`
	Duration   time.Duration `json:"duration" bson:"duration"`
	Cached     bool          `json:"cached,omitempty" bson:"-"`
}

// VisibleRows returns the rows marked visible, in order.
func (f *Frame) VisibleRows() []Row {
	out := make([]Row, 0, f.Stats.Visible)
	for _, r := range f.Rows {
		if r.Visible {
			out = append(out, r)
		}
	}
	return out
}

// Row returns the row with the given collapse key.
func (f *Frame) Row(key string) (Row, bool) {
	for _, r := range f.Rows {
		if r.Key == key {
			return r, true
		}
	}
	return Row{}, false
}

// =============================================================================
// Row - Positioned Row Entry
// =============================================================================

// Row is one entry of the row stack.
type Row struct {
	Key        string  `json:"key" bson:"key"`
	Kind       string  `json:"kind" bson:"kind"`
	Label      string  `json:"label" bson:"label"`
	ID         int     `json:"id,omitempty" bson:"id,omitempty"`
	State      string  `json:"state,omitempty" bson:"state,omitempty"`
	Start      string  `json:"start,omitempty" bson:"start,omitempty"`
	Target     string  `json:"target,omitempty" bson:"target,omitempty"`
	Y          float64 `json:"y" bson:"y"`
	Height     float64 `json:"height" bson:"height"`
	Level      int     `json:"level" bson:"level"`
	Collapsed  bool    `json:"collapsed,omitempty" bson:"collapsed,omitempty"`
	ChildCount int     `json:"childCount,omitempty" bson:"child_count,omitempty"`
	IsParent   bool    `json:"isParent,omitempty" bson:"is_parent,omitempty"`
	Visible    bool    `json:"visible" bson:"visible"`

	// Box is the bar or milestone shape; nil for undated rows and headers.
	Box *timeline.Box `json:"box,omitempty" bson:"box,omitempty"`
}

// =============================================================================
// Connector - Routed Dependency Line
// =============================================================================

// Connector is a routed line with its drawing style resolved.
type Connector struct {
	connector.Connector `bson:",inline"`

	Path  string          `json:"path" bson:"path"`
	Style connector.Style `json:"style" bson:"style"`
}

// FromConnector resolves the path and style of c.
func FromConnector(c connector.Connector) Connector {
	return Connector{Connector: c, Path: c.Path(), Style: c.Family.Style()}
}
