package settings

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/roadmap/pkg/core/connector"
	"github.com/matzehuels/roadmap/pkg/core/rows"
	"github.com/matzehuels/roadmap/pkg/core/timeline"
	"github.com/matzehuels/roadmap/pkg/core/viewport"
)

// Connector routing policies.
const (
	// ConnectVisible routes only between rows the culler marked visible.
	ConnectVisible = "visible"
	// ConnectAll routes over every row.
	ConnectAll = "all"
)

// Settings is the raw settings bundle.
type Settings struct {
	TimeScale      string   `json:"timeScale" yaml:"timeScale" toml:"timeScale"`
	ZoomLevel      float64  `json:"zoomLevel" yaml:"zoomLevel" toml:"zoomLevel"`
	RowDensity     string   `json:"rowDensity" yaml:"rowDensity" toml:"rowDensity"`
	GroupBy        string   `json:"groupBy" yaml:"groupBy" toml:"groupBy"`
	ShowHierarchy  bool     `json:"showHierarchy" yaml:"showHierarchy" toml:"showHierarchy"`
	ShowEpics      bool     `json:"showEpics" yaml:"showEpics" toml:"showEpics"`
	ShowFeatures   bool     `json:"showFeatures" yaml:"showFeatures" toml:"showFeatures"`
	ShowMilestones bool     `json:"showMilestones" yaml:"showMilestones" toml:"showMilestones"`
	CollapsedKeys  []string `json:"collapsedKeys,omitempty" yaml:"collapsedKeys,omitempty" toml:"collapsedKeys,omitempty"`
	PDFMode        bool     `json:"pdfMode" yaml:"pdfMode" toml:"pdfMode"`

	Connectors Connectors `json:"connectors" yaml:"connectors" toml:"connectors"`
	Culling    Culling    `json:"culling" yaml:"culling" toml:"culling"`
}

// Connectors configures dependency routing.
type Connectors struct {
	Parents      bool   `json:"parents" yaml:"parents" toml:"parents"`
	Predecessors bool   `json:"predecessors" yaml:"predecessors" toml:"predecessors"`
	Policy       string `json:"policy" yaml:"policy" toml:"policy"`
}

// Culling configures the viewport culler.
type Culling struct {
	Threshold  int     `json:"threshold" yaml:"threshold" toml:"threshold"`
	Buffer     float64 `json:"buffer" yaml:"buffer" toml:"buffer"`
	MinVisible int     `json:"minVisible" yaml:"minVisible" toml:"minVisible"`
}

// Default returns the default settings.
func Default() Settings {
	cull := viewport.DefaultConfig()
	return Settings{
		TimeScale:      timeline.DefaultScale.String(),
		ZoomLevel:      float64(timeline.Zoom100),
		RowDensity:     rows.DefaultDensity.String(),
		GroupBy:        string(rows.GroupByEpic),
		ShowHierarchy:  true,
		ShowEpics:      true,
		ShowFeatures:   true,
		ShowMilestones: true,
		Connectors: Connectors{
			Parents:      true,
			Predecessors: true,
			Policy:       ConnectVisible,
		},
		Culling: Culling{
			Threshold:  cull.Threshold,
			Buffer:     cull.Buffer,
			MinVisible: cull.MinVisible,
		},
	}
}

// Resolved is the typed form of [Settings] the engine consumes.
type Resolved struct {
	Scale   timeline.Scale
	Zoom    timeline.Zoom
	Density rows.Density
	Tables  timeline.Tables

	Rows       rows.Options
	Culling    viewport.Config
	Connectors connector.Options

	// ConnectVisibleOnly restricts routing to visible rows.
	ConnectVisibleOnly bool
}

// Resolve maps s to engine inputs, substituting defaults for unrecognized
// values. It never fails.
func (s Settings) Resolve() Resolved {
	density := rows.ParseDensity(s.RowDensity)
	def := viewport.DefaultConfig()

	cull := viewport.Config{
		Threshold:  s.Culling.Threshold,
		Buffer:     s.Culling.Buffer,
		MinVisible: s.Culling.MinVisible,
	}
	if cull.Threshold < 0 {
		cull.Threshold = def.Threshold
	}
	if cull.Buffer < 0 {
		cull.Buffer = def.Buffer
	}
	if cull.MinVisible < 0 {
		cull.MinVisible = def.MinVisible
	}

	return Resolved{
		Scale:   timeline.ParseScale(s.TimeScale),
		Zoom:    timeline.ParseZoom(s.ZoomLevel),
		Density: density,
		Tables:  timeline.DefaultTables(),
		Rows: rows.Options{
			GroupBy:       rows.ParseGroupBy(s.GroupBy),
			ShowHierarchy: s.ShowHierarchy,
			Types: rows.TypeFilter{
				Epics:      s.ShowEpics,
				Features:   s.ShowFeatures,
				Milestones: s.ShowMilestones,
			},
			Collapsed: rows.NewKeySet(s.CollapsedKeys...),
			ExpandAll: s.PDFMode,
			Metrics:   rows.MetricsFor(density),
		},
		Culling: cull,
		Connectors: connector.Options{
			Parents:      s.Connectors.Parents,
			Predecessors: s.Connectors.Predecessors,
		},
		ConnectVisibleOnly: s.Connectors.Policy != ConnectAll,
	}
}

// Problems describes every value [Settings.Resolve] did not take literally,
// either because it fell back to a default or because an alias was read as
// its canonical name. An empty result means the settings were used as given.
func (s Settings) Problems() []string {
	var out []string
	r := s.Resolve()

	if !strings.EqualFold(r.Scale.String(), s.TimeScale) {
		out = append(out, fmt.Sprintf("timeScale %q read as %s", s.TimeScale, r.Scale))
	}
	if float64(r.Zoom) != s.ZoomLevel {
		out = append(out, fmt.Sprintf("zoomLevel %v not available, using %v", s.ZoomLevel, float64(r.Zoom)))
	}
	if !strings.EqualFold(r.Density.String(), s.RowDensity) {
		out = append(out, fmt.Sprintf("rowDensity %q read as %s", s.RowDensity, r.Density))
	}
	if !strings.EqualFold(string(r.Rows.GroupBy), s.GroupBy) {
		out = append(out, fmt.Sprintf("groupBy %q read as %s", s.GroupBy, r.Rows.GroupBy))
	}
	if p := s.Connectors.Policy; p != ConnectVisible && p != ConnectAll {
		out = append(out, fmt.Sprintf("connectors.policy %q not recognized, using %s", p, ConnectVisible))
	}
	if s.Culling.Threshold < 0 || s.Culling.Buffer < 0 || s.Culling.MinVisible < 0 {
		out = append(out, "negative culling values replaced with defaults")
	}
	return out
}

// Collapse returns a copy of s with key added to the collapsed set.
func (s Settings) Collapse(key string) Settings {
	if slices.Contains(s.CollapsedKeys, key) {
		return s
	}
	s.CollapsedKeys = append(slices.Clone(s.CollapsedKeys), key)
	return s
}

// Expand returns a copy of s with key removed from the collapsed set.
func (s Settings) Expand(key string) Settings {
	s.CollapsedKeys = slices.DeleteFunc(slices.Clone(s.CollapsedKeys), func(k string) bool { return k == key })
	return s
}

// Toggle collapses key when expanded and expands it when collapsed.
func (s Settings) Toggle(key string) Settings {
	if slices.Contains(s.CollapsedKeys, key) {
		return s.Expand(key)
	}
	return s.Collapse(key)
}
