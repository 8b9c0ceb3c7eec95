package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roadmap/pkg/core/calendar"
	"github.com/matzehuels/roadmap/pkg/core/rows"
	"github.com/matzehuels/roadmap/pkg/core/timeline"
	"github.com/matzehuels/roadmap/pkg/core/viewport"
	"github.com/matzehuels/roadmap/pkg/pipeline"
	"github.com/matzehuels/roadmap/pkg/settings"
)

// engineFlags are the settings and viewport flags shared by the commands
// that compute frames. Settings resolve as defaults < settings file < flags.
type engineFlags struct {
	settingsPath string

	scale      string
	zoom       float64
	density    string
	groupBy    string
	hierarchy  bool
	epics      bool
	features   bool
	milestones bool
	collapse   []string
	pdf        bool
	connect    string

	scrollTop  float64
	scrollLeft float64
	width      float64
	height     float64
	today      string
	debug      bool
}

func (f *engineFlags) register(cmd *cobra.Command) {
	def := settings.Default()
	fl := cmd.Flags()

	fl.StringVar(&f.settingsPath, "settings", "", "settings file (.toml, .yaml, .json); default: roadmap.* in the working directory")
	fl.StringVarP(&f.scale, "scale", "s", def.TimeScale, "time scale: daily, weekly, monthly, annual, multiYear")
	fl.Float64VarP(&f.zoom, "zoom", "z", def.ZoomLevel, "zoom level: 0.5, 1, 1.5, 2")
	fl.StringVar(&f.density, "density", def.RowDensity, "row density: compact, normal, comfortable")
	fl.StringVarP(&f.groupBy, "group-by", "g", def.GroupBy, "grouping: epic, area, iteration, assignedTo, state, priority, tags")
	fl.BoolVar(&f.hierarchy, "hierarchy", def.ShowHierarchy, "nest items under their epic or group")
	fl.BoolVar(&f.epics, "epics", def.ShowEpics, "show epics")
	fl.BoolVar(&f.features, "features", def.ShowFeatures, "show features")
	fl.BoolVar(&f.milestones, "milestones", def.ShowMilestones, "show milestones")
	fl.StringSliceVarP(&f.collapse, "collapse", "c", nil, "collapsed keys (E-12, group:Backend)")
	fl.BoolVar(&f.pdf, "pdf", def.PDFMode, "print mode: expand everything")
	fl.StringVar(&f.connect, "connect", def.Connectors.Policy, "connector policy: visible, all")

	fl.Float64Var(&f.scrollTop, "scroll-top", 0, "vertical scroll offset in pixels")
	fl.Float64Var(&f.scrollLeft, "scroll-left", 0, "horizontal scroll offset in pixels")
	fl.Float64Var(&f.width, "width", pipeline.DefaultViewportWidth, "viewport width in pixels")
	fl.Float64Var(&f.height, "height", pipeline.DefaultViewportHeight, "viewport height in pixels")
	fl.StringVar(&f.today, "today", "", "reference day (YYYY-MM-DD) for the default window")
	fl.BoolVar(&f.debug, "debug", false, "check engine invariants")

	var scales []string
	for _, sc := range timeline.Scales() {
		scales = append(scales, sc.String())
	}
	groups := []string{string(rows.GroupByEpic)}
	for _, g := range rows.GroupByFields {
		groups = append(groups, string(g))
	}
	_ = cmd.RegisterFlagCompletionFunc("scale", cobra.FixedCompletions(scales, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("group-by", cobra.FixedCompletions(groups, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("density", cobra.FixedCompletions(
		[]string{rows.Compact.String(), rows.Normal.String(), rows.Comfortable.String()}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("connect", cobra.FixedCompletions(
		[]string{settings.ConnectVisible, settings.ConnectAll}, cobra.ShellCompDirectiveNoFileComp))
}

// settings loads the settings file, if any, and applies flags the user set.
func (f *engineFlags) settings(cmd *cobra.Command) (settings.Settings, error) {
	s, err := f.fileSettings()
	if err != nil {
		return s, err
	}
	return f.apply(cmd, s), nil
}

// fileSettings returns the defaults overlaid with the settings file.
func (f *engineFlags) fileSettings() (settings.Settings, error) {
	path := f.settingsPath
	if path == "" {
		path, _ = settings.Find(".")
	}
	if path == "" {
		return settings.Default(), nil
	}
	return settings.Load(path)
}

// apply overrides s with the flags the user set.
func (f *engineFlags) apply(cmd *cobra.Command, s settings.Settings) settings.Settings {
	fl := cmd.Flags()
	if fl.Changed("scale") {
		s.TimeScale = f.scale
	}
	if fl.Changed("zoom") {
		s.ZoomLevel = f.zoom
	}
	if fl.Changed("density") {
		s.RowDensity = f.density
	}
	if fl.Changed("group-by") {
		s.GroupBy = f.groupBy
	}
	if fl.Changed("hierarchy") {
		s.ShowHierarchy = f.hierarchy
	}
	if fl.Changed("epics") {
		s.ShowEpics = f.epics
	}
	if fl.Changed("features") {
		s.ShowFeatures = f.features
	}
	if fl.Changed("milestones") {
		s.ShowMilestones = f.milestones
	}
	if fl.Changed("collapse") {
		s.CollapsedKeys = f.collapse
	}
	if fl.Changed("pdf") {
		s.PDFMode = f.pdf
	}
	if fl.Changed("connect") {
		s.Connectors.Policy = f.connect
	}
	return s
}

// options builds pipeline options from the flags.
func (f *engineFlags) options(cmd *cobra.Command) (pipeline.Options, error) {
	s, err := f.settings(cmd)
	if err != nil {
		return pipeline.Options{}, err
	}
	return f.optionsWith(s)
}

// optionsWith builds pipeline options around already resolved settings.
func (f *engineFlags) optionsWith(s settings.Settings) (pipeline.Options, error) {
	var today time.Time
	if f.today != "" {
		t, ok := calendar.Parse(f.today)
		if !ok {
			return pipeline.Options{}, fmt.Errorf("invalid --today %q (want YYYY-MM-DD)", f.today)
		}
		today = t
	}
	return pipeline.Options{
		Settings: s,
		Viewport: viewport.Viewport{
			ScrollTop:  f.scrollTop,
			ScrollLeft: f.scrollLeft,
			Width:      f.width,
			Height:     f.height,
		},
		Today: today,
		Debug: f.debug,
	}, nil
}
