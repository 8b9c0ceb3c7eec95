// Package pipeline runs one update cycle of the timeline engine.
//
// A cycle turns a snapshot of work items plus the host's settings and scroll
// position into a [frame.Frame]. By centralizing it here, the CLI, the
// terminal browser and the HTTP server compute frames identically.
//
// # Architecture
//
// A cycle consists of these stages:
//
//  1. Window: derive the visible calendar span from item dates
//  2. Map: build the date/pixel mapper for the scale and zoom
//  3. Rows: group, filter, collapse and position the row stack
//  4. Cull: mark rows and columns worth drawing for the viewport
//  5. Route: connect parents and predecessors between rows
//
// [Compute] runs the stages without side effects. [Runner] wraps it with
// item loading, frame caching and observability hooks.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, src, pipeline.Options{
//	    Settings: settings.Default(),
//	    Viewport: viewport.Viewport{Width: 1280, Height: 800},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Frame.Stats.Visible, "rows visible")
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roadmap/pkg/cache"
	"github.com/matzehuels/roadmap/pkg/core/calendar"
	"github.com/matzehuels/roadmap/pkg/core/item"
	"github.com/matzehuels/roadmap/pkg/core/viewport"
	"github.com/matzehuels/roadmap/pkg/errors"
	"github.com/matzehuels/roadmap/pkg/frame"
	"github.com/matzehuels/roadmap/pkg/settings"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultViewportWidth is used when the host reports no viewport width.
	DefaultViewportWidth = 1280.0

	// DefaultViewportHeight is used when the host reports no viewport height.
	DefaultViewportHeight = 800.0
)

// =============================================================================
// Options - Cycle Configuration
// =============================================================================

// Options contains all inputs of one cycle besides the items.
// This struct supports JSON serialization for API requests.
type Options struct {
	Settings settings.Settings `json:"settings"`
	Viewport viewport.Viewport `json:"viewport"`

	// Today anchors the default window when no item carries a date.
	Today time.Time `json:"today,omitzero"`

	// Refresh bypasses cached frames.
	Refresh bool `json:"refresh,omitempty"`

	// Debug checks engine invariants on every cycle.
	Debug bool `json:"debug,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// DefaultOptions returns options carrying [settings.Default]. Decode
// requests over it so a partial settings object keeps the defaults for the
// fields it leaves out.
func DefaultOptions() Options {
	return Options{Settings: settings.Default()}
}

// Result contains the outputs of a runner execution.
type Result struct {
	// Items is the loaded snapshot.
	Items []item.Item

	// ItemsHash is the content hash of the snapshot.
	ItemsHash string

	// Frame is the computed cycle output.
	Frame *frame.Frame

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks whether the frame came from cache.
	CacheInfo CacheInfo
}

// Stats contains runner execution statistics.
type Stats struct {
	LoadTime    time.Duration
	ComputeTime time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	FrameHit bool // Whether the frame came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills in unset fields. Settings without a time scale, zoom
// level or row density are treated as unset and replaced by
// [settings.Default]. Partial settings keep their zero booleans; build them
// from [DefaultOptions] or [settings.Default] instead.
func (o *Options) SetDefaults() {
	s := o.Settings
	if s.TimeScale == "" && s.ZoomLevel == 0 && s.RowDensity == "" {
		def := settings.Default()
		def.CollapsedKeys = s.CollapsedKeys
		o.Settings = def
	}
	if o.Viewport.Width == 0 {
		o.Viewport.Width = DefaultViewportWidth
	}
	if o.Viewport.Height == 0 {
		o.Viewport.Height = DefaultViewportHeight
	}
	if o.Today.IsZero() {
		o.Today = calendar.Today()
	} else {
		o.Today = calendar.Truncate(o.Today)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate rejects input the engine cannot degrade gracefully: negative
// viewport geometry and malformed collapse keys. Unrecognized setting values
// are not errors; they resolve to defaults.
func (o *Options) Validate() error {
	vp := o.Viewport
	if vp.Width < 0 || vp.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "viewport size must not be negative (got %vx%v)", vp.Width, vp.Height)
	}
	if vp.ScrollTop < 0 || vp.ScrollLeft < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scroll offsets must not be negative")
	}
	for _, k := range o.Settings.CollapsedKeys {
		if err := errors.ValidateCollapsedKey(k); err != nil {
			return err
		}
	}
	return nil
}

// FrameKeyOpts returns the cache key options for the viewport and settings.
func (o *Options) FrameKeyOpts() (cache.FrameKeyOpts, error) {
	h, err := cache.HashJSON(o.Settings)
	if err != nil {
		return cache.FrameKeyOpts{}, err
	}
	return cache.FrameKeyOpts{
		SettingsHash: h,
		ScrollTop:    o.Viewport.ScrollTop,
		ScrollLeft:   o.Viewport.ScrollLeft,
		Width:        o.Viewport.Width,
		Height:       o.Viewport.Height,
		Today:        calendar.Format(o.Today),
		Debug:        o.Debug,
	}, nil
}
