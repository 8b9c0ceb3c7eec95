package pipeline

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/roadmap/pkg/cache"
	"github.com/matzehuels/roadmap/pkg/core/calendar"
	"github.com/matzehuels/roadmap/pkg/core/connector"
	"github.com/matzehuels/roadmap/pkg/core/item"
	"github.com/matzehuels/roadmap/pkg/core/viewport"
	"github.com/matzehuels/roadmap/pkg/errors"
	"github.com/matzehuels/roadmap/pkg/observability"
	"github.com/matzehuels/roadmap/pkg/settings"
	"github.com/matzehuels/roadmap/pkg/source"
)

func day(s string) time.Time {
	t, ok := calendar.Parse(s)
	if !ok {
		panic("bad date " + s)
	}
	return t
}

func sampleItems() []item.Item {
	return []item.Item{
		{ID: 1, Type: item.Epic, Title: "Platform", Start: day("2024-03-01"), Target: day("2024-06-30")},
		{ID: 2, Type: item.Feature, Title: "Login", Parent: "E-1", Start: day("2024-03-04"), Target: day("2024-04-12")},
		{ID: 3, Type: item.Milestone, Title: "Beta", Target: day("2024-05-01"), Predecessor: "2"},
		{ID: 4, Type: item.Feature, Title: "Someday"},
	}
}

func baseOptions() Options {
	return Options{
		Settings: settings.Default(),
		Viewport: viewport.Viewport{Width: 800, Height: 600},
		Today:    day("2024-01-10"),
		Debug:    true,
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	o.Settings.CollapsedKeys = []string{"E-1"}
	o.Today = time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)
	require.NoError(t, o.ValidateAndSetDefaults())

	assert.Equal(t, settings.Default().TimeScale, o.Settings.TimeScale)
	assert.Equal(t, []string{"E-1"}, o.Settings.CollapsedKeys)
	assert.Equal(t, DefaultViewportWidth, o.Viewport.Width)
	assert.Equal(t, DefaultViewportHeight, o.Viewport.Height)
	assert.Equal(t, day("2024-01-10"), o.Today)
	assert.NotNil(t, o.Logger)
}

func TestDefaultOptionsPartialSettings(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		scale string
		keys  []string
	}{
		{"group by area", `{"settings": {"groupBy": "area"}}`, "monthly", []string{"group:Unassigned", "E-1", "M-3", "F-2", "F-4"}},
		{"daily scale", `{"settings": {"timeScale": "daily"}}`, "daily", []string{"E-1", "F-2", "M-3", "F-4"}},
		{"no settings", `{}`, "monthly", []string{"E-1", "F-2", "M-3", "F-4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			require.NoError(t, json.Unmarshal([]byte(tt.body), &opts))
			opts.Today = day("2024-01-10")

			f, err := Compute(sampleItems(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.scale, f.Scale)

			keys := make([]string, len(f.Rows))
			for i, r := range f.Rows {
				keys[i] = r.Key
			}
			assert.Equal(t, tt.keys, keys)
		})
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Options)
		code errors.Code
	}{
		{"negative width", func(o *Options) { o.Viewport.Width = -1 }, errors.ErrCodeInvalidInput},
		{"negative scroll", func(o *Options) { o.Viewport.ScrollTop = -5 }, errors.ErrCodeInvalidInput},
		{"bad collapsed key", func(o *Options) { o.Settings.CollapsedKeys = []string{"../etc"} }, errors.ErrCodeInvalidKey},
		{"empty group key", func(o *Options) { o.Settings.CollapsedKeys = []string{"group:"} }, errors.ErrCodeInvalidKey},
		{"valid", func(o *Options) { o.Settings.CollapsedKeys = []string{"E-1", "group:Core"} }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := baseOptions()
			tt.mod(&o)
			err := o.ValidateAndSetDefaults()
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestCompute(t *testing.T) {
	items := sampleItems()
	f, err := Compute(items, baseOptions())
	require.NoError(t, err)

	assert.Equal(t, day("2024-02-16"), f.Window.Start)
	assert.Equal(t, day("2024-07-30"), f.Window.End)
	assert.Equal(t, "monthly", f.Scale)
	assert.Greater(t, f.DayWidth, 0.0)

	keys := make([]string, len(f.Rows))
	for i, r := range f.Rows {
		keys[i] = r.Key
	}
	assert.Equal(t, []string{"E-1", "F-2", "M-3", "F-4"}, keys)
	assert.Equal(t, 4, f.Stats.Visible, "culling is off below the threshold")

	epic, ok := f.Row("E-1")
	require.True(t, ok)
	assert.True(t, epic.IsParent)
	assert.Equal(t, 1, epic.ChildCount)
	require.NotNil(t, epic.Box)
	assert.Equal(t, "2024-03-01", epic.Start)

	undated, _ := f.Row("F-4")
	assert.Nil(t, undated.Box)

	require.Len(t, f.Connectors, 2)
	assert.Equal(t, connector.Parent, f.Connectors[0].Family)
	assert.Equal(t, connector.Predecessor, f.Connectors[1].Family)
	assert.Equal(t, f.Connectors[1].Connector.Path(), f.Connectors[1].Path)
	assert.True(t, f.Connectors[0].Style.Dashed)

	require.NotEmpty(t, f.Ticks)
	for _, tk := range f.Ticks {
		assert.True(t, f.Columns.Contains(tk.X), "tick at %v outside columns", tk.X)
	}

	last := f.Rows[len(f.Rows)-1]
	assert.Equal(t, last.Y+last.Height, f.Height)
	assert.Equal(t, 4, f.Stats.Items)
	assert.Len(t, items, 4, "items not modified")
}

func TestComputeCollapsed(t *testing.T) {
	opts := baseOptions()
	opts.Settings = opts.Settings.Collapse("E-1")

	f, err := Compute(sampleItems(), opts)
	require.NoError(t, err)

	require.Len(t, f.Rows, 3)
	assert.True(t, f.Rows[0].Collapsed)
	_, ok := f.Row("F-2")
	assert.False(t, ok)
	assert.Empty(t, f.Connectors, "edges to hidden children are dropped")
}

func TestComputeConnectorPolicy(t *testing.T) {
	culled := func(policy string) Options {
		o := baseOptions()
		o.Settings.Connectors.Policy = policy
		o.Settings.Culling = settings.Culling{Threshold: 0, Buffer: 0, MinVisible: 1}
		o.Viewport = viewport.Viewport{Width: 800, Height: 1}
		return o
	}

	f, err := Compute(sampleItems(), culled(settings.ConnectVisible))
	require.NoError(t, err)
	assert.Equal(t, 1, f.Stats.Visible)
	assert.True(t, f.Rows[0].Visible)
	assert.Nil(t, f.Rows[1].Box, "hidden rows carry no box")
	assert.Empty(t, f.Connectors)

	f, err = Compute(sampleItems(), culled(settings.ConnectAll))
	require.NoError(t, err)
	assert.Len(t, f.Connectors, 2)
}

func TestComputeEmpty(t *testing.T) {
	f, err := Compute(nil, baseOptions())
	require.NoError(t, err)

	assert.Empty(t, f.Rows)
	assert.Equal(t, 0.0, f.Height)
	assert.Equal(t, day("2023-12-11"), f.Window.Start)
	assert.Equal(t, day("2024-04-09"), f.Window.End)
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu       sync.Mutex
	loads    []string
	computes []observability.ComputeStats
}

func (h *recordingHooks) OnLoadStart(_ context.Context, src string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loads = append(h.loads, src)
}

func (h *recordingHooks) OnComputeComplete(_ context.Context, s observability.ComputeStats, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.computes = append(h.computes, s)
}

func TestRunnerCaching(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := NewRunner(fc, nil, nil)
	defer r.Close()

	ctx := context.Background()
	src := &source.Static{Label: "test", Items: sampleItems()}

	res, err := r.Execute(ctx, src, baseOptions())
	require.NoError(t, err)
	assert.False(t, res.CacheInfo.FrameHit)
	assert.False(t, res.Frame.Stats.Cached)
	assert.NotEmpty(t, res.ItemsHash)

	res2, err := r.Execute(ctx, src, baseOptions())
	require.NoError(t, err)
	assert.True(t, res2.CacheInfo.FrameHit)
	assert.True(t, res2.Frame.Stats.Cached)
	assert.Equal(t, res.Frame.Rows, res2.Frame.Rows)
	assert.Equal(t, res.ItemsHash, res2.ItemsHash)

	scrolled := baseOptions()
	scrolled.Viewport.ScrollTop = 40
	_, hit, err := r.ComputeWithCacheInfo(ctx, res.Items, scrolled)
	require.NoError(t, err)
	assert.False(t, hit, "viewport is part of the key")

	refresh := baseOptions()
	refresh.Refresh = true
	_, hit, err = r.ComputeWithCacheInfo(ctx, res.Items, refresh)
	require.NoError(t, err)
	assert.False(t, hit)

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	assert.Equal(t, []string{"test", "test"}, hooks.loads)
	require.Len(t, hooks.computes, 3)
	assert.Equal(t, 4, hooks.computes[0].Rows)
}

func TestRunnerDebugNotServedFromPlainCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := NewRunner(fc, nil, nil)
	defer r.Close()
	ctx := context.Background()

	plain := baseOptions()
	plain.Debug = false
	_, hit, err := r.ComputeWithCacheInfo(ctx, sampleItems(), plain)
	require.NoError(t, err)
	require.False(t, hit)

	_, hit, err = r.ComputeWithCacheInfo(ctx, sampleItems(), baseOptions())
	require.NoError(t, err)
	assert.False(t, hit, "debug runs check invariants on a fresh frame")

	_, hit, err = r.ComputeWithCacheInfo(ctx, sampleItems(), baseOptions())
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestRunnerInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := baseOptions()
	opts.Viewport.Height = -1

	_, err := r.Execute(context.Background(), &source.Static{Label: "x"}, opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestItemsHashStable(t *testing.T) {
	a, err := ItemsHash(sampleItems())
	require.NoError(t, err)
	b, err := ItemsHash(sampleItems())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	changed := sampleItems()
	changed[0].Title = "Renamed"
	c, err := ItemsHash(changed)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
