package pipeline

import (
	"time"

	"github.com/matzehuels/roadmap/pkg/core/calendar"
	"github.com/matzehuels/roadmap/pkg/core/connector"
	"github.com/matzehuels/roadmap/pkg/core/item"
	"github.com/matzehuels/roadmap/pkg/core/rows"
	"github.com/matzehuels/roadmap/pkg/core/timeline"
	"github.com/matzehuels/roadmap/pkg/core/viewport"
	"github.com/matzehuels/roadmap/pkg/errors"
	"github.com/matzehuels/roadmap/pkg/frame"
	"github.com/matzehuels/roadmap/pkg/settings"
)

// Compute runs one cycle over items. It never modifies items or opts.
func Compute(items []item.Item, opts Options) (*frame.Frame, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	began := time.Now()
	res := opts.Settings.Resolve()

	for _, msg := range opts.Settings.Problems() {
		opts.Logger.Warn("setting fallback", "problem", msg)
	}

	m := timeline.New(timeline.Config{
		Window: timeline.ComputeWindow(items, res.Tables, opts.Today),
		Scale:  res.Scale,
		Zoom:   res.Zoom,
	}, res.Tables)

	layout := rows.Build(items, res.Rows)
	visible := viewport.VisibleRows(layout.Rows, opts.Viewport, len(items), res.Culling)
	cols := viewport.VisibleColumns(opts.Viewport, m.Width(), res.Culling)

	if opts.Debug {
		if err := checkInvariants(m, layout); err != nil {
			return nil, err
		}
	}

	conns := route(layout.Rows, visible, m, res)

	f := &frame.Frame{
		Version:  frame.Version,
		Window:   timeline.Window{Start: m.Start(), End: m.End()},
		Scale:    res.Scale.String(),
		Zoom:     float64(res.Zoom),
		DayWidth: m.DayWidth(),
		Width:    m.Width(),
		Height:   layout.Height,
		Viewport: opts.Viewport,
		Columns:  cols,
		Rows:     make([]frame.Row, len(layout.Rows)),
	}
	for i, r := range layout.Rows {
		f.Rows[i] = newRow(r, visible[i], m, res.Rows.Metrics)
	}
	for _, c := range conns {
		f.Connectors = append(f.Connectors, frame.FromConnector(c))
	}
	for t := range m.Ticks() {
		if cols.Contains(t.X) {
			f.Ticks = append(f.Ticks, t)
		}
	}

	f.Stats = frame.Stats{
		Items:      len(items),
		Rows:       len(f.Rows),
		Visible:    viewport.Count(visible),
		Connectors: len(f.Connectors),
		Ticks:      len(f.Ticks),
		Duration:   time.Since(began),
	}
	opts.Logger.Debug("computed frame",
		"rows", f.Stats.Rows,
		"visible", f.Stats.Visible,
		"connectors", f.Stats.Connectors,
		"window", calendar.Format(f.Window.Start)+".."+calendar.Format(f.Window.End))
	return f, nil
}

// route applies the connector policy: with visible-only routing the culling
// mask is handed to the router.
func route(rs []rows.Row, visible []bool, m timeline.Mapper, res settings.Resolved) []connector.Connector {
	opts := res.Connectors
	if res.ConnectVisibleOnly {
		opts.Visible = visible
	}
	return connector.Route(rs, m, opts)
}

func newRow(r rows.Row, visible bool, m timeline.Mapper, metrics rows.Metrics) frame.Row {
	out := frame.Row{
		Key:        r.Key,
		Kind:       r.Kind.String(),
		Label:      r.Label(),
		Y:          r.Y,
		Height:     r.Height,
		Level:      r.Level,
		Collapsed:  r.Collapsed,
		ChildCount: r.ChildCount,
		IsParent:   r.IsParent,
		Visible:    visible,
	}
	if it := r.Item; it != nil {
		out.ID = it.ID
		out.State = it.State
		out.Start = calendar.Format(it.Start)
		out.Target = calendar.Format(it.Target)
	}
	if visible {
		if b, ok := m.ItemBox(r, metrics); ok {
			out.Box = &b
		}
	}
	return out
}

func checkInvariants(m timeline.Mapper, layout rows.Layout) error {
	if m.DayWidth() <= 0 {
		return errors.New(errors.ErrCodeInvariant, "day width %v is not positive", m.DayWidth())
	}
	if err := rows.Validate(layout.Rows); err != nil {
		return errors.Wrap(errors.ErrCodeInvariant, err, "row layout")
	}
	if n := len(layout.Rows); n > 0 && layout.Rows[n-1].Bottom() != layout.Height {
		return errors.New(errors.ErrCodeInvariant, "layout height %v does not match last row bottom %v",
			layout.Height, layout.Rows[n-1].Bottom())
	}
	return nil
}
