package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roadmap/pkg/core/calendar"
	"github.com/matzehuels/roadmap/pkg/core/item"
	"github.com/matzehuels/roadmap/pkg/core/rows"
	"github.com/matzehuels/roadmap/pkg/core/timeline"
	"github.com/matzehuels/roadmap/pkg/frame"
	"github.com/matzehuels/roadmap/pkg/pipeline"
	"github.com/matzehuels/roadmap/pkg/session"
)

// pxPerCell is how many timeline pixels one terminal column covers.
const pxPerCell = 8.0

// labelCells is the width of the label column.
const labelCells = 36

// browseCommand creates the interactive timeline browser.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		fresh bool
		flags engineFlags
	)

	cmd := &cobra.Command{
		Use:   "browse [items]",
		Short: "Explore a timeline interactively in the terminal",
		Long: `Explore a timeline interactively in the terminal.

The browser owns the scroll position and the collapsed keys and recomputes
the frame on every change, exactly as a graphical host would. The view
(collapsed rows, scale, zoom, grouping, scroll and selection) is saved per
source on exit and restored next time; flags given on the command line
still win. Use --fresh to start from the settings alone.

Keys: ↑/↓ move, ←/→ scroll time, enter fold/unfold, +/- zoom, s scale,
g grouping, h hierarchy, ? help, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd, args[0], &flags, fresh)
		},
	}

	cmd.Flags().BoolVar(&fresh, "fresh", false, "ignore the saved view state")
	flags.register(cmd)
	return cmd
}

func (c *CLI) runBrowse(cmd *cobra.Command, ref string, flags *engineFlags, fresh bool) error {
	ctx := cmd.Context()

	s, err := flags.fileSettings()
	if err != nil {
		return err
	}

	src, err := openSource(ctx, ref)
	if err != nil {
		return fmt.Errorf("open %s: %w", ref, err)
	}
	defer src.Close()

	items, err := src.Load(ctx)
	if err != nil {
		return err
	}

	var saved *session.Session
	store, err := session.NewFileStore("")
	if err != nil {
		c.Logger.Warn("view state disabled", "err", err)
		store = nil
	} else if !fresh {
		if saved, err = store.Get(ctx, session.IDFor(src.Name())); err != nil {
			c.Logger.Warn("ignoring saved view state", "err", err)
			saved = nil
		}
		if saved != nil {
			s = saved.Apply(s)
		}
	}

	opts, err := flags.optionsWith(flags.apply(cmd, s))
	if err != nil {
		return err
	}
	opts.Logger = c.Logger

	m := newBrowseModel(src.Name(), items, opts)
	if saved != nil && !cmd.Flags().Changed("scroll-left") {
		m.restore(saved)
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if bm, ok := final.(browseModel); ok && store != nil {
		if err := store.Set(ctx, bm.snapshot()); err != nil {
			c.Logger.Warn("save view state", "err", err)
		}
	}
	return nil
}

// =============================================================================
// browseModel - Terminal Host
// =============================================================================

// browseModel is the bubbletea model for the timeline browser. One terminal
// line shows one row; the viewport handed to the engine is the pixel span
// of the rows on screen.
type browseModel struct {
	name  string
	items []item.Item
	opts  pipeline.Options

	frame  *frame.Frame
	err    error
	cursor int
	top    int

	width  int
	height int
	help   help.Model
}

func newBrowseModel(name string, items []item.Item, opts pipeline.Options) browseModel {
	m := browseModel{name: name, items: items, opts: opts, width: 120, height: 30, help: help.New()}
	m.recompute()
	return m
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, browseKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, browseKeys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, browseKeys.Up):
			m.move(-1)
		case key.Matches(msg, browseKeys.Down):
			m.move(1)
		case key.Matches(msg, browseKeys.PageUp):
			m.move(-m.lines())
		case key.Matches(msg, browseKeys.PageDown):
			m.move(m.lines())
		case key.Matches(msg, browseKeys.Left):
			m.opts.Viewport.ScrollLeft = max(m.opts.Viewport.ScrollLeft-m.opts.Viewport.Width/4, 0)
		case key.Matches(msg, browseKeys.Right):
			if m.frame != nil {
				limit := max(m.frame.Width-m.opts.Viewport.Width, 0)
				m.opts.Viewport.ScrollLeft = min(m.opts.Viewport.ScrollLeft+m.opts.Viewport.Width/4, limit)
			}
		case key.Matches(msg, browseKeys.Fold):
			m.toggle()
		case key.Matches(msg, browseKeys.ZoomIn):
			m.opts.Settings.ZoomLevel = float64(stepZoom(timeline.ParseZoom(m.opts.Settings.ZoomLevel), 1))
		case key.Matches(msg, browseKeys.ZoomOut):
			m.opts.Settings.ZoomLevel = float64(stepZoom(timeline.ParseZoom(m.opts.Settings.ZoomLevel), -1))
		case key.Matches(msg, browseKeys.Scale):
			m.opts.Settings.TimeScale = nextScale(timeline.ParseScale(m.opts.Settings.TimeScale)).String()
		case key.Matches(msg, browseKeys.Group):
			m.opts.Settings.GroupBy = string(nextGroupBy(rows.ParseGroupBy(m.opts.Settings.GroupBy)))
			m.cursor, m.top = 0, 0
		case key.Matches(msg, browseKeys.Hierarchy):
			m.opts.Settings.ShowHierarchy = !m.opts.Settings.ShowHierarchy
		default:
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	default:
		return m, nil
	}
	m.recompute()
	return m, nil
}

// restore moves the scroll position and cursor to where a saved session
// left them.
func (m *browseModel) restore(sess *session.Session) {
	m.opts.Viewport.ScrollLeft = sess.ScrollLeft
	m.recompute()
	if m.frame == nil {
		return
	}
	if i := slices.IndexFunc(m.frame.Rows, func(r frame.Row) bool { return r.Key == sess.Cursor }); i >= 0 {
		m.cursor = i
		m.move(0)
		m.recompute()
	}
}

// snapshot captures the view state for the next run.
func (m browseModel) snapshot() *session.Session {
	sess := session.New(m.name, m.opts.Settings, session.DefaultTTL)
	sess.ScrollLeft = m.opts.Viewport.ScrollLeft
	if m.frame != nil && m.cursor < len(m.frame.Rows) {
		sess.Cursor = m.frame.Rows[m.cursor].Key
	}
	return sess
}

// lines returns how many rows fit on screen.
func (m browseModel) lines() int {
	footer := 1
	if m.help.ShowAll {
		footer = len(browseKeys.FullHelp()[2])
	}
	return max(m.height-3-footer, 1)
}

func (m *browseModel) move(delta int) {
	if m.frame == nil || len(m.frame.Rows) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.frame.Rows)-1)
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if m.cursor >= m.top+m.lines() {
		m.top = m.cursor - m.lines() + 1
	}
}

// toggle folds or unfolds the parent row under the cursor.
func (m *browseModel) toggle() {
	if m.frame == nil || m.cursor >= len(m.frame.Rows) {
		return
	}
	r := m.frame.Rows[m.cursor]
	if !r.IsParent {
		return
	}
	m.opts.Settings = m.opts.Settings.Toggle(r.Key)
}

// recompute runs one engine cycle for the current state and keeps the
// cursor on the same row key when it survives.
func (m *browseModel) recompute() {
	var key string
	if m.frame != nil && m.cursor < len(m.frame.Rows) {
		key = m.frame.Rows[m.cursor].Key
	}

	m.opts.Viewport.Width = float64(max(m.width-labelCells-4, 10)) * pxPerCell
	m.opts.Viewport.ScrollTop, m.opts.Viewport.Height = m.pixelSpan()

	f, err := pipeline.Compute(m.items, m.opts)
	if err != nil {
		m.err = err
		return
	}
	m.frame, m.err = f, nil

	if i := slices.IndexFunc(f.Rows, func(r frame.Row) bool { return r.Key == key }); i >= 0 {
		m.cursor = i
	}
	m.cursor = min(m.cursor, max(len(f.Rows)-1, 0))
	m.move(0)
}

// pixelSpan returns the scroll offset and height, in pixels, of the rows on
// screen in the previous frame.
func (m browseModel) pixelSpan() (top, height float64) {
	if m.frame == nil || len(m.frame.Rows) == 0 {
		return 0, m.opts.Viewport.Height
	}
	first := min(m.top, len(m.frame.Rows)-1)
	last := min(first+m.lines(), len(m.frame.Rows)) - 1
	top = m.frame.Rows[first].Y
	return top, m.frame.Rows[last].Y + m.frame.Rows[last].Height - top
}

// =============================================================================
// Rendering
// =============================================================================

var (
	browseCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	browseBarStyle    = lipgloss.NewStyle().Foreground(colorBlue)
	browseEpicBar     = lipgloss.NewStyle().Foreground(colorPurple)
	browseTickStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

func (m browseModel) View() string {
	var b strings.Builder

	s := m.opts.Settings
	b.WriteString(StyleTitle.Render(m.name))
	if f := m.frame; f != nil {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  %s × %g · %s · %s → %s",
			f.Scale, f.Zoom, s.GroupBy, calendar.Format(f.Window.Start), calendar.Format(f.Window.End))))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error() + "\n")
		return b.String()
	}
	if m.frame == nil || len(m.frame.Rows) == 0 {
		b.WriteString(StyleDim.Render("no rows") + "\n")
		return b.String()
	}

	cells := max(m.width-labelCells-4, 10)
	b.WriteString(strings.Repeat(" ", labelCells+2) + m.tickLine(cells) + "\n")

	end := min(m.top+m.lines(), len(m.frame.Rows))
	for i := m.top; i < end; i++ {
		r := m.frame.Rows[i]
		marker := "  "
		if i == m.cursor {
			marker = browseCursorStyle.Render("▸ ")
		}
		label := lipgloss.NewStyle().Width(labelCells).MaxWidth(labelCells).Render(rowLabel(r))
		b.WriteString(marker + label + m.barLine(r, cells) + "\n")
	}

	b.WriteString(StyleDim.Render(fmt.Sprintf("%d/%d rows visible  ", m.frame.Stats.Visible, m.frame.Stats.Rows)))
	b.WriteString(m.help.View(browseKeys))
	return b.String()
}

// cell maps a timeline x to a terminal column, or -1 when off screen.
func (m browseModel) cell(x float64, cells int) int {
	c := int((x - m.opts.Viewport.ScrollLeft) / pxPerCell)
	if c < 0 || c >= cells {
		return -1
	}
	return c
}

func (m browseModel) tickLine(cells int) string {
	line := []rune(strings.Repeat(" ", cells))
	for _, t := range m.frame.Ticks {
		if !t.Major {
			continue
		}
		c := m.cell(t.X, cells)
		if c < 0 {
			continue
		}
		for j, r := range t.Label {
			if c+j < cells {
				line[c+j] = r
			}
		}
	}
	return browseTickStyle.Render(string(line))
}

func (m browseModel) barLine(r frame.Row, cells int) string {
	if r.Box == nil {
		return ""
	}
	line := []rune(strings.Repeat(" ", cells))
	if r.Kind == "milestone" {
		if c := m.cell(r.Box.CenterX(), cells); c >= 0 {
			line[c] = []rune(iconMilestone)[0]
		}
		return styleMilestone.Render(string(line))
	}

	from := int((r.Box.Left - m.opts.Viewport.ScrollLeft) / pxPerCell)
	to := int((r.Box.Right - m.opts.Viewport.ScrollLeft) / pxPerCell)
	for c := max(from, 0); c <= min(to, cells-1); c++ {
		line[c] = '━'
	}
	if r.Kind == "epic" {
		return browseEpicBar.Render(string(line))
	}
	return browseBarStyle.Render(string(line))
}

// =============================================================================
// Setting Cycles
// =============================================================================

func stepZoom(z timeline.Zoom, dir int) timeline.Zoom {
	zs := timeline.Zooms()
	i := slices.Index(zs, z)
	if i < 0 {
		return timeline.Zoom100
	}
	return zs[min(max(i+dir, 0), len(zs)-1)]
}

func nextScale(s timeline.Scale) timeline.Scale {
	all := timeline.Scales()
	return all[(slices.Index(all, s)+1)%len(all)]
}

func nextGroupBy(g rows.GroupBy) rows.GroupBy {
	all := append([]rows.GroupBy{rows.GroupByEpic}, rows.GroupByFields...)
	return all[(slices.Index(all, g)+1)%len(all)]
}
