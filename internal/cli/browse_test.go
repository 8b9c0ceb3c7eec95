package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/roadmap/pkg/core/calendar"
	"github.com/matzehuels/roadmap/pkg/core/item"
	"github.com/matzehuels/roadmap/pkg/core/rows"
	"github.com/matzehuels/roadmap/pkg/core/timeline"
	"github.com/matzehuels/roadmap/pkg/pipeline"
	"github.com/matzehuels/roadmap/pkg/settings"
)

func browseItems() []item.Item {
	return []item.Item{
		{ID: 1, Type: item.Epic, Title: "Platform", Start: calendar.Date(2024, 3, 1), Target: calendar.Date(2024, 6, 30)},
		{ID: 2, Type: item.Feature, Title: "Login", Parent: "E-1", Start: calendar.Date(2024, 3, 4), Target: calendar.Date(2024, 4, 12)},
		{ID: 3, Type: item.Milestone, Title: "Beta", Target: calendar.Date(2024, 5, 1), Predecessor: "2"},
	}
}

func newTestBrowser(t *testing.T) browseModel {
	t.Helper()
	m := newBrowseModel("plan", browseItems(), pipeline.Options{
		Settings: settings.Default(),
		Today:    calendar.Date(2024, 1, 10),
		Debug:    true,
	})
	require.NoError(t, m.err)
	require.NotNil(t, m.frame)
	return m
}

func press(t *testing.T, m browseModel, msg tea.Msg) (browseModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	bm, ok := next.(browseModel)
	require.True(t, ok)
	require.NoError(t, bm.err)
	return bm, cmd
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowseToggle(t *testing.T) {
	m := newTestBrowser(t)
	require.Len(t, m.frame.Rows, 3)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"E-1"}, m.opts.Settings.CollapsedKeys)
	assert.Len(t, m.frame.Rows, 2)
	assert.True(t, m.frame.Rows[0].Collapsed)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.opts.Settings.CollapsedKeys)
	assert.Len(t, m.frame.Rows, 3)
}

func TestBrowseCursor(t *testing.T) {
	m := newTestBrowser(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, runeKey("j"))
	assert.Equal(t, 2, m.cursor)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.cursor, "cursor stops at the last row")

	// Toggling on a leaf row changes nothing.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.opts.Settings.CollapsedKeys)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.cursor)
}

func TestBrowseSettingCycles(t *testing.T) {
	m := newTestBrowser(t)

	m, _ = press(t, m, runeKey("+"))
	assert.Equal(t, float64(timeline.Zoom150), m.opts.Settings.ZoomLevel)
	assert.Equal(t, 1.5, m.frame.Zoom)

	m, _ = press(t, m, runeKey("-"))
	m, _ = press(t, m, runeKey("-"))
	m, _ = press(t, m, runeKey("-"))
	assert.Equal(t, float64(timeline.Zoom50), m.opts.Settings.ZoomLevel, "zoom clamps at the smallest level")

	before := m.opts.Settings.TimeScale
	m, _ = press(t, m, runeKey("s"))
	assert.NotEqual(t, before, m.opts.Settings.TimeScale)

	m, _ = press(t, m, runeKey("g"))
	assert.Equal(t, string(rows.GroupByFields[0]), m.opts.Settings.GroupBy)

	m, _ = press(t, m, runeKey("h"))
	assert.False(t, m.opts.Settings.ShowHierarchy)
}

func TestBrowseQuit(t *testing.T) {
	m := newTestBrowser(t)
	_, cmd := press(t, m, runeKey("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBrowseResize(t *testing.T) {
	m := newTestBrowser(t)
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 6})
	assert.Equal(t, 2, m.lines())
	assert.Equal(t, float64(100-labelCells-4)*pxPerCell, m.opts.Viewport.Width)
}

func TestBrowseView(t *testing.T) {
	m := newTestBrowser(t)
	view := m.View()

	lines := strings.Split(view, "\n")
	assert.Contains(t, lines[0], "plan")
	for _, want := range []string{"Platform", "Login", "Beta", "3/3 rows visible"} {
		assert.Contains(t, view, want)
	}
}

func TestSettingCycles(t *testing.T) {
	assert.Equal(t, timeline.Zoom200, stepZoom(timeline.Zoom200, 1))
	assert.Equal(t, timeline.Zoom100, stepZoom(timeline.Zoom(3), 1))
	assert.Equal(t, timeline.Daily, nextScale(timeline.MultiYear))
	assert.Equal(t, rows.GroupByEpic, nextGroupBy(rows.GroupByFields[len(rows.GroupByFields)-1]))
}

func TestBrowseSessionRoundTrip(t *testing.T) {
	m := newTestBrowser(t)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = press(t, m, runeKey("+"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})

	sess := m.snapshot()
	assert.Equal(t, "plan", sess.Source)
	assert.Equal(t, []string{"E-1"}, sess.CollapsedKeys)
	assert.Equal(t, "M-3", sess.Cursor)

	opts := pipeline.Options{Settings: sess.Apply(settings.Default()), Today: calendar.Date(2024, 1, 10)}
	next := newBrowseModel("plan", browseItems(), opts)
	next.restore(sess)
	require.NoError(t, next.err)
	assert.Len(t, next.frame.Rows, 2)
	assert.Equal(t, 1, next.cursor)
	assert.Equal(t, 1.5, next.frame.Zoom)
}

func TestBrowseHelpToggle(t *testing.T) {
	m := newTestBrowser(t)
	assert.Contains(t, m.View(), "quit")
	assert.NotContains(t, m.View(), "page down")

	m, _ = press(t, m, runeKey("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "page down")
}
