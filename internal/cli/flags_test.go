package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/roadmap/pkg/core/calendar"
	"github.com/matzehuels/roadmap/pkg/settings"
)

func parseEngineFlags(t *testing.T, args ...string) (*engineFlags, *cobra.Command) {
	t.Helper()
	var f engineFlags
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return &f, cmd
}

func TestEngineFlagsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	f, cmd := parseEngineFlags(t)
	opts, err := f.options(cmd)
	require.NoError(t, err)

	assert.Equal(t, settings.Default(), opts.Settings)
	assert.Equal(t, 1280.0, opts.Viewport.Width)
	assert.True(t, opts.Today.IsZero())
	assert.False(t, opts.Debug)
}

func TestEngineFlagsPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roadmap.toml")
	require.NoError(t, os.WriteFile(path, []byte("timeScale = \"daily\"\nzoomLevel = 2.0\ngroupBy = \"area\"\n"), 0o644))

	f, cmd := parseEngineFlags(t,
		"--settings", path,
		"--zoom", "0.5",
		"--collapse", "E-1,group:Backend",
		"--scroll-top", "120",
		"--today", "2024-01-10",
		"--debug",
	)
	opts, err := f.options(cmd)
	require.NoError(t, err)

	assert.Equal(t, "daily", opts.Settings.TimeScale, "file overrides default")
	assert.Equal(t, 0.5, opts.Settings.ZoomLevel, "flag overrides file")
	assert.Equal(t, "area", opts.Settings.GroupBy)
	assert.Equal(t, []string{"E-1", "group:Backend"}, opts.Settings.CollapsedKeys)
	assert.Equal(t, 120.0, opts.Viewport.ScrollTop)
	assert.Equal(t, calendar.Date(2024, 1, 10), opts.Today)
	assert.True(t, opts.Debug)
}

func TestEngineFlagsFindsSettingsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "roadmap.yaml"), []byte("rowDensity: compact\n"), 0o644))
	t.Chdir(dir)

	f, cmd := parseEngineFlags(t)
	s, err := f.settings(cmd)
	require.NoError(t, err)
	assert.Equal(t, "compact", s.RowDensity)
}

func TestEngineFlagsErrors(t *testing.T) {
	t.Chdir(t.TempDir())

	f, cmd := parseEngineFlags(t, "--today", "10/01/2024")
	_, err := f.options(cmd)
	assert.ErrorContains(t, err, "--today")

	f, cmd = parseEngineFlags(t, "--settings", "missing.toml")
	_, err = f.options(cmd)
	assert.Error(t, err)
}
