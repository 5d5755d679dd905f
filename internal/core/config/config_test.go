package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/actionsheet/internal/core/sheet"
	"github.com/colonyops/actionsheet/internal/core/styles"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, styles.DefaultTheme, cfg.Theme)
	assert.InDelta(t, 1.0, cfg.Geometry.RowHeight, 0)
	assert.InDelta(t, 0.5, cfg.Geometry.Padding, 0)
	assert.Equal(t, sheet.DefaultEnterDuration, cfg.Timing.Enter)
	assert.Equal(t, sheet.DefaultExitDuration, cfg.Timing.Exit)
	assert.True(t, cfg.Backdrop.BlurEnabled())
	assert.NotNil(t, cfg.Sheets)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Geometry, cfg.Geometry)
}

func TestLoad_ParsesSheets(t *testing.T) {
	path := writeConfig(t, `
theme: gruvbox
geometry:
  row_height: 2
  padding: 1
  max_width: 60
timing:
  enter: 250ms
  exit: 80ms
backdrop:
  blur: false
sheets:
  photo:
    title: Share photo
    actions:
      - title: Delete
        role: destructive
        value: rm
      - title: Copy
      - title: Cancel
        role: cancel
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.InDelta(t, 2.0, cfg.Geometry.RowHeight, 0)
	assert.InDelta(t, 1.0, cfg.Geometry.TitleFontSize, 0, "unset values take defaults")
	assert.Equal(t, 250*time.Millisecond, cfg.Timing.Enter)
	assert.Equal(t, 80*time.Millisecond, cfg.Timing.Exit)
	assert.Equal(t, 16*time.Millisecond, cfg.Timing.Frame)
	assert.False(t, cfg.Backdrop.BlurEnabled())

	spec, ok := cfg.Sheet("photo")
	require.True(t, ok)
	assert.Equal(t, "Share photo", spec.Title)
	require.Len(t, spec.Actions, 3)
	assert.Equal(t, "destructive", spec.Actions[0].Role)

	_, ok = cfg.Sheet("missing")
	assert.False(t, ok)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "geometry: [")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfig(t, `
theme: neon
geometry:
  padding: -1
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestGeometry_Constraints(t *testing.T) {
	g := DefaultConfig().Geometry

	c := g.Constraints(80)
	assert.InDelta(t, 80.0, c.AvailableWidth, 0)
	assert.InDelta(t, 1.0, c.RowHeight, 0)
	assert.InDelta(t, 0.5, c.Padding, 0)
	require.NoError(t, c.Validate())

	g.MaxWidth = 40
	assert.InDelta(t, 40.0, g.Constraints(80).AvailableWidth, 0)
	assert.InDelta(t, 30.0, g.Constraints(30).AvailableWidth, 0)
}

func TestTiming_SheetTiming(t *testing.T) {
	tm := Timing{Enter: time.Second, Exit: time.Millisecond}
	assert.Equal(t, sheet.Timing{Enter: time.Second, Exit: time.Millisecond}, tm.SheetTiming())
}

func TestRead_SkipsValidation(t *testing.T) {
	path := writeConfig(t, "theme: neon\n")

	cfg, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "neon", cfg.Theme)
	assert.Error(t, cfg.Validate())
}
