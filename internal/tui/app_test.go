package tui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/actionsheet/internal/core/config"
	"github.com/colonyops/actionsheet/internal/core/sheet"
	"github.com/colonyops/actionsheet/pkg/tuitest"
)

func newTestApp(t *testing.T) (*App, *[]string) {
	t.Helper()

	var fired []string
	spec := config.SheetSpec{Actions: shareActions()}
	list, err := spec.Build(func(a config.ActionSpec) func() {
		return func() { fired = append(fired, a.Title) }
	})
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	s := NewSheet(SheetOpts{
		Actions:  list,
		Geometry: cfg.Geometry,
		Timing:   config.Timing{Enter: 1, Exit: 1, Frame: 1},
		Blur:     true,
		Logger:   zerolog.Nop(),
	})
	return NewApp(s, "hello\nworld\n"), &fired
}

// runApp feeds msg and every resulting message back into the app until it
// quits or runs out of work. It reports whether tea.Quit was returned.
func runApp(t *testing.T, app *App, msg tea.Msg) bool {
	t.Helper()

	msgs := []tea.Msg{msg}
	for steps := 0; len(msgs) > 0; steps++ {
		require.Less(t, steps, 500, "app did not settle")

		next := msgs[0]
		msgs = msgs[1:]

		_, cmd := app.Update(next)
		cmds := []tea.Cmd{cmd}
		for len(cmds) > 0 {
			c := cmds[0]
			cmds = cmds[1:]
			if c == nil {
				continue
			}
			switch m := c().(type) {
			case nil:
			case tea.QuitMsg:
				return true
			case tea.BatchMsg:
				cmds = append(cmds, m...)
			default:
				msgs = append(msgs, m)
			}
		}
	}
	return false
}

func TestApp_SelectAndQuit(t *testing.T) {
	app, fired := newTestApp(t)
	assert.Nil(t, app.Init())

	assert.False(t, runApp(t, app, tuitest.WindowSize(30, 10)))
	assert.Equal(t, sheet.StateVisible, app.sheet.State())

	view := tuitest.Lines(app.View().Content)
	require.Len(t, view, 10)
	assert.Contains(t, view[0], "↑/k up")
	assert.Contains(t, view[1], "hello")
	assert.Contains(t, view[6], "Delete")

	assert.True(t, runApp(t, app, tuitest.KeyPress('2')))
	assert.True(t, app.Closed())
	assert.False(t, app.Interrupted())
	assert.NoError(t, app.Err())
	assert.Equal(t, sheet.OutcomeSelected, app.Outcome().Kind)
	assert.Equal(t, []string{"Copy"}, *fired)
}

func TestApp_CtrlC(t *testing.T) {
	app, fired := newTestApp(t)
	runApp(t, app, tuitest.WindowSize(30, 10))

	quit := runApp(t, app, tea.KeyPressMsg(tea.Key{Code: 'c', Mod: tea.ModCtrl}))
	assert.True(t, quit)
	assert.True(t, app.Interrupted())
	assert.False(t, app.Closed())
	assert.Equal(t, -1, app.Outcome().Index)
	assert.Empty(t, *fired)
}

func TestApp_ViewModes(t *testing.T) {
	app, _ := newTestApp(t)
	v := app.View()
	assert.True(t, v.AltScreen)
	assert.Equal(t, tea.MouseModeCellMotion, v.MouseMode)
}
