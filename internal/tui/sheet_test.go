package tui

import (
	"strconv"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/actionsheet/internal/core/config"
	"github.com/colonyops/actionsheet/internal/core/sheet"
	"github.com/colonyops/actionsheet/pkg/tuitest"
)

const (
	testWidth  = 40
	testHeight = 12
)

// steppingClock advances on every read so animations finish after a few
// frames.
type steppingClock struct {
	now  time.Time
	step time.Duration
}

func (c *steppingClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

type sheetFixture struct {
	sheet *Sheet
	fired []string
}

func newSheetFixture(t *testing.T, title string, blur bool, specs ...config.ActionSpec) *sheetFixture {
	t.Helper()

	f := &sheetFixture{}
	spec := config.SheetSpec{Title: title, Actions: specs}
	list, err := spec.Build(func(a config.ActionSpec) func() {
		return func() { f.fired = append(f.fired, a.Title) }
	})
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	clock := &steppingClock{now: time.Unix(0, 0), step: 50 * time.Millisecond}
	f.sheet = NewSheet(SheetOpts{
		Title:    title,
		Actions:  list,
		Geometry: cfg.Geometry,
		Timing:   cfg.Timing,
		Blur:     blur,
		Logger:   zerolog.Nop(),
		Now:      clock.Now,
	})
	f.sheet.SetBackground(background(testWidth, testHeight))
	return f
}

func background(w, h int) string {
	lines := make([]string, h)
	for i := range lines {
		lines[i] = strings.Repeat("x", w)
	}
	return strings.Join(lines, "\n")
}

// pump runs commands and feeds their messages back into the sheet until
// nothing is left. Messages addressed to the parent are returned.
func pump(t *testing.T, s *Sheet, cmd tea.Cmd) []tea.Msg {
	t.Helper()

	var parent []tea.Msg
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 500, "update loop did not settle")

		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case SheetClosedMsg:
			parent = append(parent, msg)
		default:
			_, c := s.Update(msg)
			queue = append(queue, c)
		}
	}
	return parent
}

func (f *sheetFixture) present(t *testing.T) {
	t.Helper()
	_, cmd := f.sheet.Update(tuitest.WindowSize(testWidth, testHeight))
	require.Equal(t, sheet.StateVisible, f.sheet.State())
	assert.Empty(t, pump(t, f.sheet, cmd))
}

func (f *sheetFixture) send(t *testing.T, msg tea.Msg) []tea.Msg {
	t.Helper()
	_, cmd := f.sheet.Update(msg)
	return pump(t, f.sheet, cmd)
}

func shareActions() []config.ActionSpec {
	return []config.ActionSpec{
		{Title: "Delete", Role: "destructive"},
		{Title: "Copy", Value: "cp"},
		{Title: "Cancel", Role: "cancel"},
	}
}

func closed(t *testing.T, msgs []tea.Msg) SheetClosedMsg {
	t.Helper()
	require.Len(t, msgs, 1)
	msg, ok := msgs[0].(SheetClosedMsg)
	require.True(t, ok)
	return msg
}

func TestSheet_PresentsOnWindowSize(t *testing.T) {
	f := newSheetFixture(t, "Share", true, shareActions()...)
	assert.Equal(t, sheet.StateIdle, f.sheet.State())

	f.present(t)

	g := f.sheet.Grid()
	assert.Equal(t, testWidth, g.Width)
	assert.Equal(t, 8, g.Total)
	assert.False(t, f.sheet.animator.Running())
	assert.InDelta(t, f.sheet.Machine().VisibleY(), f.sheet.animator.Y(), 1e-9)
	assert.NotNil(t, f.sheet.frost, "blur spliced")

	_, y := f.sheet.panelOrigin()
	assert.Equal(t, testHeight-g.Total, y)
}

func TestSheet_Overlay(t *testing.T) {
	f := newSheetFixture(t, "Share", false, shareActions()...)
	bg := background(testWidth, testHeight)
	assert.Equal(t, bg, f.sheet.Overlay(bg), "nothing drawn before presenting")

	f.present(t)

	lines := tuitest.Lines(f.sheet.Overlay(bg))
	require.Len(t, lines, testHeight)

	top := testHeight - f.sheet.Grid().Total
	assert.Equal(t, strings.Repeat("x", testWidth), lines[top-1], "background above the panel")
	assert.Contains(t, lines[top+1], "Share")
	assert.Contains(t, lines[top+4], "Delete")
	assert.Contains(t, lines[top+5], "Copy")
	assert.Equal(t, "", strings.TrimSpace(lines[top+6]), "gap before the last row")
	assert.Contains(t, lines[top+7], "Cancel")
}

func TestSheet_EnterSelectsHighlightedRow(t *testing.T) {
	f := newSheetFixture(t, "", false, shareActions()...)
	f.present(t)

	f.send(t, tuitest.KeyDown())
	f.send(t, tuitest.KeyDown())
	f.send(t, tuitest.KeyDown())
	f.send(t, tuitest.KeyUp())
	assert.Equal(t, 1, f.sheet.Highlight())

	msg := closed(t, f.send(t, tuitest.KeyEnter()))

	assert.Equal(t, []string{"Copy"}, f.fired)
	assert.Equal(t, sheet.OutcomeSelected, msg.Outcome.Kind)
	assert.Equal(t, 1, msg.Outcome.Index)
	assert.Equal(t, "cp", msg.Outcome.Action.Payload())
	assert.Equal(t, sheet.StateDismissed, f.sheet.State())

	bg := background(testWidth, testHeight)
	assert.Equal(t, bg, f.sheet.Overlay(bg), "nothing drawn after release")

	assert.Empty(t, f.send(t, tuitest.KeyEnter()))
	assert.Equal(t, []string{"Copy"}, f.fired, "later input fires nothing")
}

func TestSheet_EscapeFiresCancelAfterDismissal(t *testing.T) {
	f := newSheetFixture(t, "", false, shareActions()...)
	f.present(t)

	_, cmd := f.sheet.Update(tuitest.KeyEsc())
	assert.Equal(t, sheet.StateDismissing, f.sheet.State())
	assert.Empty(t, f.fired, "cancel waits for the surface to go away")

	msg := closed(t, pump(t, f.sheet, cmd))
	assert.Equal(t, []string{"Cancel"}, f.fired)
	assert.Equal(t, sheet.OutcomeCancelled, msg.Outcome.Kind)
	assert.True(t, msg.Outcome.Fired)
}

func TestSheet_EscapeWithoutCancelAction(t *testing.T) {
	f := newSheetFixture(t, "", false,
		config.ActionSpec{Title: "Cancel", Role: "cancel"},
		config.ActionSpec{Title: "Copy"},
	)
	f.present(t)

	msg := closed(t, f.send(t, tuitest.KeyPress('q')))
	assert.Empty(t, f.fired)
	assert.Equal(t, sheet.OutcomeDismissed, msg.Outcome.Kind)
}

func TestSheet_DigitPicksRow(t *testing.T) {
	f := newSheetFixture(t, "", false, shareActions()...)
	f.present(t)

	assert.Empty(t, f.send(t, tuitest.KeyPress('9')), "digits past the last row are ignored")
	assert.Equal(t, sheet.StateVisible, f.sheet.State())

	closed(t, f.send(t, tuitest.KeyPress('1')))
	assert.Equal(t, []string{"Delete"}, f.fired)
}

func TestSheet_MouseClicks(t *testing.T) {
	f := newSheetFixture(t, "Share", false, shareActions()...)
	f.present(t)

	x, y := f.sheet.panelOrigin()
	g := f.sheet.Grid()

	assert.Empty(t, f.send(t, tuitest.Click(x+1, y)), "title block is inert")
	assert.Empty(t, f.send(t, tuitest.RightClick(0, 0)))
	assert.Equal(t, sheet.StateVisible, f.sheet.State())

	closed(t, f.send(t, tuitest.Click(x+1, y+g.Rows[1].Y)))
	assert.Equal(t, []string{"Copy"}, f.fired)
}

func TestSheet_ClickOutsideIsScrimTap(t *testing.T) {
	f := newSheetFixture(t, "", false, shareActions()...)
	f.present(t)

	msg := closed(t, f.send(t, tuitest.Click(0, 0)))
	assert.Equal(t, sheet.OutcomeCancelled, msg.Outcome.Kind)
	assert.Equal(t, []string{"Cancel"}, f.fired)
}

func TestSheet_LateBlurIsDropped(t *testing.T) {
	f := newSheetFixture(t, "", true, shareActions()...)

	// Present without running the blur command.
	_, _ = f.sheet.Update(tuitest.WindowSize(testWidth, testHeight))
	_, _ = f.sheet.Update(tuitest.KeyEsc())
	require.Equal(t, sheet.StateDismissing, f.sheet.State())

	f.sheet.Update(blurDoneMsg{layer: frostLayer{}})
	assert.Nil(t, f.sheet.frost)
}

func TestSheet_PresentFailure(t *testing.T) {
	f := newSheetFixture(t, "", false, shareActions()...)
	f.sheet.geometry.RowHeight = 0

	_, cmd := f.sheet.Update(tuitest.WindowSize(testWidth, testHeight))
	msg := closed(t, pump(t, f.sheet, cmd))

	require.ErrorIs(t, msg.Err, sheet.ErrInvalidConstraints)
	require.ErrorIs(t, f.sheet.Err(), sheet.ErrInvalidConstraints)
	assert.Equal(t, sheet.StateIdle, f.sheet.State())
}

func TestSheet_MaxWidthCentersPanel(t *testing.T) {
	f := newSheetFixture(t, "", false, shareActions()...)
	f.sheet.geometry.MaxWidth = 20
	f.present(t)

	x, _ := f.sheet.panelOrigin()
	assert.Equal(t, 20, f.sheet.Grid().Width)
	assert.Equal(t, 10, x)
}

func TestSheet_HitTestFollowsDrawnLayers(t *testing.T) {
	f := newSheetFixture(t, "Share", false, shareActions()...)
	assert.True(t, f.sheet.hitTest(1, testHeight-1).Empty(), "nothing drawn before presenting")

	f.present(t)

	x, y := f.sheet.panelOrigin()
	g := f.sheet.Grid()

	assert.Equal(t, hitPanel, f.sheet.hitTest(x, y).ID(), "title falls through to the backing")
	assert.Equal(t, "row:0", f.sheet.hitTest(x+3, y+g.Rows[0].Y).ID())
	assert.Equal(t, "row:1", f.sheet.hitTest(x+g.Width-1, y+g.Rows[1].Y).ID())
	assert.Equal(t, hitPanel, f.sheet.hitTest(x, y+g.Rows[2].Y-1).ID(), "gap before the last row")
	assert.Equal(t, "row:2", f.sheet.hitTest(x, y+g.Rows[2].Y).ID())

	assert.True(t, f.sheet.hitTest(x, y-1).Empty(), "above the panel")
	assert.True(t, f.sheet.hitTest(x+g.Width, y+g.Rows[0].Y).Empty(), "right edge is exclusive")
}

func TestSheet_TallerThanScreen(t *testing.T) {
	specs := make([]config.ActionSpec, 10)
	for i := range specs {
		specs[i] = config.ActionSpec{Title: "Item " + strconv.Itoa(i+1)}
	}
	f := newSheetFixture(t, "Share", false, specs...)
	f.present(t)

	g := f.sheet.Grid()
	require.Greater(t, g.Total, testHeight)

	_, y := f.sheet.panelOrigin()
	assert.Equal(t, 0, y, "panel top starts on screen")

	lines := tuitest.Lines(f.sheet.Overlay(background(testWidth, testHeight)))
	require.Len(t, lines, testHeight, "clipped panel never grows the view")
	assert.Contains(t, strings.Join(lines[:g.TitleHeight], "\n"), "Share")
	assert.NotContains(t, strings.Join(lines, "\n"), "Item 10")

	assert.False(t, f.sheet.rowOnScreen(9))
	assert.Empty(t, f.send(t, tuitest.KeyPress('9')), "rows below the screen cannot be picked")
	assert.Equal(t, sheet.StateVisible, f.sheet.State())
	assert.True(t, f.sheet.hitTest(1, testHeight).Empty())

	for range 9 {
		f.send(t, tuitest.KeyDown())
	}
	require.Equal(t, 9, f.sheet.Highlight())
	assert.True(t, f.sheet.rowOnScreen(9), "highlight scrolls into view")

	_, y = f.sheet.panelOrigin()
	assert.Less(t, y, 0)

	lines = tuitest.Lines(f.sheet.Overlay(background(testWidth, testHeight)))
	require.Len(t, lines, testHeight)
	assert.Contains(t, lines[y+g.Rows[9].Y], "Item 10")
	assert.Equal(t, "row:9", f.sheet.hitTest(1, y+g.Rows[9].Y).ID())

	closed(t, f.send(t, tuitest.KeyPress('9')))
	assert.Equal(t, []string{"Item 9"}, f.fired)
}
