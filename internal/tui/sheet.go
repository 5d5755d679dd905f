package tui

import (
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"github.com/colonyops/actionsheet/internal/core/config"
	"github.com/colonyops/actionsheet/internal/core/sheet"
	"github.com/colonyops/actionsheet/internal/core/styles"
)

// Layer z-order, bottom to top.
const (
	zBackground = 0
	zScrim      = 10
	zBlur       = 20
	zOverlay    = 21
	zRows       = 22
)

const (
	hitPanel  = "panel"
	rowPrefix = "row:"
)

// SheetOpts configures a Sheet.
type SheetOpts struct {
	Title    string
	Actions  *sheet.Actions
	Geometry config.Geometry
	Timing   config.Timing
	Blur     bool
	KeyMap   *KeyMap
	Observer sheet.Observer
	Logger   zerolog.Logger

	// Now overrides the animation clock.
	Now func() time.Time
}

// Sheet is a bubbletea component presenting an action sheet over the
// parent's view. It is presented on the first WindowSizeMsg.
type Sheet struct {
	machine  *sheet.Machine
	router   *sheet.Router
	animator *tickAnimator
	host     *screenHost
	queue    *cmdQueue
	keys     KeyMap
	geometry config.Geometry
	log      zerolog.Logger

	background    string
	width, height int
	grid          Grid
	highlight     int
	frost         *frostLayer
	scroll        int
	err           error
}

// NewSheet creates an idle sheet.
func NewSheet(opts SheetOpts) *Sheet {
	s := &Sheet{
		queue:    &cmdQueue{},
		keys:     DefaultKeyMap(),
		geometry: opts.Geometry,
		log:      opts.Logger,
	}
	if opts.KeyMap != nil {
		s.keys = *opts.KeyMap
	}

	s.animator = newTickAnimator(s.queue, opts.Timing.Frame, opts.Now)
	s.host = newScreenHost(s.queue, func() sheet.Outcome { return s.machine.Outcome() })

	mopts := sheet.MachineOpts{
		Title:    opts.Title,
		Actions:  opts.Actions,
		Measurer: CellMeasurer{},
		Timing:   opts.Timing.SheetTiming(),
		Animator: s.animator,
		Host:     s.host,
		Observer: opts.Observer,
		Logger:   opts.Logger,
	}
	if opts.Blur {
		mopts.Capturer = textCapturer{background: func() string { return s.background }}
		mopts.Blur = frostRenderer{queue: s.queue}
		mopts.Splicer = s
	}

	s.machine = sheet.NewMachine(mopts)
	s.router = sheet.NewRouter(s.machine, opts.Logger)
	return s
}

// Machine returns the underlying state machine.
func (s *Sheet) Machine() *sheet.Machine { return s.machine }

// State returns the presentation state.
func (s *Sheet) State() sheet.State { return s.machine.State() }

// Outcome returns how the sheet was dismissed.
func (s *Sheet) Outcome() sheet.Outcome { return s.machine.Outcome() }

// Err returns the last presentation or routing error.
func (s *Sheet) Err() error { return s.err }

// Highlight returns the keyboard highlighted row.
func (s *Sheet) Highlight() int { return s.highlight }

// Grid returns the cell geometry of the presented sheet.
func (s *Sheet) Grid() Grid { return s.grid }

// SetBackground sets the content captured for the backdrop blur. It must be
// set before the sheet is presented.
func (s *Sheet) SetBackground(bg string) {
	s.background = bg
}

// SpliceBlur implements sheet.Splicer.
func (s *Sheet) SpliceBlur(layer sheet.Layer) {
	if fl, ok := layer.(frostLayer); ok {
		s.frost = &fl
	}
}

func (s *Sheet) Init() tea.Cmd {
	return nil
}

func (s *Sheet) Update(msg tea.Msg) (*Sheet, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		if s.machine.State() == sheet.StateIdle {
			s.present()
		} else {
			s.scroll = min(s.scroll, s.maxScroll())
			s.reveal(s.highlight)
		}
	case animationFrameMsg:
		s.queue.push(s.animator.Frame(msg))
	case animationDoneMsg:
		s.machine.AnimationFinished(msg.tag)
	case surfaceDismissedMsg:
		if msg.id == s.machine.Surface().ID {
			s.machine.SurfaceDismissed()
		}
	case blurDoneMsg:
		s.machine.BlurRendered(msg.layer)
	case tea.KeyPressMsg:
		s.handleKey(msg)
	case tea.MouseClickMsg:
		s.handleMouse(msg)
	}
	return s, s.queue.drain()
}

func (s *Sheet) present() {
	if s.width <= 0 || s.height <= 0 {
		return
	}

	if err := s.machine.SetConstraints(s.geometry.Constraints(s.width)); err != nil {
		s.fail(err)
		return
	}
	if err := s.machine.Present(sheet.NewSurface(float64(s.width), float64(s.height))); err != nil {
		s.fail(err)
		return
	}

	s.grid = NewGrid(s.machine.Layout())
	// A panel taller than the screen starts with its top on screen.
	s.scroll = s.maxScroll()
	s.log.Debug().
		Int("rows", len(s.grid.Rows)).
		Int("total", s.grid.Total).
		Int("width", s.grid.Width).
		Msg("sheet presented")
}

func (s *Sheet) fail(err error) {
	s.err = err
	s.log.Error().Err(err).Msg("present sheet")
	s.queue.push(func() tea.Msg { return SheetClosedMsg{Outcome: s.machine.Outcome(), Err: err} })
}

func (s *Sheet) route(ev sheet.Event) {
	if err := s.router.Route(ev); err != nil {
		s.err = err
	}
}

func (s *Sheet) handleKey(msg tea.KeyPressMsg) {
	n := s.machine.Actions().Len()

	switch {
	case key.Matches(msg, s.keys.Up):
		if s.highlight > 0 {
			s.highlight--
			s.reveal(s.highlight)
		}
	case key.Matches(msg, s.keys.Down):
		if s.highlight < n-1 {
			s.highlight++
			s.reveal(s.highlight)
		}
	case key.Matches(msg, s.keys.Select):
		if n > 0 {
			s.route(sheet.RowTapped{Index: s.highlight})
		}
	case key.Matches(msg, s.keys.Cancel):
		s.route(sheet.ScrimTapped{})
	case key.Matches(msg, s.keys.Pick):
		if i, ok := digit(msg); ok && i < n && s.rowOnScreen(i) {
			s.highlight = i
			s.route(sheet.RowTapped{Index: i})
		}
	}
}

func (s *Sheet) handleMouse(msg tea.MouseClickMsg) {
	m := msg.Mouse()
	if m.Button != tea.MouseLeft {
		return
	}

	hit := s.hitTest(m.X, m.Y)
	switch {
	case hit.Empty():
		s.route(sheet.ScrimTapped{})
	case strings.HasPrefix(hit.ID(), rowPrefix):
		i, err := strconv.Atoi(strings.TrimPrefix(hit.ID(), rowPrefix))
		if err != nil {
			return
		}
		s.highlight = i
		s.route(sheet.RowTapped{Index: i})
	}
}

// hitTest resolves a screen cell against the panel layers as they are
// currently drawn. The panel backing is inert; rows report their index.
func (s *Sheet) hitTest(x, y int) lipgloss.LayerHit {
	return lipgloss.NewCompositor(s.panelLayers()...).Hit(x, y)
}

// restTop returns the screen line of the panel top once the enter animation
// has finished.
func (s *Sheet) restTop() int {
	return s.height - s.grid.Total + s.scroll
}

// maxScroll is how far a panel taller than the screen can be pushed down so
// that its top is visible.
func (s *Sheet) maxScroll() int {
	return max(s.grid.Total-s.height, 0)
}

// reveal scrolls a panel taller than the screen so that row i is fully
// visible.
func (s *Sheet) reveal(i int) {
	if i < 0 || i >= len(s.grid.Rows) {
		return
	}
	r := s.grid.Rows[i]
	top := s.restTop() + r.Y
	if top < 0 {
		s.scroll -= top
	} else if bottom := top + r.Height; bottom > s.height {
		s.scroll -= bottom - s.height
	}
	s.scroll = min(max(s.scroll, 0), s.maxScroll())
}

// rowOnScreen reports whether row i is fully visible at rest.
func (s *Sheet) rowOnScreen(i int) bool {
	if i < 0 || i >= len(s.grid.Rows) {
		return false
	}
	r := s.grid.Rows[i]
	top := s.restTop() + r.Y
	return top >= 0 && top+r.Height <= s.height
}

// panelOrigin returns the screen cell of the panel's top left corner. The
// animated position is scaled onto the grid so the panel rests exactly on
// the bottom edge, including after a resize.
func (s *Sheet) panelOrigin() (int, int) {
	x := max((s.width-s.grid.Width)/2, 0)
	rest := s.restTop()

	total := s.machine.Layout().TotalHeight
	if total <= 0 {
		return x, rest
	}
	slide := (s.animator.Y() - s.machine.VisibleY()) / total
	return x, rest + round(slide*float64(s.grid.Total))
}

// Overlay composites the sheet over background, which should fill the
// screen. The background is returned unchanged while nothing is drawn.
func (s *Sheet) Overlay(background string) string {
	panel := s.panelLayers()
	if panel == nil {
		return background
	}

	layers := []*lipgloss.Layer{lipgloss.NewLayer(background).Z(zBackground)}
	if s.machine.State().Shown() {
		scrim := styles.ScrimStyle.Render(ansi.Strip(background))
		layers = append(layers, lipgloss.NewLayer(scrim).Z(zScrim))
	}
	layers = append(layers, panel...)

	return lipgloss.NewCompositor(layers...).Render()
}

// panelLayers returns the backing, title and row layers clipped to the
// screen. Only the backing and the rows carry hit IDs. It returns nil while
// the panel is not drawn.
func (s *Sheet) panelLayers() []*lipgloss.Layer {
	if !s.host.Drawn() || s.width <= 0 || s.height <= 0 || s.grid.Width <= 0 || s.grid.Total <= 0 {
		return nil
	}

	px, py := s.panelOrigin()
	w := s.grid.Width
	layers := make([]*lipgloss.Layer, 0, len(s.grid.Rows)+2)
	add := func(content string, y, z int, id string) {
		if l := s.clip(content, px, y, z); l != nil {
			layers = append(layers, l.ID(id))
		}
	}

	add(s.renderBlur(px, w, s.grid.Total), py, zBlur, hitPanel)

	if s.grid.TitleHeight > 0 {
		title := styles.SheetTitleStyle.
			Width(w).
			Height(s.grid.TitleHeight).
			AlignVertical(lipgloss.Center).
			Render(s.machine.Title())
		add(title, py, zOverlay, "")
	}

	highlightOn := s.machine.State() == sheet.StateVisible
	for i, a := range s.machine.Actions().All() {
		r := s.grid.Rows[i]
		row := styles.RowStyle(a.Role, highlightOn && i == s.highlight).
			Width(w).
			Height(r.Height).
			AlignVertical(lipgloss.Center).
			Render(ansi.Truncate(a.Title, w, "…"))
		add(row, py+r.Y, zRows, rowPrefix+strconv.Itoa(i))
	}

	return layers
}

// clip places content at (x, y) keeping only the lines that fall on screen.
// It returns nil when nothing is visible.
func (s *Sheet) clip(content string, x, y, z int) *lipgloss.Layer {
	lines := strings.Split(content, "\n")
	if y < 0 {
		if -y >= len(lines) {
			return nil
		}
		lines = lines[-y:]
		y = 0
	}
	if n := s.height - y; n < len(lines) {
		if n <= 0 {
			return nil
		}
		lines = lines[:n]
	}
	return lipgloss.NewLayer(strings.Join(lines, "\n")).X(x).Y(y).Z(z)
}

// renderBlur returns the panel backing: the frosted backdrop once spliced,
// a flat fill until then.
func (s *Sheet) renderBlur(px, w, height int) string {
	lines := make([]string, height)
	for i := range height {
		if s.frost != nil && i < len(s.frost.lines) {
			lines[i] = ansi.Cut(s.frost.lines[i], px, px+w)
			if pad := w - ansi.StringWidth(lines[i]); pad > 0 {
				lines[i] += styles.SheetGapStyle.Render(strings.Repeat(" ", pad))
			}
			continue
		}
		lines[i] = styles.SheetGapStyle.Render(strings.Repeat(" ", w))
	}
	return strings.Join(lines, "\n")
}
