package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/actionsheet/internal/core/sheet"
)

// App is a full screen program showing a single sheet over static
// background text. It quits once the sheet has closed.
type App struct {
	sheet       *Sheet
	content     string
	keys        KeyMap
	width       int
	height      int
	closed      bool
	interrupted bool
	outcome     sheet.Outcome
	err         error
}

// NewApp creates the program model.
func NewApp(s *Sheet, content string) *App {
	return &App{
		sheet:   s,
		content: strings.TrimRight(content, "\n"),
		keys:    s.keys,
		outcome: sheet.Outcome{Index: -1},
	}
}

func (a *App) Init() tea.Cmd {
	return a.sheet.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.sheet.SetBackground(a.background())
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			a.interrupted = true
			return a, tea.Quit
		}
	case SheetClosedMsg:
		a.closed = true
		a.outcome = msg.Outcome
		a.err = msg.Err
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.sheet, cmd = a.sheet.Update(msg)
	return a, cmd
}

func (a *App) View() tea.View {
	v := tea.NewView(a.sheet.Overlay(a.background()))
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// Closed reports whether the sheet finished its lifecycle.
func (a *App) Closed() bool { return a.closed }

// Interrupted reports whether the user quit with ctrl+c.
func (a *App) Interrupted() bool { return a.interrupted }

// Outcome returns the outcome delivered with the close message.
func (a *App) Outcome() sheet.Outcome { return a.outcome }

// Err returns the error that prevented the sheet from presenting.
func (a *App) Err() error { return a.err }

// background renders the help line and content cropped and padded to the
// screen.
func (a *App) background() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}

	lines := append([]string{a.keys.HelpLine()}, strings.Split(a.content, "\n")...)
	if len(lines) > a.height {
		lines = lines[:a.height]
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, a.width, "")
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, strings.Join(lines, "\n"))
}
