package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/actionsheet/internal/core/sheet"
)

type surfaceDismissedMsg struct {
	id string
}

// SheetClosedMsg is sent to the parent model once a sheet is torn down and
// its handler, if any, has fired. Err is set when the sheet could not be
// presented at all.
type SheetClosedMsg struct {
	Surface sheet.Surface
	Outcome sheet.Outcome
	Err     error
}

// screenHost shows the sheet over the parent view. Dismissal completes on
// the next update cycle.
type screenHost struct {
	queue   *cmdQueue
	outcome func() sheet.Outcome

	surface    sheet.Surface
	presented  bool
	dismissing bool
	released   bool
}

func newScreenHost(queue *cmdQueue, outcome func() sheet.Outcome) *screenHost {
	return &screenHost{queue: queue, outcome: outcome}
}

func (h *screenHost) PresentSurface(s sheet.Surface) {
	h.surface = s
	h.presented = true
}

func (h *screenHost) DismissSurface(s sheet.Surface) {
	h.dismissing = true
	id := s.ID
	h.queue.push(func() tea.Msg { return surfaceDismissedMsg{id: id} })
}

func (h *screenHost) ReleaseSurface(s sheet.Surface) {
	h.presented = false
	h.released = true

	var out sheet.Outcome
	if h.outcome != nil {
		out = h.outcome()
	}
	h.queue.push(func() tea.Msg { return SheetClosedMsg{Surface: s, Outcome: out} })
}

// Drawn reports whether the panel is on screen.
func (h *screenHost) Drawn() bool {
	return h.presented && !h.released
}
