package sheet

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Event is an interaction delivered to the sheet.
type Event interface {
	event()
}

// ScrimTapped is a tap outside the panel.
type ScrimTapped struct{}

// RowTapped is a tap on the row at Index.
type RowTapped struct {
	Index int
}

func (ScrimTapped) event() {}
func (RowTapped) event()   {}

// Router translates interaction events into machine transitions.
type Router struct {
	machine *Machine
	actions *Actions
	log     zerolog.Logger
}

// NewRouter creates a router for the machine and its action list.
func NewRouter(m *Machine, logger zerolog.Logger) *Router {
	return &Router{
		machine: m,
		actions: m.Actions(),
		log:     logger,
	}
}

// Route applies the event. Events outside the visible state are dropped.
// A row index that does not match the action list is an error and never
// dismisses the sheet.
func (r *Router) Route(ev Event) error {
	state := r.machine.State()
	if state != StateVisible {
		r.log.Debug().Str("state", state.String()).Str("event", fmt.Sprintf("%T", ev)).Msg("event dropped")
		return nil
	}

	switch e := ev.(type) {
	case ScrimTapped:
		r.machine.ScrimTapped()
		return nil
	case RowTapped:
		if e.Index < 0 || e.Index >= r.actions.Len() {
			err := fmt.Errorf("route row %d of %d: %w", e.Index, r.actions.Len(), ErrRowOutOfRange)
			r.log.Error().Err(err).Msg("row event does not match rendered rows")
			return err
		}
		if _, err := r.machine.RowTapped(e.Index); err != nil {
			return fmt.Errorf("route row %d: %w", e.Index, err)
		}
		return nil
	default:
		return fmt.Errorf("route: unsupported event %T", ev)
	}
}
