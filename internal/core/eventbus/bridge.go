package eventbus

import "github.com/colonyops/actionsheet/internal/core/sheet"

// SheetBridge republishes machine transitions as bus events.
type SheetBridge struct {
	bus     *EventBus
	machine *sheet.Machine
}

// NewSheetBridge constructs a bridge. Bind must be called with the machine
// before it is presented.
func NewSheetBridge(bus *EventBus) *SheetBridge {
	return &SheetBridge{bus: bus}
}

// Bind attaches the machine whose state is read when publishing.
func (b *SheetBridge) Bind(m *sheet.Machine) {
	b.machine = m
}

// Observe is a sheet.Observer.
func (b *SheetBridge) Observe(t sheet.Transition) {
	if b == nil || b.bus == nil {
		return
	}

	b.bus.PublishSheetTransition(SheetTransitionPayload{Transition: t})

	if b.machine == nil {
		return
	}

	switch t.To {
	case sheet.StateVisible:
		b.bus.PublishSheetPresented(SheetPresentedPayload{
			Surface: t.Surface,
			Title:   b.machine.Title(),
			Actions: b.machine.Actions().Len(),
			Layout:  b.machine.Layout(),
		})
	case sheet.StateDismissed:
		out := b.machine.Outcome()
		if out.Fired && out.Action != nil {
			b.bus.PublishActionSelected(ActionSelectedPayload{
				Surface: t.Surface,
				Index:   out.Index,
				Title:   out.Action.Title,
				Value:   out.Action.Payload(),
				Role:    out.Action.Role,
			})
		}
		b.bus.PublishSheetDismissed(SheetDismissedPayload{
			Surface: t.Surface,
			Outcome: out,
		})
	}
}
