// Package eventbus provides a typed publish/subscribe event bus for
// reporting sheet lifecycle activity to the rest of actionsheet.
package eventbus

import (
	"github.com/colonyops/actionsheet/internal/core/sheet"
)

// Event names a bus topic.
type Event string

const (
	EventActionSelected  Event = "action.selected"
	EventSheetDismissed  Event = "sheet.dismissed"
	EventSheetPresented  Event = "sheet.presented"
	EventSheetTransition Event = "sheet.transition"
)

// Events lists every event type with its payload, sorted A-Z.
var Events = map[Event]any{
	EventActionSelected:  ActionSelectedPayload{},
	EventSheetDismissed:  SheetDismissedPayload{},
	EventSheetPresented:  SheetPresentedPayload{},
	EventSheetTransition: SheetTransitionPayload{},
}

// SheetPresentedPayload is emitted when a sheet becomes visible.
type SheetPresentedPayload struct {
	Surface sheet.Surface
	Title   string
	Actions int
	Layout  sheet.Layout
}

// SheetTransitionPayload is emitted on every state change.
type SheetTransitionPayload struct {
	Transition sheet.Transition
}

// ActionSelectedPayload is emitted when an action handler has fired.
type ActionSelectedPayload struct {
	Surface sheet.Surface
	Index   int
	Title   string
	Value   string
	Role    sheet.Role
}

// SheetDismissedPayload is emitted when a sheet reaches its terminal state.
type SheetDismissedPayload struct {
	Surface sheet.Surface
	Outcome sheet.Outcome
}
