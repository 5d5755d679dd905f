package sheet

import (
	"fmt"
	"strings"
	"sync"
)

// Role is the visual role of an action. Only RoleCancel affects behavior:
// the last action may be fired by a scrim tap when it is a cancel action.
type Role int

const (
	RoleDefault Role = iota
	RoleCancel
	RoleDestructive
)

func (r Role) String() string {
	switch r {
	case RoleCancel:
		return "cancel"
	case RoleDestructive:
		return "destructive"
	default:
		return "default"
	}
}

// ParseRole parses a role name. An empty string is RoleDefault.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return RoleDefault, nil
	case "cancel":
		return RoleCancel, nil
	case "destructive":
		return RoleDestructive, nil
	default:
		return RoleDefault, fmt.Errorf("unknown role %q (want default, cancel or destructive)", s)
	}
}

// Action is one selectable entry of the sheet.
type Action struct {
	Title string
	Role  Role
	// Value is an optional payload reported to callers. Empty means Title.
	Value string

	handler func()
	once    sync.Once
}

// NewAction creates an action. The handler may be nil.
func NewAction(title string, role Role, handler func()) *Action {
	return &Action{
		Title:   title,
		Role:    role,
		handler: handler,
	}
}

// WithValue sets the payload and returns the action for chaining.
func (a *Action) WithValue(v string) *Action {
	a.Value = v
	return a
}

// Payload returns Value, falling back to Title.
func (a *Action) Payload() string {
	if a.Value != "" {
		return a.Value
	}
	return a.Title
}

// Fire invokes the handler at most once over the lifetime of the action.
// It reports whether a handler actually ran.
func (a *Action) Fire() bool {
	ran := false
	a.once.Do(func() {
		if a.handler != nil {
			a.handler()
			ran = true
		}
	})
	return ran
}

// Actions is the ordered action list of a sheet. It accepts appends until
// it is sealed, which happens when the layout is computed.
type Actions struct {
	items  []*Action
	sealed bool
}

// NewActions creates a list holding the given actions in order.
func NewActions(actions ...*Action) *Actions {
	return &Actions{items: append([]*Action(nil), actions...)}
}

// Add appends an action. Nil actions are rejected.
func (l *Actions) Add(a *Action) error {
	if l.sealed {
		return ErrSealed
	}
	if a == nil {
		return fmt.Errorf("add action: nil action")
	}
	l.items = append(l.items, a)
	return nil
}

// Seal freezes the list.
func (l *Actions) Seal() { l.sealed = true }

// Sealed reports whether the list is frozen.
func (l *Actions) Sealed() bool { return l.sealed }

func (l *Actions) Len() int { return len(l.items) }

// At returns the action at index i, or nil when i is out of range.
func (l *Actions) At(i int) *Action {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// All returns a copy of the actions in presentation order.
func (l *Actions) All() []*Action {
	out := make([]*Action, len(l.items))
	copy(out, l.items)
	return out
}

// Last returns the final action or nil for an empty list.
func (l *Actions) Last() *Action {
	if len(l.items) == 0 {
		return nil
	}
	return l.items[len(l.items)-1]
}

// LastCancel returns the last action only if its role is RoleCancel.
// Cancel actions earlier in the list are never considered.
func (l *Actions) LastCancel() *Action {
	last := l.Last()
	if last == nil || last.Role != RoleCancel {
		return nil
	}
	return last
}
