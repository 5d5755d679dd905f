package config

import (
	"fmt"
	"strings"

	"github.com/colonyops/actionsheet/internal/core/sheet"
)

// ParseActionSpec parses the command line form of an action:
//
//	[role:]title[=value]
//
// The role prefix is only recognised for known role names, so titles may
// contain colons ("Open: README").
func ParseActionSpec(s string) (ActionSpec, error) {
	var spec ActionSpec

	rest := s
	if prefix, after, ok := strings.Cut(s, ":"); ok {
		if _, err := sheet.ParseRole(prefix); err == nil && prefix != "" {
			spec.Role = strings.ToLower(strings.TrimSpace(prefix))
			rest = after
		}
	}

	title, value, _ := strings.Cut(rest, "=")
	spec.Title = strings.TrimSpace(title)
	spec.Value = strings.TrimSpace(value)

	if spec.Title == "" {
		return ActionSpec{}, fmt.Errorf("action %q: title is required", s)
	}
	return spec, nil
}

// Action builds the sheet action described by a.
func (a ActionSpec) Action(handler func()) (*sheet.Action, error) {
	role, err := sheet.ParseRole(a.Role)
	if err != nil {
		return nil, fmt.Errorf("action %q: %w", a.Title, err)
	}
	return sheet.NewAction(a.Title, role, handler).WithValue(a.Value), nil
}

// Build converts every action of the sheet. The handler factory is called
// once per action.
func (s SheetSpec) Build(handler func(ActionSpec) func()) (*sheet.Actions, error) {
	actions := sheet.NewActions()
	for _, spec := range s.Actions {
		var h func()
		if handler != nil {
			h = handler(spec)
		}
		a, err := spec.Action(h)
		if err != nil {
			return nil, err
		}
		if err := actions.Add(a); err != nil {
			return nil, err
		}
	}
	return actions, nil
}
