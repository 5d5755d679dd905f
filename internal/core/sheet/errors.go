package sheet

import "errors"

var (
	// ErrSealed is returned when an action is added after the layout was computed.
	ErrSealed = errors.New("action list is sealed")

	// ErrRowOutOfRange indicates a row event that does not match any rendered action.
	ErrRowOutOfRange = errors.New("row index out of range")

	// ErrInvalidTransition is returned when an operation is not legal in the current state.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrInvalidConstraints is returned by ComputeLayout for unusable constraints.
	ErrInvalidConstraints = errors.New("invalid layout constraints")

	// ErrLayoutInvariant is returned when a computed layout overlaps itself.
	ErrLayoutInvariant = errors.New("layout invariant violated")

	// ErrNoSurface indicates that there is no presenting surface to capture from.
	ErrNoSurface = errors.New("no presenting surface")

	// ErrCaptureFailed indicates that a backdrop capture produced no image.
	ErrCaptureFailed = errors.New("backdrop capture failed")
)
