package sheet

// State is the presentation lifecycle state of a sheet.
type State int

const (
	StateIdle State = iota
	StatePresenting
	StateVisible
	StateDismissing
	StateDismissed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePresenting:
		return "presenting"
	case StateVisible:
		return "visible"
	case StateDismissing:
		return "dismissing"
	case StateDismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

// Shown reports whether the panel is on screen or on its way in.
func (s State) Shown() bool {
	return s == StatePresenting || s == StateVisible
}

// Closing reports whether the sheet is tearing down or gone.
func (s State) Closing() bool {
	return s == StateDismissing || s == StateDismissed
}

// Transition describes a single state change.
type Transition struct {
	From    State
	To      State
	Surface Surface
}

// Observer is notified after every state change.
type Observer func(Transition)

// OutcomeKind classifies how a sheet was dismissed.
type OutcomeKind int

const (
	// OutcomePending means the sheet has not been dismissed yet.
	OutcomePending OutcomeKind = iota
	// OutcomeSelected means a row was tapped.
	OutcomeSelected
	// OutcomeCancelled means the scrim was tapped and the last action is a
	// cancel action whose handler is fired after teardown.
	OutcomeCancelled
	// OutcomeDismissed means the scrim was tapped and no handler is eligible.
	OutcomeDismissed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSelected:
		return "selected"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeDismissed:
		return "dismissed"
	default:
		return "pending"
	}
}

// Outcome records the dismissal decision taken by the machine.
type Outcome struct {
	Kind OutcomeKind
	// Index is the action chosen for the dismissal, -1 when none.
	Index  int
	Action *Action
	// Fired is set once the action's handler has run.
	Fired bool
}
