package sheet

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Default slide durations. Exit is faster than entry.
const (
	DefaultEnterDuration = 300 * time.Millisecond
	DefaultExitDuration  = 100 * time.Millisecond
)

// AnimationTag identifies which slide an animation request belongs to.
type AnimationTag int

const (
	AnimationEnter AnimationTag = iota
	AnimationExit
)

func (t AnimationTag) String() string {
	if t == AnimationExit {
		return "exit"
	}
	return "enter"
}

// Animator moves the panel origin. Completion is reported back through
// Machine.AnimationFinished with the same tag.
type Animator interface {
	Animate(fromY, toY float64, d time.Duration, tag AnimationTag)
}

// Host shows and hides the surface hosting the sheet. Completion of
// DismissSurface is reported back through Machine.SurfaceDismissed.
type Host interface {
	PresentSurface(s Surface)
	DismissSurface(s Surface)
	ReleaseSurface(s Surface)
}

// Timing holds the slide durations.
type Timing struct {
	Enter time.Duration
	Exit  time.Duration
}

type dismissKind int

const (
	dismissNone dismissKind = iota
	dismissScrim
	dismissRow
)

// MachineOpts configures a Machine. Capturer, Blur and Splicer are optional;
// without all three the backdrop blur is skipped.
type MachineOpts struct {
	Title       string
	Actions     *Actions
	Constraints Constraints
	Measurer    TextMeasurer
	Timing      Timing
	Animator    Animator
	Host        Host

	Capturer Capturer
	Blur     BlurRenderer
	Splicer  Splicer

	Observer Observer
	Logger   zerolog.Logger
}

// Machine drives the presentation lifecycle of one sheet:
//
//	idle -> presenting -> visible -> dismissing -> dismissed
//
// All methods must be called from a single goroutine. Asynchronous work
// (animations, surface dismissal, blur) reports back through
// AnimationFinished, SurfaceDismissed and BlurRendered.
type Machine struct {
	title       string
	actions     *Actions
	constraints Constraints
	measurer    TextMeasurer
	timing      Timing
	animator    Animator
	host        Host
	backdrop    *Backdrop
	observer    Observer
	log         zerolog.Logger

	state   State
	surface Surface
	layout  Layout
	outcome Outcome

	kind             dismissKind
	exitDone         bool
	surfaceRequested bool
	surfaceDone      bool
}

// NewMachine creates an idle machine.
func NewMachine(opts MachineOpts) *Machine {
	if opts.Actions == nil {
		opts.Actions = NewActions()
	}
	if opts.Timing.Enter <= 0 {
		opts.Timing.Enter = DefaultEnterDuration
	}
	if opts.Timing.Exit <= 0 {
		opts.Timing.Exit = DefaultExitDuration
	}

	m := &Machine{
		title:       opts.Title,
		actions:     opts.Actions,
		constraints: opts.Constraints,
		measurer:    opts.Measurer,
		timing:      opts.Timing,
		animator:    opts.Animator,
		host:        opts.Host,
		observer:    opts.Observer,
		log:         opts.Logger,
		outcome:     Outcome{Index: -1},
	}

	if opts.Capturer != nil && opts.Blur != nil && opts.Splicer != nil {
		m.backdrop = NewBackdrop(opts.Capturer, opts.Blur, opts.Splicer, m, opts.Logger)
	}

	return m
}

// State returns the current lifecycle state.
func (m *Machine) State() State { return m.state }

// Layout returns the layout computed on Present. It is the zero Layout
// before that.
func (m *Machine) Layout() Layout { return m.layout }

// Surface returns the surface the sheet was presented on.
func (m *Machine) Surface() Surface { return m.surface }

// Actions returns the action list.
func (m *Machine) Actions() *Actions { return m.actions }

// Title returns the sheet title, empty when absent.
func (m *Machine) Title() string { return m.title }

// Timing returns the effective slide durations.
func (m *Machine) Timing() Timing { return m.timing }

// Outcome returns the dismissal decision.
func (m *Machine) Outcome() Outcome { return m.outcome }

// AddAction appends an action before presentation.
func (m *Machine) AddAction(a *Action) error {
	if err := m.actions.Add(a); err != nil {
		return fmt.Errorf("add action %q: %w", actionTitle(a), err)
	}
	return nil
}

// SetConstraints replaces the layout constraints. Only allowed while idle.
func (m *Machine) SetConstraints(c Constraints) error {
	if m.state != StateIdle {
		return fmt.Errorf("set constraints in %s: %w", m.state, ErrInvalidTransition)
	}
	m.constraints = c
	return nil
}

// VisibleY is the panel origin once fully slid in.
func (m *Machine) VisibleY() float64 {
	return m.surface.Height - m.layout.TotalHeight
}

// OffscreenY is the panel origin when hidden below the surface.
func (m *Machine) OffscreenY() float64 {
	return m.surface.Height
}

// Present computes the layout, shows the surface, starts the slide-in and
// captures the backdrop. The machine is Visible when Present returns.
func (m *Machine) Present(s Surface) error {
	if m.state != StateIdle {
		return fmt.Errorf("present from %s: %w", m.state, ErrInvalidTransition)
	}

	c := m.constraints
	if c.AvailableWidth <= 0 {
		c.AvailableWidth = s.Width
	}

	layout, err := ComputeLayout(m.title, m.actions.All(), c, m.measurer)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	m.actions.Seal()
	m.layout = layout
	m.surface = s

	m.transition(StatePresenting)

	if m.host != nil {
		m.host.PresentSurface(s)
	}
	if m.animator != nil {
		m.animator.Animate(m.OffscreenY(), m.VisibleY(), m.timing.Enter, AnimationEnter)
	}
	if m.backdrop != nil {
		m.backdrop.Begin(s, layout.TotalHeight)
	}

	// Taps are legal while the panel is still sliding in.
	m.transition(StateVisible)
	return nil
}

// ScrimTapped dismisses the sheet. The handler of the last action fires
// after the surface is gone, and only when that action is a cancel action.
// Returns false when the tap was ignored.
func (m *Machine) ScrimTapped() bool {
	if m.state != StateVisible {
		m.log.Debug().Str("state", m.state.String()).Msg("scrim tap ignored")
		return false
	}

	m.kind = dismissScrim
	if cancel := m.actions.LastCancel(); cancel != nil {
		m.outcome = Outcome{Kind: OutcomeCancelled, Index: m.actions.Len() - 1, Action: cancel}
	} else {
		m.outcome = Outcome{Kind: OutcomeDismissed, Index: -1}
	}

	m.transition(StateDismissing)
	m.animateOut()
	return true
}

// RowTapped selects the action at index i. Its handler fires immediately,
// before the surface is dismissed and before the slide-out completes.
// Returns false when the tap was ignored.
func (m *Machine) RowTapped(i int) (bool, error) {
	if m.state != StateVisible {
		m.log.Debug().Str("state", m.state.String()).Int("row", i).Msg("row tap ignored")
		return false, nil
	}

	action := m.actions.At(i)
	if action == nil {
		return false, fmt.Errorf("row %d of %d: %w", i, m.actions.Len(), ErrRowOutOfRange)
	}

	m.kind = dismissRow
	m.outcome = Outcome{Kind: OutcomeSelected, Index: i, Action: action}
	m.transition(StateDismissing)

	m.outcome.Fired = action.Fire()
	m.log.Debug().Int("row", i).Str("action", action.Title).Bool("fired", m.outcome.Fired).Msg("action selected")

	m.dismissSurface()
	m.animateOut()
	return true, nil
}

// AnimationFinished reports completion of an animation requested through
// the Animator.
func (m *Machine) AnimationFinished(tag AnimationTag) {
	if tag != AnimationExit {
		return
	}
	if m.state != StateDismissing || m.exitDone {
		return
	}

	m.exitDone = true
	if m.kind == dismissScrim {
		m.dismissSurface()
	}
	m.maybeFinish()
}

// SurfaceDismissed reports completion of Host.DismissSurface.
func (m *Machine) SurfaceDismissed() {
	if m.state != StateDismissing || !m.surfaceRequested || m.surfaceDone {
		return
	}

	m.surfaceDone = true
	if m.kind == dismissScrim && m.outcome.Action != nil {
		m.outcome.Fired = m.outcome.Action.Fire()
		m.log.Debug().Str("action", m.outcome.Action.Title).Bool("fired", m.outcome.Fired).Msg("cancel action fired")
	}
	m.maybeFinish()
}

// BlurRendered reports completion of a blur render pass. It returns true
// when the layer was spliced behind the rows.
func (m *Machine) BlurRendered(layer Layer) bool {
	if m.backdrop == nil {
		return false
	}
	return m.backdrop.BlurRendered(layer)
}

func (m *Machine) animateOut() {
	if m.animator == nil {
		m.AnimationFinished(AnimationExit)
		return
	}
	m.animator.Animate(m.VisibleY(), m.OffscreenY(), m.timing.Exit, AnimationExit)
}

func (m *Machine) dismissSurface() {
	if m.surfaceRequested {
		return
	}
	m.surfaceRequested = true
	if m.host == nil {
		m.SurfaceDismissed()
		return
	}
	m.host.DismissSurface(m.surface)
}

func (m *Machine) maybeFinish() {
	if m.state != StateDismissing || !m.exitDone || !m.surfaceDone {
		return
	}
	m.transition(StateDismissed)
	if m.host != nil {
		m.host.ReleaseSurface(m.surface)
	}
}

func (m *Machine) transition(to State) {
	from := m.state
	m.state = to
	m.log.Debug().
		Str("from", from.String()).
		Str("to", to.String()).
		Str("surface", m.surface.ID).
		Msg("sheet transition")
	if m.observer != nil {
		m.observer(Transition{From: from, To: to, Surface: m.surface})
	}
}

func actionTitle(a *Action) string {
	if a == nil {
		return ""
	}
	return a.Title
}
