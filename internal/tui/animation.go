package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/actionsheet/internal/core/sheet"
)

const defaultFrameInterval = 16 * time.Millisecond

type animationFrameMsg struct {
	id int
}

type animationDoneMsg struct {
	tag sheet.AnimationTag
}

// tickAnimator slides the panel with tea.Tick frames. Starting a new
// animation supersedes the running one, which then never completes; the new
// one starts from the current position.
type tickAnimator struct {
	queue *cmdQueue
	frame time.Duration
	now   func() time.Time

	id      int
	running bool
	from    float64
	to      float64
	y       float64
	start   time.Time
	dur     time.Duration
	tag     sheet.AnimationTag
}

func newTickAnimator(queue *cmdQueue, frame time.Duration, now func() time.Time) *tickAnimator {
	if frame <= 0 {
		frame = defaultFrameInterval
	}
	if now == nil {
		now = time.Now
	}
	return &tickAnimator{queue: queue, frame: frame, now: now}
}

// Animate implements sheet.Animator.
func (a *tickAnimator) Animate(fromY, toY float64, d time.Duration, tag sheet.AnimationTag) {
	if a.running {
		fromY = a.y
	}

	a.id++
	a.running = true
	a.from, a.to, a.y = fromY, toY, fromY
	a.start = a.now()
	a.dur = d
	a.tag = tag

	a.queue.push(a.tick(a.id))
}

func (a *tickAnimator) tick(id int) tea.Cmd {
	return tea.Tick(a.frame, func(time.Time) tea.Msg {
		return animationFrameMsg{id: id}
	})
}

// Frame advances the running animation. It returns the next frame, or the
// completion message once the target is reached. Frames of superseded
// animations are ignored.
func (a *tickAnimator) Frame(msg animationFrameMsg) tea.Cmd {
	if !a.running || msg.id != a.id {
		return nil
	}

	p := 1.0
	if a.dur > 0 {
		p = float64(a.now().Sub(a.start)) / float64(a.dur)
	}

	if p >= 1 {
		a.y = a.to
		a.running = false
		tag := a.tag
		return func() tea.Msg { return animationDoneMsg{tag: tag} }
	}

	a.y = a.from + (a.to-a.from)*easeOutCubic(p)
	return a.tick(a.id)
}

// Y returns the current panel top in surface coordinates.
func (a *tickAnimator) Y() float64 { return a.y }

// Running reports whether an animation is in flight.
func (a *tickAnimator) Running() bool { return a.running }

func easeOutCubic(t float64) float64 {
	t = 1 - t
	return 1 - t*t*t
}
