package sheet

import (
	"errors"
	"fmt"
	"time"
)

// recorder collects the collaborator calls in order.
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

type animRequest struct {
	from, to float64
	d        time.Duration
	tag      AnimationTag
}

type fakeAnimator struct {
	rec      *recorder
	requests []animRequest
}

func (a *fakeAnimator) Animate(from, to float64, d time.Duration, tag AnimationTag) {
	a.rec.add("animate %s", tag)
	a.requests = append(a.requests, animRequest{from: from, to: to, d: d, tag: tag})
}

type fakeHost struct {
	rec       *recorder
	presented []Surface
	dismissed int
	released  int
}

func (h *fakeHost) PresentSurface(s Surface) {
	h.rec.add("present surface")
	h.presented = append(h.presented, s)
}

func (h *fakeHost) DismissSurface(Surface) {
	h.rec.add("dismiss surface")
	h.dismissed++
}

func (h *fakeHost) ReleaseSurface(Surface) {
	h.rec.add("release surface")
	h.released++
}

type fakeImage struct{ region Region }

func (i fakeImage) Bounds() Region { return i.region }

type fakeCapturer struct {
	rec     *recorder
	err     error
	regions []Region
}

func (c *fakeCapturer) Capture(r Region) (Image, error) {
	c.rec.add("capture")
	c.regions = append(c.regions, r)
	if c.err != nil {
		return nil, c.err
	}
	return fakeImage{region: r}, nil
}

type fakeBlur struct {
	rec    *recorder
	images []Image
}

func (b *fakeBlur) RenderBlur(img Image) {
	b.rec.add("render blur")
	b.images = append(b.images, img)
}

type fakeSplicer struct {
	rec    *recorder
	layers []Layer
}

func (s *fakeSplicer) SpliceBlur(l Layer) {
	s.rec.add("splice blur")
	s.layers = append(s.layers, l)
}

var errCaptureBoom = errors.New("boom")

// harness wires a machine to recording fakes.
type harness struct {
	rec      *recorder
	anim     *fakeAnimator
	host     *fakeHost
	capturer *fakeCapturer
	blur     *fakeBlur
	splicer  *fakeSplicer
	machine  *Machine
	surface  Surface
	trans    []Transition
}

func newHarness(title string, actions ...*Action) *harness {
	rec := &recorder{}
	h := &harness{
		rec:      rec,
		anim:     &fakeAnimator{rec: rec},
		host:     &fakeHost{rec: rec},
		capturer: &fakeCapturer{rec: rec},
		blur:     &fakeBlur{rec: rec},
		splicer:  &fakeSplicer{rec: rec},
		surface:  NewSurface(375, 667),
	}

	c := referenceConstraints
	c.AvailableWidth = 0 // taken from the surface

	h.machine = NewMachine(MachineOpts{
		Title:       title,
		Actions:     NewActions(actions...),
		Constraints: c,
		Measurer:    fixedMeasurer(16),
		Animator:    h.anim,
		Host:        h.host,
		Capturer:    h.capturer,
		Blur:        h.blur,
		Splicer:     h.splicer,
		Observer:    func(t Transition) { h.trans = append(h.trans, t) },
	})
	return h
}

// finishExit completes the exit animation.
func (h *harness) finishExit() {
	h.rec.add("exit done")
	h.machine.AnimationFinished(AnimationExit)
}

// finishSurface completes the surface dismissal.
func (h *harness) finishSurface() {
	h.rec.add("surface done")
	h.machine.SurfaceDismissed()
}

// handler returns an action handler that records its invocation.
func (h *harness) handler(name string) func() {
	return func() { h.rec.add("fire %s", name) }
}
