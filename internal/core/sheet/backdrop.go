package sheet

import (
	"errors"

	"github.com/rs/zerolog"
)

// Image is a captured snapshot of part of the presenting surface.
type Image interface {
	Bounds() Region
}

// Layer is a rendered blur pass ready to be placed behind the rows.
type Layer interface {
	Bounds() Region
}

// Capturer snapshots a region of the presenting surface.
type Capturer interface {
	Capture(region Region) (Image, error)
}

// BlurRenderer blurs a captured image off the primary goroutine and
// reports the result through Machine.BlurRendered.
type BlurRenderer interface {
	RenderBlur(img Image)
}

// Splicer inserts a blurred layer below the translucent overlay, which sits
// below the interactive rows.
type Splicer interface {
	SpliceBlur(layer Layer)
}

// StateReader exposes the current lifecycle state.
type StateReader interface {
	State() State
}

// Backdrop sequences capture, blur and splice for one presentation.
// Failures are soft: the sheet is always presented, with or without blur.
type Backdrop struct {
	capturer Capturer
	renderer BlurRenderer
	splicer  Splicer
	states   StateReader
	log      zerolog.Logger

	started bool
	pending bool
	spliced bool
}

// NewBackdrop creates a coordinator. states is consulted before splicing.
func NewBackdrop(c Capturer, r BlurRenderer, s Splicer, states StateReader, logger zerolog.Logger) *Backdrop {
	return &Backdrop{
		capturer: c,
		renderer: r,
		splicer:  s,
		states:   states,
		log:      logger,
	}
}

// Begin captures the region the panel is about to cover and requests a blur
// of it. It must run before the panel reaches its visible position. Only
// the first call has any effect.
func (b *Backdrop) Begin(s Surface, totalHeight float64) {
	if b.started {
		return
	}
	b.started = true

	if totalHeight <= 0 {
		b.log.Debug().Msg("empty panel, skipping backdrop")
		return
	}

	img, err := b.capture(s, totalHeight)
	if err != nil {
		b.log.Warn().Err(err).Str("surface", s.ID).Msg("backdrop capture failed, presenting without blur")
		return
	}

	b.pending = true
	b.renderer.RenderBlur(img)
}

func (b *Backdrop) capture(s Surface, totalHeight float64) (Image, error) {
	if s.IsZero() {
		return nil, ErrNoSurface
	}

	img, err := b.capturer.Capture(s.BottomRegion(totalHeight))
	if err != nil {
		if errors.Is(err, ErrNoSurface) || errors.Is(err, ErrCaptureFailed) {
			return nil, err
		}
		return nil, errors.Join(ErrCaptureFailed, err)
	}
	if img == nil {
		return nil, ErrCaptureFailed
	}
	return img, nil
}

// BlurRendered splices the layer if the panel is still presenting or
// visible. A blur that arrives after dismissal began is dropped.
func (b *Backdrop) BlurRendered(layer Layer) bool {
	if !b.pending || layer == nil {
		return false
	}
	b.pending = false

	if state := b.states.State(); !state.Shown() {
		b.log.Debug().Str("state", state.String()).Msg("blur finished after dismissal, dropping layer")
		return false
	}

	b.splicer.SpliceBlur(layer)
	b.spliced = true
	return true
}

// Pending reports whether a blur pass is in flight.
func (b *Backdrop) Pending() bool { return b.pending }

// Spliced reports whether a blur layer was placed behind the rows.
func (b *Backdrop) Spliced() bool { return b.spliced }
