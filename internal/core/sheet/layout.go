package sheet

import (
	"fmt"
	"math"
)

// titlePaddingFactor is the number of paddings added around a measured title.
const titlePaddingFactor = 6

// overlapTolerance absorbs float rounding when comparing row edges.
const overlapTolerance = 1e-9

// TextMeasurer measures the wrapped height of a text block.
type TextMeasurer interface {
	MeasureTextBlock(text string, maxWidth, fontSize float64) float64
}

// MeasureFunc adapts a function to TextMeasurer.
type MeasureFunc func(text string, maxWidth, fontSize float64) float64

func (f MeasureFunc) MeasureTextBlock(text string, maxWidth, fontSize float64) float64 {
	return f(text, maxWidth, fontSize)
}

// Constraints are the fixed metrics the layout is computed from.
type Constraints struct {
	AvailableWidth float64
	RowHeight      float64
	Padding        float64
	MinorPadding   float64
	TitleFontSize  float64
}

// Validate checks that the constraints can produce a layout.
func (c Constraints) Validate() error {
	switch {
	case c.AvailableWidth <= 0:
		return fmt.Errorf("%w: available width must be positive, got %v", ErrInvalidConstraints, c.AvailableWidth)
	case c.RowHeight <= 0:
		return fmt.Errorf("%w: row height must be positive, got %v", ErrInvalidConstraints, c.RowHeight)
	case c.Padding < 0:
		return fmt.Errorf("%w: padding must not be negative, got %v", ErrInvalidConstraints, c.Padding)
	case c.MinorPadding < 0:
		return fmt.Errorf("%w: minor padding must not be negative, got %v", ErrInvalidConstraints, c.MinorPadding)
	case c.TitleFontSize <= 0:
		return fmt.Errorf("%w: title font size must be positive, got %v", ErrInvalidConstraints, c.TitleFontSize)
	}
	return nil
}

// Layout is the vertical geometry of a sheet, relative to the panel top.
type Layout struct {
	Width            float64
	HasTitle         bool
	TitleBlockHeight float64
	RowHeight        float64
	// RowOrigins holds one origin per action, parallel to the action list.
	RowOrigins  []float64
	TotalHeight float64
}

// ComputeLayout lays out an optional title (empty means absent) followed by
// one row per action.
//
// Every row but the last starts RowHeight+MinorPadding below its predecessor.
// The last row is placed with
//
//	titleGap + RowHeight*i + MinorPadding*(i-1) + Padding
//
// which for a single action subtracts one MinorPadding. That asymmetry is
// kept as is. TotalHeight is produced by the last row; without actions it
// is the title block height.
func ComputeLayout(title string, actions []*Action, c Constraints, m TextMeasurer) (Layout, error) {
	if err := c.Validate(); err != nil {
		return Layout{}, err
	}

	layout := Layout{
		Width:      c.AvailableWidth,
		RowHeight:  c.RowHeight,
		RowOrigins: make([]float64, 0, len(actions)),
	}

	var titleGap float64
	if title != "" {
		if m == nil {
			return Layout{}, fmt.Errorf("%w: title requires a text measurer", ErrInvalidConstraints)
		}
		measured := m.MeasureTextBlock(title, c.AvailableWidth, c.TitleFontSize)
		layout.HasTitle = true
		layout.TitleBlockHeight = measured + c.Padding*titlePaddingFactor
		titleGap = layout.TitleBlockHeight + c.MinorPadding
	}

	n := len(actions)
	layout.TotalHeight = layout.TitleBlockHeight
	for i := range n {
		var originY float64
		if i == n-1 {
			originY = titleGap + c.RowHeight*float64(i) + c.MinorPadding*float64(i-1) + c.Padding
			layout.TotalHeight = originY + c.RowHeight
		} else {
			originY = titleGap + c.RowHeight*float64(i) + c.MinorPadding*float64(i)
		}
		layout.RowOrigins = append(layout.RowOrigins, originY)
	}

	if err := layout.check(); err != nil {
		return Layout{}, err
	}
	return layout, nil
}

// check verifies that rows are strictly increasing, do not overlap each
// other or the title, and fit inside TotalHeight.
func (l Layout) check() error {
	prevEnd := l.TitleBlockHeight
	for i, y := range l.RowOrigins {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return fmt.Errorf("%w: row %d origin is %v", ErrLayoutInvariant, i, y)
		}
		if y < prevEnd-overlapTolerance*math.Max(1, math.Abs(prevEnd)) {
			return fmt.Errorf("%w: row %d at %v overlaps content ending at %v", ErrLayoutInvariant, i, y, prevEnd)
		}
		if l.TotalHeight < y+l.RowHeight {
			return fmt.Errorf("%w: total height %v does not cover row %d ending at %v",
				ErrLayoutInvariant, l.TotalHeight, i, y+l.RowHeight)
		}
		prevEnd = y + l.RowHeight
	}
	return nil
}

// Rows returns the panel-relative rectangle of every row.
func (l Layout) Rows() []Region {
	rows := make([]Region, len(l.RowOrigins))
	for i, y := range l.RowOrigins {
		rows[i] = Region{X: 0, Y: y, Width: l.Width, Height: l.RowHeight}
	}
	return rows
}

// TitleRegion returns the panel-relative rectangle of the title block.
func (l Layout) TitleRegion() (Region, bool) {
	if !l.HasTitle {
		return Region{}, false
	}
	return Region{Width: l.Width, Height: l.TitleBlockHeight}, true
}

// RowAt maps a panel-relative y coordinate to the row under it. Gaps
// between rows and the title block belong to no row.
func (l Layout) RowAt(y float64) (int, bool) {
	for i, origin := range l.RowOrigins {
		if y >= origin && y < origin+l.RowHeight {
			return i, true
		}
	}
	return -1, false
}
