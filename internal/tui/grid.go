package tui

import (
	"math"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/actionsheet/internal/core/sheet"
)

// CellMeasurer measures text in terminal cells. A line of text is one cell
// high; fontSize scales the wrapped line count.
type CellMeasurer struct{}

// MeasureTextBlock implements sheet.TextMeasurer.
func (CellMeasurer) MeasureTextBlock(text string, maxWidth, fontSize float64) float64 {
	if text == "" {
		return 0
	}
	w := max(int(maxWidth), 1)
	wrapped := lipgloss.NewStyle().Width(w).Render(text)
	return float64(lipgloss.Height(wrapped)) * fontSize
}

// CellRow is a row of the sheet in whole cells, relative to the panel top.
type CellRow struct {
	Y      int
	Height int
}

// Grid is a Layout snapped to the terminal cell grid.
type Grid struct {
	Width       int
	TitleHeight int
	Rows        []CellRow
	Total       int
}

// round maps a float coordinate to the nearest cell line, halves rounding down
// the screen.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// NewGrid snaps a layout to cells. Origins are rounded, the total is rounded
// up, and rows that would share a line after rounding are pushed down.
func NewGrid(l sheet.Layout) Grid {
	g := Grid{
		Width: max(round(l.Width), 0),
		Rows:  make([]CellRow, len(l.RowOrigins)),
	}

	if l.HasTitle {
		g.TitleHeight = max(round(l.TitleBlockHeight), 1)
	}

	rowHeight := max(round(l.RowHeight), 1)
	prevEnd := g.TitleHeight
	for i, origin := range l.RowOrigins {
		y := max(round(origin), prevEnd)
		g.Rows[i] = CellRow{Y: y, Height: rowHeight}
		prevEnd = y + rowHeight
	}

	g.Total = max(int(math.Ceil(l.TotalHeight)), prevEnd)
	return g
}

// RowAt returns the row covering panel line y.
func (g Grid) RowAt(y int) (int, bool) {
	for i, r := range g.Rows {
		if y >= r.Y && y < r.Y+r.Height {
			return i, true
		}
	}
	return -1, false
}
