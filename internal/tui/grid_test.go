package tui

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/actionsheet/internal/core/config"
	"github.com/colonyops/actionsheet/internal/core/sheet"
)

func actions(titles ...string) []*sheet.Action {
	out := make([]*sheet.Action, len(titles))
	for i, title := range titles {
		role := sheet.RoleDefault
		if i == len(titles)-1 && title == "Cancel" {
			role = sheet.RoleCancel
		}
		out[i] = sheet.NewAction(title, role, nil)
	}
	return out
}

func TestCellMeasurer(t *testing.T) {
	m := CellMeasurer{}

	assert.InDelta(t, 0.0, m.MeasureTextBlock("", 10, 1), 0)
	assert.InDelta(t, 1.0, m.MeasureTextBlock("Share", 10, 1), 0)
	assert.InDelta(t, 2.0, m.MeasureTextBlock("Share", 10, 2), 0)
	assert.InDelta(t, 2.0, m.MeasureTextBlock("Share this photo", 10, 1), 0, "wraps at word boundary")
	assert.InDelta(t, 2.0, m.MeasureTextBlock("one\ntwo", 40, 1), 0)
}

func TestNewGrid_DefaultGeometry(t *testing.T) {
	c := config.DefaultConfig().Geometry.Constraints(40)

	l, err := sheet.ComputeLayout("", actions("Copy", "Move", "Cancel"), c, CellMeasurer{})
	require.NoError(t, err)

	g := NewGrid(l)
	assert.Equal(t, 40, g.Width)
	assert.Equal(t, 0, g.TitleHeight)
	assert.Equal(t, []CellRow{{Y: 0, Height: 1}, {Y: 1, Height: 1}, {Y: 3, Height: 1}}, g.Rows)
	assert.Equal(t, 4, g.Total)
}

func TestNewGrid_WithTitle(t *testing.T) {
	c := config.DefaultConfig().Geometry.Constraints(40)

	l, err := sheet.ComputeLayout("Share", actions("Copy", "Move", "Cancel"), c, CellMeasurer{})
	require.NoError(t, err)

	g := NewGrid(l)
	assert.Equal(t, 4, g.TitleHeight)
	assert.Equal(t, []CellRow{{Y: 4, Height: 1}, {Y: 5, Height: 1}, {Y: 7, Height: 1}}, g.Rows)
	assert.Equal(t, 8, g.Total)
}

func TestNewGrid_SingleAction(t *testing.T) {
	c := sheet.Constraints{AvailableWidth: 20, RowHeight: 1, Padding: 0.5, MinorPadding: 0.5, TitleFontSize: 1}

	l, err := sheet.ComputeLayout("", actions("Only"), c, CellMeasurer{})
	require.NoError(t, err)

	g := NewGrid(l)
	require.Len(t, g.Rows, 1)
	assert.Equal(t, 0, g.Rows[0].Y)
	assert.Equal(t, 1, g.Total)
}

func TestGrid_RowAt(t *testing.T) {
	g := Grid{Rows: []CellRow{{Y: 0, Height: 1}, {Y: 2, Height: 2}}}

	i, ok := g.RowAt(0)
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	_, ok = g.RowAt(1)
	assert.False(t, ok, "gap")

	i, ok = g.RowAt(3)
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = g.RowAt(4)
	assert.False(t, ok)
}

func TestNewGrid_RowsNeverShareALine(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	properties.Property("rows are disjoint and inside the total", prop.ForAll(
		func(n int, rowHeight, padding, minor float64) bool {
			c := sheet.Constraints{
				AvailableWidth: 40,
				RowHeight:      rowHeight,
				Padding:        padding + minor,
				MinorPadding:   minor,
				TitleFontSize:  1,
			}
			titles := make([]string, n)
			for i := range titles {
				titles[i] = "row"
			}
			l, err := sheet.ComputeLayout("", actions(titles...), c, CellMeasurer{})
			if err != nil {
				return false
			}

			g := NewGrid(l)
			prevEnd := 0
			for _, r := range g.Rows {
				if r.Y < prevEnd || r.Height < 1 {
					return false
				}
				prevEnd = r.Y + r.Height
			}
			return g.Total >= prevEnd
		},
		gen.IntRange(1, 12),
		gen.Float64Range(0.3, 3),
		gen.Float64Range(0, 2),
		gen.Float64Range(0, 1),
	))

	properties.TestingRun(t)
}
