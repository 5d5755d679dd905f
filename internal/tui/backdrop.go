package tui

import (
	"errors"
	"fmt"
	"math"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/actionsheet/internal/core/sheet"
	"github.com/colonyops/actionsheet/internal/core/styles"
)

// shades orders blur runes from empty to dense.
var shades = []rune{' ', '░', '▒', '▓'}

type blurDoneMsg struct {
	layer sheet.Layer
}

// textImage is a plain text snapshot of part of the background.
type textImage struct {
	region sheet.Region
	lines  []string // ANSI stripped, one per cell line
	width  int
}

func (i textImage) Bounds() sheet.Region { return i.region }

// textCapturer snapshots the bottom of the background string.
type textCapturer struct {
	background func() string
}

// Capture implements sheet.Capturer.
func (c textCapturer) Capture(r sheet.Region) (sheet.Image, error) {
	if r.Empty() {
		return nil, fmt.Errorf("capture %v: empty region", r)
	}

	var bg string
	if c.background != nil {
		bg = c.background()
	}
	if bg == "" {
		return nil, errors.New("capture: no background content")
	}

	// Anchor to the bottom edge the same way the panel grid is.
	src := strings.Split(bg, "\n")
	height := int(math.Ceil(r.Height))
	top := round(r.Y+r.Height) - height
	width := max(round(r.Width), 1)

	img := textImage{region: r, lines: make([]string, height), width: width}
	for i := range height {
		y := top + i
		if y < 0 || y >= len(src) {
			continue
		}
		img.lines[i] = ansi.Strip(ansi.Truncate(src[y], width, ""))
	}
	return img, nil
}

// frostLayer is a rendered blur pass.
type frostLayer struct {
	region sheet.Region
	lines  []string // styled
}

func (l frostLayer) Bounds() sheet.Region { return l.region }

// frostRenderer blurs captured text inside a tea.Cmd so the update loop is
// not blocked.
type frostRenderer struct {
	queue *cmdQueue
}

// RenderBlur implements sheet.BlurRenderer.
func (r frostRenderer) RenderBlur(img sheet.Image) {
	ti, ok := img.(textImage)
	if !ok {
		return
	}
	r.queue.push(func() tea.Msg {
		return blurDoneMsg{layer: frost(ti)}
	})
}

// frost replaces every cell with a shade rune proportional to the number of
// printed cells in its 3x3 neighbourhood.
func frost(img textImage) frostLayer {
	height := len(img.lines)
	cells := make([][]bool, height)
	for y, line := range img.lines {
		cells[y] = make([]bool, img.width)
		x := 0
		for _, r := range line {
			if x >= img.width {
				break
			}
			cells[y][x] = r != ' '
			x += max(ansi.StringWidth(string(r)), 1)
		}
	}

	out := make([]string, height)
	var sb strings.Builder
	for y := range height {
		sb.Reset()
		for x := range img.width {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					yy, xx := y+dy, x+dx
					if yy >= 0 && yy < height && xx >= 0 && xx < img.width && cells[yy][xx] {
						n++
					}
				}
			}
			sb.WriteRune(shade(n))
		}
		out[y] = styles.FrostStyle.Render(sb.String())
	}

	return frostLayer{region: img.region, lines: out}
}

// shade maps a neighbourhood count (0-9) to a rune.
func shade(n int) rune {
	switch {
	case n == 0:
		return shades[0]
	case n <= 3:
		return shades[1]
	case n <= 6:
		return shades[2]
	default:
		return shades[3]
	}
}
