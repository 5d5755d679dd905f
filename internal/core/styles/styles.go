// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/colonyops/actionsheet/internal/core/sheet"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Derived colors. The terminal has no alpha channel, so translucency is
// approximated by blending palette colors.
var (
	ColorScrimText color.Color // background text under the scrim
	ColorOverlay   color.Color // row background over the frosted backdrop
	ColorHighlight color.Color // highlighted row background
	ColorFrostText color.Color // shade runes of the blurred backdrop
	ColorFrostBg   color.Color // background of the blurred backdrop
)

// Style exports.
var (
	// CLI styles.
	HeaderStyle  lipgloss.Style
	DividerStyle lipgloss.Style
	MutedStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	SuccessStyle lipgloss.Style

	// Sheet styles.
	ScrimStyle            lipgloss.Style
	FrostStyle            lipgloss.Style
	SheetTitleStyle       lipgloss.Style
	SheetRowStyle         lipgloss.Style
	SheetRowSelectedStyle lipgloss.Style
	SheetGapStyle         lipgloss.Style
	SheetHelpStyle        lipgloss.Style
)

func init() {
	p, _ := GetPalette(DefaultTheme)
	SetTheme(p)
}

// Blend mixes a towards b by t (0 = a, 1 = b) in Lab space. Colors that
// cannot be converted fall back to a.
func Blend(a, b color.Color, t float64) color.Color {
	ca, ok := colorful.MakeColor(a)
	if !ok {
		return a
	}
	cb, ok := colorful.MakeColor(b)
	if !ok {
		return a
	}
	return lipgloss.Color(ca.BlendLab(cb, t).Clamped().Hex())
}

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorScrimText = Blend(p.Foreground, p.Background, 0.65)
	ColorOverlay = Blend(p.Surface, p.Background, 0.2)
	ColorHighlight = Blend(p.Surface, p.Primary, 0.35)
	ColorFrostText = Blend(p.Muted, p.Surface, 0.5)
	ColorFrostBg = Blend(p.Surface, p.Background, 0.5)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	MutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	WarningStyle = lipgloss.NewStyle().
		Foreground(p.Warning)
	ErrorStyle = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)
	SuccessStyle = lipgloss.NewStyle().
		Foreground(p.Primary)

	ScrimStyle = lipgloss.NewStyle().
		Foreground(ColorScrimText).
		Faint(true)
	FrostStyle = lipgloss.NewStyle().
		Foreground(ColorFrostText).
		Background(ColorFrostBg)

	SheetTitleStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Background(ColorOverlay).
		Align(lipgloss.Center)
	SheetRowStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Background(ColorOverlay).
		Align(lipgloss.Center)
	SheetRowSelectedStyle = SheetRowStyle.
		Background(ColorHighlight).
		Bold(true)
	SheetGapStyle = lipgloss.NewStyle().
		Background(ColorFrostBg)
	SheetHelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
}

// RoleColor returns the text tint of an action role.
func RoleColor(r sheet.Role) color.Color {
	if r == sheet.RoleDestructive {
		return CurrentPalette.Error
	}
	return CurrentPalette.Foreground
}

// RowStyle returns the style of a row for the given role and highlight.
func RowStyle(r sheet.Role, highlighted bool) lipgloss.Style {
	s := SheetRowStyle
	if highlighted {
		s = SheetRowSelectedStyle
	}
	s = s.Foreground(RoleColor(r))
	if r == sheet.RoleCancel {
		s = s.Bold(true)
	}
	return s
}
