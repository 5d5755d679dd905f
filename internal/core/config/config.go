// Package config handles configuration loading and validation for actionsheet.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/actionsheet/internal/core/sheet"
	"github.com/colonyops/actionsheet/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	Theme    string               `yaml:"theme"`
	Geometry Geometry             `yaml:"geometry"`
	Timing   Timing               `yaml:"timing"`
	Backdrop BackdropConfig       `yaml:"backdrop"`
	Sheets   map[string]SheetSpec `yaml:"sheets"`
}

// Geometry holds the layout metrics in terminal cells.
type Geometry struct {
	RowHeight     float64 `yaml:"row_height"`
	Padding       float64 `yaml:"padding"`
	MinorPadding  float64 `yaml:"minor_padding"`
	TitleFontSize float64 `yaml:"title_font_size"` // line height multiplier for the title
	MaxWidth      int     `yaml:"max_width"`       // 0 = full terminal width
}

// Timing holds the animation timings.
type Timing struct {
	Enter time.Duration `yaml:"enter"`
	Exit  time.Duration `yaml:"exit"`
	Frame time.Duration `yaml:"frame"`
}

// BackdropConfig controls the frosted backdrop behind the rows.
type BackdropConfig struct {
	Blur *bool `yaml:"blur"` // nil = enabled
}

// BlurEnabled reports whether the backdrop blur is on.
func (b BackdropConfig) BlurEnabled() bool {
	return b.Blur == nil || *b.Blur
}

// SheetSpec is a named, reusable sheet definition.
type SheetSpec struct {
	Title   string       `yaml:"title"`
	Actions []ActionSpec `yaml:"actions"`
}

// ActionSpec defines one action of a sheet.
type ActionSpec struct {
	Title string `yaml:"title"`
	Role  string `yaml:"role"`  // default, cancel or destructive
	Value string `yaml:"value"` // printed when picked, defaults to title
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme: styles.DefaultTheme,
		Geometry: Geometry{
			RowHeight:     1,
			Padding:       0.5,
			MinorPadding:  0,
			TitleFontSize: 1,
		},
		Timing: Timing{
			Enter: sheet.DefaultEnterDuration,
			Exit:  sheet.DefaultExitDuration,
			Frame: 16 * time.Millisecond,
		},
		Sheets: map[string]SheetSpec{},
	}
}

// Load reads configuration from the given path and validates it. If
// configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg, err := Read(configPath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read is Load without validation, for callers that report validation
// errors themselves.
func Read(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
// Paddings are left alone since zero is meaningful for them.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Geometry.RowHeight == 0 {
		c.Geometry.RowHeight = defaults.Geometry.RowHeight
	}
	if c.Geometry.TitleFontSize == 0 {
		c.Geometry.TitleFontSize = defaults.Geometry.TitleFontSize
	}
	if c.Timing.Enter == 0 {
		c.Timing.Enter = defaults.Timing.Enter
	}
	if c.Timing.Exit == 0 {
		c.Timing.Exit = defaults.Timing.Exit
	}
	if c.Timing.Frame == 0 {
		c.Timing.Frame = defaults.Timing.Frame
	}
	if c.Sheets == nil {
		c.Sheets = map[string]SheetSpec{}
	}
}

// Constraints converts the geometry into layout constraints for the given
// terminal width.
func (g Geometry) Constraints(width int) sheet.Constraints {
	if g.MaxWidth > 0 && width > g.MaxWidth {
		width = g.MaxWidth
	}
	return sheet.Constraints{
		AvailableWidth: float64(width),
		RowHeight:      g.RowHeight,
		Padding:        g.Padding,
		MinorPadding:   g.MinorPadding,
		TitleFontSize:  g.TitleFontSize,
	}
}

// SheetTiming converts the animation timings for the state machine.
func (t Timing) SheetTiming() sheet.Timing {
	return sheet.Timing{Enter: t.Enter, Exit: t.Exit}
}

// Sheet returns the named sheet definition.
func (c *Config) Sheet(name string) (SheetSpec, bool) {
	s, ok := c.Sheets[name]
	return s, ok
}
