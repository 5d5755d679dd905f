package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/actionsheet/internal/core/sheet"
	"github.com/colonyops/actionsheet/internal/core/styles"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		c.validateTheme(),
		c.validateGeometry(),
		c.validateTiming(),
		c.validateSheets(),
	)
}

// ValidateDeep runs Validate and additionally checks the config file on
// disk. An empty configPath skips the file check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return validateConfigFile(configPath)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	for _, name := range c.sheetNames() {
		spec := c.Sheets[name]
		for i, a := range spec.Actions {
			if a.Role != "cancel" || i == len(spec.Actions)-1 {
				continue
			}
			warnings = append(warnings, ValidationWarning{
				Category: "Sheets",
				Item:     name,
				Message:  fmt.Sprintf("cancel action %q is not last; clicking outside the sheet will not trigger it", a.Title),
			})
		}
	}

	if c.Timing.Exit > c.Timing.Enter {
		warnings = append(warnings, ValidationWarning{
			Category: "Timing",
			Message:  fmt.Sprintf("exit (%s) is slower than enter (%s)", c.Timing.Exit, c.Timing.Enter),
		})
	}

	return warnings
}

func (c *Config) validateTheme() error {
	if _, ok := styles.GetPalette(c.Theme); !ok {
		return criterio.NewFieldErrors("theme", fmt.Errorf("unknown theme %q (available: %v)", c.Theme, styles.ThemeNames()))
	}
	return nil
}

func (c *Config) validateGeometry() error {
	var errs criterio.FieldErrorsBuilder
	g := c.Geometry

	if g.RowHeight <= 0 {
		errs = errs.Append("geometry.row_height", fmt.Errorf("must be positive, got %v", g.RowHeight))
	}
	if g.Padding < 0 {
		errs = errs.Append("geometry.padding", fmt.Errorf("must not be negative, got %v", g.Padding))
	}
	if g.MinorPadding < 0 {
		errs = errs.Append("geometry.minor_padding", fmt.Errorf("must not be negative, got %v", g.MinorPadding))
	}
	if g.TitleFontSize <= 0 {
		errs = errs.Append("geometry.title_font_size", fmt.Errorf("must be positive, got %v", g.TitleFontSize))
	}
	if g.MaxWidth < 0 {
		errs = errs.Append("geometry.max_width", fmt.Errorf("must not be negative, got %d", g.MaxWidth))
	}

	return errs.ToError()
}

func (c *Config) validateTiming() error {
	var errs criterio.FieldErrorsBuilder
	t := c.Timing

	if t.Enter <= 0 {
		errs = errs.Append("timing.enter", fmt.Errorf("must be positive, got %s", t.Enter))
	}
	if t.Exit <= 0 {
		errs = errs.Append("timing.exit", fmt.Errorf("must be positive, got %s", t.Exit))
	}
	if t.Frame <= 0 {
		errs = errs.Append("timing.frame", fmt.Errorf("must be positive, got %s", t.Frame))
	}

	return errs.ToError()
}

func (c *Config) validateSheets() error {
	var errs criterio.FieldErrorsBuilder

	for _, name := range c.sheetNames() {
		spec := c.Sheets[name]
		field := fmt.Sprintf("sheets[%q]", name)

		if spec.Title == "" && len(spec.Actions) == 0 {
			errs = errs.Append(field, fmt.Errorf("needs a title or at least one action"))
		}
		if err := c.Geometry.CheckSheet(spec); err != nil {
			errs = errs.Append(field, err)
		}

		for i, a := range spec.Actions {
			afield := fmt.Sprintf("%s.actions[%d]", field, i)
			if a.Title == "" {
				errs = errs.Append(afield+".title", fmt.Errorf("is required"))
			}
			if _, err := sheet.ParseRole(a.Role); err != nil {
				errs = errs.Append(afield+".role", err)
			}
		}
	}

	return errs.ToError()
}

// CheckSheet reports geometry that cannot lay out the given sheet. The only
// such case is an untitled sheet with a single action while minor_padding
// exceeds padding: that row would start above the panel top.
func (g Geometry) CheckSheet(spec SheetSpec) error {
	if spec.Title == "" && len(spec.Actions) == 1 && g.MinorPadding > g.Padding {
		return fmt.Errorf("a single action without a title needs minor_padding (%v) to not exceed padding (%v)", g.MinorPadding, g.Padding)
	}
	return nil
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// sheetNames returns the configured sheet names in a stable order.
func (c *Config) sheetNames() []string {
	names := make([]string, 0, len(c.Sheets))
	for name := range c.Sheets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SheetNames returns the configured sheet names sorted alphabetically.
func (c *Config) SheetNames() []string {
	return c.sheetNames()
}
