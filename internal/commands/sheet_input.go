package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/actionsheet/internal/core/config"
)

// sheetInput resolves the sheet a command works on, either a named sheet
// from the config or one described entirely on the command line.
type sheetInput struct {
	title   string
	actions []string
}

func (in *sheetInput) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "title",
			Aliases:     []string{"t"},
			Usage:       "sheet title, overrides the configured one",
			Destination: &in.title,
		},
		&cli.StringSliceFlag{
			Name:        "action",
			Aliases:     []string{"a"},
			Usage:       `action as "[role:]title[=value]", repeatable; replaces the configured actions`,
			Destination: &in.actions,
		},
	}
}

func (in *sheetInput) resolve(cfg *config.Config, name string) (config.SheetSpec, error) {
	var spec config.SheetSpec

	if name != "" {
		named, ok := cfg.Sheet(name)
		if !ok {
			return spec, fmt.Errorf("unknown sheet %q (available: %s)", name, strings.Join(cfg.SheetNames(), ", "))
		}
		spec = named
	}

	if in.title != "" {
		spec.Title = in.title
	}

	if len(in.actions) > 0 {
		spec.Actions = make([]config.ActionSpec, 0, len(in.actions))
		for _, raw := range in.actions {
			a, err := config.ParseActionSpec(raw)
			if err != nil {
				return spec, fmt.Errorf("parse --action: %w", err)
			}
			spec.Actions = append(spec.Actions, a)
		}
	}

	if spec.Title == "" && len(spec.Actions) == 0 {
		return spec, errors.New("nothing to show: pass a sheet name, --title or --action")
	}
	if err := cfg.Geometry.CheckSheet(spec); err != nil {
		return spec, err
	}
	return spec, nil
}
