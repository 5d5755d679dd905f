package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/actionsheet/internal/core/config"
	"github.com/colonyops/actionsheet/internal/core/sheet"
	"github.com/colonyops/actionsheet/internal/printer"
	"github.com/colonyops/actionsheet/internal/tui"
	"github.com/colonyops/actionsheet/pkg/iojson"
)

type LayoutCmd struct {
	flags  *Flags
	input  sheetInput
	width  int
	format string
}

// NewLayoutCmd creates a new layout command.
func NewLayoutCmd(flags *Flags) *LayoutCmd {
	return &LayoutCmd{flags: flags}
}

// Register adds the layout command to the application.
func (cmd *LayoutCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "layout",
		Usage:       "Print the geometry of a sheet without showing it",
		UsageText:   "actionsheet layout [options] [sheet-name]",
		Description: "Computes the row origins and total height of a sheet for the given terminal width, both in layout units and snapped to cells.",
		Flags: append(cmd.input.flags(),
			&cli.IntFlag{
				Name:        "width",
				Aliases:     []string{"w"},
				Usage:       "terminal width in cells",
				Value:       80,
				Destination: &cmd.width,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		),
		Action: cmd.run,
	})

	return app
}

type layoutRow struct {
	Index  int     `json:"index"`
	Title  string  `json:"title"`
	Role   string  `json:"role"`
	Origin float64 `json:"origin"`
	Cell   int     `json:"cell"`
}

type layoutReport struct {
	Width            float64     `json:"width"`
	Title            string      `json:"title,omitempty"`
	TitleBlockHeight float64     `json:"title_block_height"`
	TitleCells       int         `json:"title_cells"`
	RowHeight        float64     `json:"row_height"`
	Rows             []layoutRow `json:"rows"`
	TotalHeight      float64     `json:"total_height"`
	TotalCells       int         `json:"total_cells"`
}

func (cmd *LayoutCmd) run(ctx context.Context, c *cli.Command) error {
	cfg, err := cmd.flags.ValidConfig()
	if err != nil {
		return err
	}

	spec, err := cmd.input.resolve(cfg, c.Args().First())
	if err != nil {
		return err
	}

	report, err := buildLayoutReport(cfg.Geometry, spec, cmd.width)
	if err != nil {
		return err
	}

	if cmd.format == "json" {
		return iojson.Write(c.Root().Writer, report)
	}

	p := printer.New(c.Root().Writer)
	if report.Title != "" {
		p.Headerf("%s", report.Title)
		p.Printf("  title block  %6.2f  (%d cells)", report.TitleBlockHeight, report.TitleCells)
	}
	for _, r := range report.Rows {
		p.Printf("  %d %-12s %6.2f  cell %d  %s", r.Index, r.Role, r.Origin, r.Cell, r.Title)
	}
	p.Printf("  total        %6.2f  (%d cells, width %v)", report.TotalHeight, report.TotalCells, report.Width)
	return nil
}

func buildLayoutReport(g config.Geometry, spec config.SheetSpec, width int) (layoutReport, error) {
	if width <= 0 {
		return layoutReport{}, fmt.Errorf("width must be positive, got %d", width)
	}

	actions, err := spec.Build(nil)
	if err != nil {
		return layoutReport{}, fmt.Errorf("build sheet: %w", err)
	}

	l, err := sheet.ComputeLayout(spec.Title, actions.All(), g.Constraints(width), tui.CellMeasurer{})
	if err != nil {
		return layoutReport{}, fmt.Errorf("compute layout: %w", err)
	}
	grid := tui.NewGrid(l)

	report := layoutReport{
		Width:            l.Width,
		Title:            spec.Title,
		TitleBlockHeight: l.TitleBlockHeight,
		TitleCells:       grid.TitleHeight,
		RowHeight:        l.RowHeight,
		Rows:             make([]layoutRow, len(l.RowOrigins)),
		TotalHeight:      l.TotalHeight,
		TotalCells:       grid.Total,
	}
	for i, a := range actions.All() {
		report.Rows[i] = layoutRow{
			Index:  i,
			Title:  a.Title,
			Role:   a.Role.String(),
			Origin: l.RowOrigins[i],
			Cell:   grid.Rows[i].Y,
		}
	}
	return report, nil
}
