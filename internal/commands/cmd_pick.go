package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/actionsheet/internal/core/config"
	"github.com/colonyops/actionsheet/internal/core/eventbus"
	"github.com/colonyops/actionsheet/internal/core/logging"
	"github.com/colonyops/actionsheet/internal/tui"
)

type PickCmd struct {
	flags      *Flags
	input      sheetInput
	background string
	noBlur     bool
}

// NewPickCmd creates a new pick command.
func NewPickCmd(flags *Flags) *PickCmd {
	return &PickCmd{flags: flags}
}

// Register adds the pick command to the application.
func (cmd *PickCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "pick",
		Usage:     "Show an action sheet and print the chosen action",
		UsageText: "actionsheet pick [options] [sheet-name]",
		Description: `Slides an action sheet up over the background text and waits for a choice.

The value of the chosen action (its title unless a value is set) is printed
to stdout. When the sheet is dismissed without any handler firing, the
command exits with status 1. Clicking outside the sheet or pressing esc
picks the last action if its role is cancel.

The background is read from --background, or from stdin when it is piped.`,
		Flags: append(cmd.input.flags(),
			&cli.StringFlag{
				Name:        "background",
				Aliases:     []string{"b"},
				Usage:       "file shown behind the sheet",
				Destination: &cmd.background,
			},
			&cli.BoolFlag{
				Name:        "no-blur",
				Usage:       "disable the frosted backdrop",
				Destination: &cmd.noBlur,
			},
		),
		Action: cmd.run,
	})

	return app
}

func (cmd *PickCmd) run(ctx context.Context, c *cli.Command) error {
	cfg, err := cmd.flags.ValidConfig()
	if err != nil {
		return err
	}

	spec, err := cmd.input.resolve(cfg, c.Args().First())
	if err != nil {
		return err
	}

	output, err := terminalOutput()
	if err != nil {
		return err
	}

	bg, err := cmd.readBackground()
	if err != nil {
		return fmt.Errorf("read background: %w", err)
	}

	name := c.Args().First()
	if name == "" {
		name = "inline"
	}
	ctx = logging.WithSheet(ctx, name)

	var s *tui.Sheet
	actions, err := spec.Build(func(a config.ActionSpec) func() {
		return func() {
			hctx := logging.WithSurfaceID(ctx, s.Machine().Surface().ID)
			log.Info().Ctx(hctx).Str("action", a.Title).Str("role", a.Role).Msg("action fired")
		}
	})
	if err != nil {
		return fmt.Errorf("build sheet: %w", err)
	}

	bridge := eventbus.NewSheetBridge(cmd.flags.Bus)
	s = tui.NewSheet(tui.SheetOpts{
		Title:    spec.Title,
		Actions:  actions,
		Geometry: cfg.Geometry,
		Timing:   cfg.Timing,
		Blur:     cfg.Backdrop.BlurEnabled() && !cmd.noBlur,
		Observer: bridge.Observe,
		Logger:   logging.Component("sheet"),
	})
	bridge.Bind(s.Machine())

	app := tui.NewApp(s, bg)
	if _, err := tea.NewProgram(app, tea.WithContext(ctx), tea.WithOutput(output)).Run(); err != nil {
		return fmt.Errorf("run sheet: %w", err)
	}

	value, err := pickResult(app)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.Root().Writer, value)
	return err
}

// pickResult maps the finished program to the printed value. A sheet that
// closed without a handler firing, or was interrupted, is ErrNoSelection.
func pickResult(app *tui.App) (string, error) {
	if err := app.Err(); err != nil {
		return "", fmt.Errorf("present sheet: %w", err)
	}

	out := app.Outcome()
	if app.Interrupted() || !out.Fired || out.Action == nil {
		return "", ErrNoSelection
	}
	return out.Action.Payload(), nil
}

// terminalOutput picks the stream the sheet is drawn on. stdout is left
// free for the result when it is redirected.
func terminalOutput() (*os.File, error) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return os.Stdout, nil
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return os.Stderr, nil
	}
	return nil, errors.New("pick requires a terminal on stdout or stderr")
}

func (cmd *PickCmd) readBackground() (string, error) {
	if cmd.background != "" {
		data, err := os.ReadFile(cmd.background)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	return "", nil
}
