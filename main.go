package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/actionsheet/internal/commands"
	"github.com/colonyops/actionsheet/internal/core/config"
	"github.com/colonyops/actionsheet/internal/core/eventbus"
	"github.com/colonyops/actionsheet/internal/core/logging"
	"github.com/colonyops/actionsheet/internal/core/styles"
	"github.com/colonyops/actionsheet/internal/printer"
	"github.com/colonyops/actionsheet/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := printer.NewContext(context.Background(), printer.New(os.Stderr))

	var (
		logCloser func()
		busCancel context.CancelFunc
		busDone   chan struct{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "actionsheet",
		Usage:     "Show an action sheet in the terminal",
		UsageText: "actionsheet [global options] command [command options]",
		Description: `actionsheet slides a sheet of actions up from the bottom of the terminal,
over a frosted copy of whatever text is behind it, and prints the action you
pick. Sheets can be described with flags or named in the config file.

Run 'actionsheet pick -a Copy -a cancel:Cancel' for a quick prompt.
Run 'actionsheet layout <sheet>' to inspect a sheet's geometry.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("ACTIONSHEET_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file",
				Sources:     cli.EnvVars("ACTIONSHEET_LOG_FILE"),
				Value:       commands.DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("ACTIONSHEET_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile, logging.ContextHook{})
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			// Validation is left to the commands so that 'config validate'
			// can report every problem.
			cfg, err := config.Read(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			if palette, ok := styles.GetPalette(cfg.Theme); ok {
				styles.SetTheme(palette)
			}

			bus := eventbus.New(64)
			busCtx, cancel := context.WithCancel(context.Background())
			busCancel = cancel
			busDone = make(chan struct{})
			go func() {
				defer close(busDone)
				bus.Start(busCtx)
			}()

			eventbus.RegisterDebugLogger(bus, logging.Component("eventbus"))
			bus.SubscribeSheetDismissed(func(p eventbus.SheetDismissedPayload) {
				log.Info().
					Str("surface_id", p.Surface.ID).
					Str("outcome", p.Outcome.Kind.String()).
					Msg("sheet closed")
			})
			flags.Bus = bus

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Let the bus deliver what the sheet published before the log closes.
			if busCancel != nil {
				busCancel()
				<-busDone
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewPickCmd(flags).Register(app)
	app = commands.NewLayoutCmd(flags).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		if !errors.Is(runErr, commands.ErrNoSelection) {
			printer.Ctx(ctx).Errorf("%s", runErr)
		}
		exitCode = 1
	}

	os.Exit(exitCode)
}
