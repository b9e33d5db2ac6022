package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	zlog "github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/swerner/grepo2/internal/cli/command/configure"
	"github.com/swerner/grepo2/internal/cli/command/issues"
	"github.com/swerner/grepo2/internal/cli/command/repo"
	"github.com/swerner/grepo2/internal/cli/command/roadmap"
	"github.com/swerner/grepo2/internal/cli/registry"
	"github.com/swerner/grepo2/internal/config"
	"github.com/swerner/grepo2/internal/i18n"
	"github.com/swerner/grepo2/internal/infrastructure/di"
	"github.com/swerner/grepo2/internal/logging"
	"github.com/swerner/grepo2/internal/tui"
	"github.com/swerner/grepo2/internal/ui"
	"github.com/swerner/grepo2/internal/version"
)

func main() {
	app, translations, err := initializeApp()
	if err != nil {
		log.Fatalf("could not start grepo2: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ui.HandleAppError(err, translations)
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, *i18n.Translations, error) {
	store, err := config.DefaultStore()
	if err != nil {
		return nil, nil, err
	}

	global, err := store.LoadGlobal()
	if err != nil {
		return nil, nil, err
	}

	// active.<lang>.toml files dropped into the config dir override the
	// embedded locales.
	translations, err := i18n.NewTranslations(global.Language, filepath.Join(store.ConfigDir(), "locales"))
	if err != nil {
		return nil, translations, fmt.Errorf("could not load translations: %w", err)
	}

	container := di.NewContainer(store, translations)

	reg := registry.NewRegistry(container, translations)
	if err := reg.Register("repo", repo.NewRepoCommandFactory()); err != nil {
		return nil, translations, err
	}
	if err := reg.Register("roadmap", roadmap.NewRoadmapCommandFactory()); err != nil {
		return nil, translations, err
	}
	if err := reg.Register("issues", issues.NewIssuesCommandFactory()); err != nil {
		return nil, translations, err
	}
	if err := reg.Register("configure", configure.NewConfigureCommandFactory()); err != nil {
		return nil, translations, err
	}

	goCommand := &cli.Command{
		Name:     "go",
		Usage:    translations.GetMessage("cmd.go.usage", 0, nil),
		Commands: reg.CreateCommands(),
	}

	helpCommand := &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}

	menu := tui.NewMenu(container)

	var (
		logLevel  string
		logCloser = func() {}
	)

	app := &cli.Command{
		Name:        "grepo2",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Version:     version.Version,
		Description: translations.GetMessage("app_description", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("GREPO2_LOG_LEVEL"),
				Value:       "info",
				Destination: &logLevel,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logging.New(logLevel, filepath.Join(store.ConfigDir(), "grepo2.log"))
			if err != nil {
				return ctx, fmt.Errorf("could not set up logging: %w", err)
			}
			zlog.Logger = logger
			logCloser = closer
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			logCloser()
			return nil
		},
		Commands:              []*cli.Command{goCommand, helpCommand},
		EnableShellCompletion: true,
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() > 0 {
				return fmt.Errorf("unknown command %q. Run 'grepo2 --help' for usage", c.Args().First())
			}
			return menu.Run(ctx)
		},
	}

	return app, translations, nil
}
