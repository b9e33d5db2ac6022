package roadmap

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/swerner/grepo2/internal/i18n"
	"github.com/swerner/grepo2/internal/infrastructure/di"
	"github.com/swerner/grepo2/internal/ui"
)

type RoadmapCommandFactory struct{}

func NewRoadmapCommandFactory() *RoadmapCommandFactory {
	return &RoadmapCommandFactory{}
}

func (f *RoadmapCommandFactory) CreateCommand(t *i18n.Translations, container *di.Container) *cli.Command {
	return &cli.Command{
		Name:  "roadmap",
		Usage: t.GetMessage("cmd.roadmap.usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "repo",
				Aliases:  []string{"r"},
				Usage:    t.GetMessage("flag.repo.usage", 0, nil),
				Required: true,
			},
			&cli.StringFlag{
				Name:  "desc",
				Usage: t.GetMessage("flag.desc.usage", 0, nil),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			creds, err := container.Credentials()
			if err != nil {
				return err
			}
			service, err := container.RoadmapService()
			if err != nil {
				return err
			}

			repoPath := filepath.Join(container.Store().UserWorkspace(creds.Username), command.String("repo"))
			out := command.Root().Writer

			_, _ = fmt.Fprintln(out, t.GetMessage("roadmap.generating", 0, map[string]interface{}{
				"Model": string(container.Model()),
			}))

			// The model's output streams straight through to the terminal.
			onDelta := func(fragment string) {
				_, _ = fmt.Fprint(out, fragment)
			}

			var path string
			if desc := command.String("desc"); desc != "" {
				path, err = service.GenerateFrom(ctx, repoPath, desc, onDelta)
			} else {
				path, err = service.Generate(ctx, repoPath, onDelta)
			}
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(out)
			ui.PrintSuccess(out, t.GetMessage("roadmap.saved", 0, map[string]interface{}{
				"Path": path,
			}))
			return nil
		},
	}
}
