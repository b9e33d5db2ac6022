package repo

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/swerner/grepo2/internal/i18n"
	"github.com/swerner/grepo2/internal/infrastructure/di"
	"github.com/swerner/grepo2/internal/ui"
)

func (f *RepoCommandFactory) newCreateCommand(t *i18n.Translations, container *di.Container) *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: t.GetMessage("cmd.repo_create.usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "name",
				Aliases:  []string{"n"},
				Usage:    t.GetMessage("flag.repo_name.usage", 0, nil),
				Required: true,
			},
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   t.GetMessage("flag.repo_description.usage", 0, nil),
			},
			&cli.BoolFlag{
				Name:    "private",
				Aliases: []string{"p"},
				Usage:   t.GetMessage("flag.repo_private.usage", 0, nil),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			creds, err := container.Credentials()
			if err != nil {
				return err
			}
			service, err := container.RepoService()
			if err != nil {
				return err
			}

			repo, dest, err := service.CreateAndClone(ctx, creds,
				command.String("name"), command.String("description"), command.Bool("private"))
			if err != nil {
				return err
			}

			ui.PrintSuccess(command.Root().Writer, t.GetMessage("repo.created", 0, map[string]interface{}{
				"Repo": repo.FullName,
			}))
			ui.PrintSuccess(command.Root().Writer, t.GetMessage("clone.done", 0, map[string]interface{}{
				"Path": dest,
			}))
			return nil
		},
	}
}
