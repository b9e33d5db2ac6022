package repo

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/swerner/grepo2/internal/i18n"
	"github.com/swerner/grepo2/internal/infrastructure/di"
)

func (f *RepoCommandFactory) newListCommand(t *i18n.Translations, container *di.Container) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   t.GetMessage("cmd.repo_list.usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			creds, err := container.Credentials()
			if err != nil {
				return err
			}
			service, err := container.RepoService()
			if err != nil {
				return err
			}

			repos, err := service.LocalRepositories(creds.Username)
			if err != nil {
				return err
			}

			out := command.Root().Writer
			if len(repos) == 0 {
				_, _ = fmt.Fprintln(out, t.GetMessage("repo_list.empty", 0, map[string]interface{}{
					"Path": container.Store().UserWorkspace(creds.Username),
				}))
				return nil
			}

			_, _ = fmt.Fprintln(out, t.GetMessage("repo_list.title", 0, map[string]interface{}{
				"User": creds.Username,
			}))
			for _, name := range repos {
				_, _ = fmt.Fprintf(out, "  %s\n", name)
			}
			return nil
		},
	}
}
