package repo

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	apperrors "github.com/swerner/grepo2/internal/errors"
	"github.com/swerner/grepo2/internal/i18n"
	"github.com/swerner/grepo2/internal/infrastructure/di"
)

func (f *RepoCommandFactory) newStatusCommand(t *i18n.Translations, container *di.Container) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: t.GetMessage("cmd.repo_status.usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "repo",
				Aliases:  []string{"r"},
				Usage:    t.GetMessage("flag.repo.usage", 0, nil),
				Required: true,
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			creds, err := container.Credentials()
			if err != nil {
				return err
			}

			path := filepath.Join(container.Store().UserWorkspace(creds.Username), command.String("repo"))
			git := container.GitService()
			if !git.IsRepository(path) {
				return apperrors.ErrNotInGitRepo.WithContext("path", path)
			}

			status, err := git.Status(ctx, path)
			if err != nil {
				return err
			}

			out := command.Root().Writer
			_, _ = fmt.Fprintf(out, "%s\n", status.Branch)
			if status.Clean() {
				_, _ = fmt.Fprintln(out, t.GetMessage("status.clean", 0, nil))
				return nil
			}

			_, _ = fmt.Fprintln(out, t.GetMessage("status.changed_files", len(status.ChangedFiles), map[string]interface{}{
				"Count": len(status.ChangedFiles),
			}))
			for _, file := range status.ChangedFiles {
				_, _ = fmt.Fprintf(out, "  %s\n", file)
			}
			return nil
		},
	}
}
