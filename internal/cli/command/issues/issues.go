package issues

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/swerner/grepo2/internal/domain/models"
	"github.com/swerner/grepo2/internal/i18n"
	"github.com/swerner/grepo2/internal/infrastructure/di"
	"github.com/swerner/grepo2/internal/services"
	"github.com/swerner/grepo2/internal/ui"
)

type IssuesCommandFactory struct{}

func NewIssuesCommandFactory() *IssuesCommandFactory {
	return &IssuesCommandFactory{}
}

func (f *IssuesCommandFactory) CreateCommand(t *i18n.Translations, container *di.Container) *cli.Command {
	return &cli.Command{
		Name:  "issues",
		Usage: t.GetMessage("cmd.issues.usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "repo",
				Aliases:  []string{"r"},
				Usage:    t.GetMessage("flag.repo.usage", 0, nil),
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: t.GetMessage("flag.dry_run.usage", 0, nil),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			creds, err := container.Credentials()
			if err != nil {
				return err
			}

			repoName := command.String("repo")
			repoPath := filepath.Join(container.Store().UserWorkspace(creds.Username), repoName)
			out := command.Root().Writer

			if command.Bool("dry-run") {
				tasks, err := services.RoadmapTasks(repoPath)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, t.GetMessage("issues.preview_header", len(tasks), map[string]interface{}{
					"Count": len(tasks),
					"Path":  filepath.Join(repoPath, "roadmap.md"),
				}))
				for _, task := range tasks {
					_, _ = fmt.Fprintf(out, "  [phase %d] %s\n", task.Phase, task.Title)
				}
				return nil
			}

			service, err := container.RoadmapService()
			if err != nil {
				return err
			}

			summary, err := service.Sync(ctx, repoPath, creds.Username, repoName, func(result models.IssueResult) {
				if result.Succeeded {
					_, _ = fmt.Fprintln(out, t.GetMessage("sync.issue_created", 0, map[string]interface{}{
						"Number": result.RemoteNumber,
						"Title":  result.TaskTitle,
					}))
					return
				}
				_, _ = fmt.Fprintln(out, t.GetMessage("sync.issue_failed", 0, map[string]interface{}{
					"Title": result.TaskTitle,
					"Error": result.ErrorMessage,
				}))
			})
			if err != nil {
				return err
			}

			ui.PrintSuccess(out, t.GetMessage("sync.summary", 0, map[string]interface{}{
				"Created": summary.Created,
				"Total":   summary.Total,
			}))
			_, _ = fmt.Fprintln(out, t.GetMessage("sync.duplicate_note", 0, nil))
			return nil
		},
	}
}
