package repo

import (
	"github.com/urfave/cli/v3"

	"github.com/swerner/grepo2/internal/i18n"
	"github.com/swerner/grepo2/internal/infrastructure/di"
)

type RepoCommandFactory struct{}

func NewRepoCommandFactory() *RepoCommandFactory {
	return &RepoCommandFactory{}
}

func (f *RepoCommandFactory) CreateCommand(t *i18n.Translations, container *di.Container) *cli.Command {
	return &cli.Command{
		Name:  "repo",
		Usage: t.GetMessage("cmd.repo.usage", 0, nil),
		Commands: []*cli.Command{
			f.newListCommand(t, container),
			f.newCreateCommand(t, container),
			f.newStatusCommand(t, container),
		},
	}
}
