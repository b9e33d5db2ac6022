package configure

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/swerner/grepo2/internal/config"
	"github.com/swerner/grepo2/internal/i18n"
	"github.com/swerner/grepo2/internal/infrastructure/di"
	"github.com/swerner/grepo2/internal/ui"
)

type ConfigureCommandFactory struct{}

func NewConfigureCommandFactory() *ConfigureCommandFactory {
	return &ConfigureCommandFactory{}
}

func (f *ConfigureCommandFactory) CreateCommand(t *i18n.Translations, container *di.Container) *cli.Command {
	return &cli.Command{
		Name:  "configure",
		Usage: t.GetMessage("cmd.configure.usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "github-token",
				Usage: t.GetMessage("flag.github_token.usage", 0, nil),
			},
			&cli.StringFlag{
				Name:  "openrouter-token",
				Usage: t.GetMessage("flag.openrouter_token.usage", 0, nil),
			},
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Usage:   t.GetMessage("flag.model.usage", 0, nil),
			},
			&cli.StringFlag{
				Name:    "language",
				Aliases: []string{"l"},
				Usage:   t.GetMessage("flag.language.usage", 0, nil),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			current, err := container.Credentials()
			if err != nil {
				return err
			}
			updated := *current

			changed := false
			if token := command.String("github-token"); token != "" {
				updated.Token = token
				changed = true
			}
			if token := command.String("openrouter-token"); token != "" {
				updated.OpenRouterToken = token
				changed = true
			}
			if model := command.String("model"); model != "" {
				if !config.IsSupportedModel(model) {
					supported := make([]string, 0, len(config.SupportedModels()))
					for _, m := range config.SupportedModels() {
						supported = append(supported, string(m))
					}
					return fmt.Errorf("%s", t.GetMessage("configure.unsupported_model", 0, map[string]interface{}{
						"Model": model,
						"List":  strings.Join(supported, ", "),
					}))
				}
				updated.Model = model
				changed = true
			}

			if lang := command.String("language"); lang != "" {
				if err := t.SetLanguage(lang); err != nil {
					return err
				}
				if err := container.Store().SetLanguage(lang); err != nil {
					return err
				}
				changed = true
			}

			if !changed {
				return fmt.Errorf("%s", t.GetMessage("configure.nothing", 0, nil))
			}

			if err := container.Store().SaveUser(&updated); err != nil {
				return err
			}
			container.SetCredentials(&updated)

			ui.PrintSuccess(command.Root().Writer, t.GetMessage("configure.saved", 0, nil))
			return nil
		},
	}
}
