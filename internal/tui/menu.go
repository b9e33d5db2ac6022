package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"

	"github.com/swerner/grepo2/internal/config"
	apperrors "github.com/swerner/grepo2/internal/errors"
	"github.com/swerner/grepo2/internal/i18n"
	"github.com/swerner/grepo2/internal/infrastructure/di"
	"github.com/swerner/grepo2/internal/logging"
	"github.com/swerner/grepo2/internal/ui"
)

// Selection values of the main menu. Repository entries carry the
// "repo/" prefix instead; a directory basename can never contain a
// slash, so repository names cannot collide with action values.
const (
	repoPrefix = "repo/"

	actionSwitchUser = "switch-user"
	actionNewRepo    = "new-repo"
	actionSettings   = "settings"
	actionExit       = "exit"
	actionBack       = "back"
)

// Menu drives the interactive mode: a loop of selection prompts over the
// active user's workspace. Every action renders its own errors and falls
// back to the menu; only an unusable terminal ends the loop.
type Menu struct {
	container *di.Container
	t         *i18n.Translations
	log       zerolog.Logger
}

func NewMenu(container *di.Container) *Menu {
	return &Menu{
		container: container,
		t:         container.Translations(),
		log:       logging.Component("tui"),
	}
}

// Run shows the main menu until the user exits. Without an active user
// the setup wizard runs first.
func (m *Menu) Run(ctx context.Context) error {
	for {
		creds, err := m.container.Credentials()
		if err != nil {
			if errors.Is(err, apperrors.ErrNoActiveUser) || errors.Is(err, apperrors.ErrUserNotFound) {
				if wizErr := m.setupWizard(ctx); wizErr != nil {
					if errors.Is(wizErr, huh.ErrUserAborted) {
						return nil
					}
					return wizErr
				}
				continue
			}
			return err
		}

		repos, err := m.localRepositories(creds)
		if err != nil {
			return err
		}

		var choice string
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title(m.t.GetMessage("menu.main_title", 0, map[string]interface{}{"User": creds.Username})).
				Options(mainMenuOptions(m.t, repos)...).
				Value(&choice),
		))
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		switch choice {
		case actionExit:
			return nil
		case actionSwitchUser:
			m.userMenu(ctx)
		case actionNewRepo:
			m.createRepository(ctx)
		case actionSettings:
			m.settingsMenu(ctx)
		default:
			if name, ok := strings.CutPrefix(choice, repoPrefix); ok {
				m.repoMenu(ctx, name)
			}
		}
	}
}

// mainMenuOptions lists the workspace repositories followed by the fixed
// actions.
func mainMenuOptions(t *i18n.Translations, repos []string) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(repos)+4)
	for _, name := range repos {
		options = append(options, huh.NewOption("📁 "+name, repoPrefix+name))
	}
	options = append(options,
		huh.NewOption(t.GetMessage("menu.option.switch_user", 0, nil), actionSwitchUser),
		huh.NewOption(t.GetMessage("menu.option.new_repo", 0, nil), actionNewRepo),
		huh.NewOption(t.GetMessage("menu.option.settings", 0, nil), actionSettings),
		huh.NewOption(t.GetMessage("menu.option.exit", 0, nil), actionExit),
	)
	return options
}

func (m *Menu) localRepositories(creds *config.UserCredentials) ([]string, error) {
	service, err := m.container.RepoService()
	if err != nil {
		return nil, err
	}
	return service.LocalRepositories(creds.Username)
}

// confirm asks a yes/no question. Declining or aborting both report the
// operation as cancelled.
func (m *Menu) confirm(title string) bool {
	var yes bool
	err := huh.NewConfirm().
		Title(title).
		Value(&yes).
		Run()
	if err != nil || !yes {
		ui.PrintInfo(m.t.GetMessage("operation_cancelled", 0, nil))
		return false
	}
	return true
}

func notEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("value is required")
	}
	return nil
}
