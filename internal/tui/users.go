package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/swerner/grepo2/internal/config"
	apperrors "github.com/swerner/grepo2/internal/errors"
	"github.com/swerner/grepo2/internal/i18n"
	"github.com/swerner/grepo2/internal/infrastructure/vcs/github"
	"github.com/swerner/grepo2/internal/ui"
)

// Selection values of the user menu.
const (
	userSelect = "user-select"
	userAdd    = "user-add"
	userDelete = "user-delete"
)

func userMenuOptions(t *i18n.Translations) []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption(t.GetMessage("menu.option.user_select", 0, nil), userSelect),
		huh.NewOption(t.GetMessage("menu.option.user_add", 0, nil), userAdd),
		huh.NewOption(t.GetMessage("menu.option.user_delete", 0, nil), userDelete),
		huh.NewOption(t.GetMessage("menu.option.back", 0, nil), actionBack),
	}
}

func (m *Menu) userMenu(ctx context.Context) {
	for {
		var choice string
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title(m.t.GetMessage("menu.user_title", 0, nil)).
				Options(userMenuOptions(m.t)...).
				Value(&choice),
		))
		if err := form.Run(); err != nil {
			return
		}

		switch choice {
		case actionBack:
			return
		case userSelect:
			m.selectUser()
		case userAdd:
			if err := m.setupWizard(ctx); err != nil {
				return
			}
		case userDelete:
			m.deleteUser()
		}
	}
}

func (m *Menu) selectUser() {
	username, ok := m.pickUser()
	if !ok {
		return
	}

	creds, err := m.container.Store().LoadUser(username)
	if err != nil {
		ui.HandleAppError(err, m.t)
		return
	}
	if err := m.container.Store().SetActiveUser(username); err != nil {
		ui.HandleAppError(err, m.t)
		return
	}
	m.container.SetCredentials(creds)
	ui.PrintSuccess(os.Stdout, m.t.GetMessage("active_user", 0, map[string]interface{}{"User": username}))
}

func (m *Menu) deleteUser() {
	username, ok := m.pickUser()
	if !ok {
		return
	}
	if !m.confirm(m.t.GetMessage("confirm.delete_user", 0, map[string]interface{}{"User": username})) {
		return
	}

	if err := m.container.Store().DeleteUser(username); err != nil {
		ui.HandleAppError(err, m.t)
		return
	}
	// The container may still hold the deleted profile; dropping it makes
	// the next loop re-resolve the active user or run the wizard.
	m.container.SetCredentials(nil)
}

// pickUser shows the stored profiles and returns the selected one.
func (m *Menu) pickUser() (string, bool) {
	users, err := m.container.Store().ListUsers()
	if err != nil {
		ui.HandleAppError(err, m.t)
		return "", false
	}
	if len(users) == 0 {
		ui.PrintWarning(m.t.GetMessage("operation_cancelled", 0, nil))
		return "", false
	}

	options := make([]huh.Option[string], 0, len(users))
	for _, user := range users {
		options = append(options, huh.NewOption(user, user))
	}

	var choice string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(m.t.GetMessage("prompt.select_user", 0, nil)).
			Options(options...).
			Value(&choice),
	))
	if err := form.Run(); err != nil {
		return "", false
	}
	return choice, true
}

// setupWizard prompts for a username and personal access token, checks
// the token against the GitHub API, and activates the new profile with a
// fresh workspace. Invalid input re-prompts; only aborting leaves.
func (m *Menu) setupWizard(ctx context.Context) error {
	ui.PrintInfo(m.t.GetMessage("setup.welcome", 0, nil))

	for {
		var username, token string
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title(m.t.GetMessage("prompt.username", 0, nil)).
				Validate(notEmpty).
				Value(&username),
			huh.NewInput().
				Title(m.t.GetMessage("prompt.github_token", 0, nil)).
				EchoMode(huh.EchoModePassword).
				Validate(notEmpty).
				Value(&token),
		))
		if err := form.Run(); err != nil {
			return err
		}
		username = strings.TrimSpace(username)

		if _, err := m.container.Store().LoadUser(username); err == nil {
			ui.PrintWarning(m.t.GetMessage("setup.user_exists", 0, map[string]interface{}{"User": username}))
			continue
		}

		login, err := m.validateToken(ctx, token)
		if err != nil {
			ui.HandleAppError(err, m.t)
			continue
		}
		if !strings.EqualFold(login, username) {
			ui.HandleAppError(apperrors.ErrGitHubTokenInvalid.
				WithError(fmt.Errorf("token belongs to %s, not %s", login, username)), m.t)
			continue
		}

		creds := &config.UserCredentials{
			Username: username,
			Token:    token,
			Model:    string(config.DefaultModel),
		}
		if err := m.container.Store().SaveUser(creds); err != nil {
			return err
		}
		if err := m.container.Store().SetActiveUser(username); err != nil {
			return err
		}
		workspace, err := m.container.Store().EnsureWorkspace(username)
		if err != nil {
			return err
		}
		m.container.SetCredentials(creds)

		ui.PrintSuccess(os.Stdout, m.t.GetMessage("setup.user_ready", 0, map[string]interface{}{
			"User": username,
			"Path": workspace,
		}))
		return nil
	}
}

// validateToken resolves the login the token authenticates.
func (m *Menu) validateToken(ctx context.Context, token string) (string, error) {
	spin := ui.NewSmartSpinner(m.t.GetMessage("setup.token_validating", 0, nil))
	spin.Start()
	login, err := github.NewClient(token).AuthenticatedUser(ctx)
	spin.Stop()
	return login, err
}
