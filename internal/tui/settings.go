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
	"github.com/swerner/grepo2/internal/ui"
)

// Selection values of the settings menu.
const (
	settingGitHubToken     = "github-token"
	settingOpenRouterToken = "openrouter-token"
	settingModel           = "model"
	settingLanguage        = "language"
)

func settingsMenuOptions(t *i18n.Translations) []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption(t.GetMessage("menu.option.set_github_token", 0, nil), settingGitHubToken),
		huh.NewOption(t.GetMessage("menu.option.set_openrouter_token", 0, nil), settingOpenRouterToken),
		huh.NewOption(t.GetMessage("menu.option.set_model", 0, nil), settingModel),
		huh.NewOption(t.GetMessage("menu.option.set_language", 0, nil), settingLanguage),
		huh.NewOption(t.GetMessage("menu.option.back", 0, nil), actionBack),
	}
}

func (m *Menu) settingsMenu(ctx context.Context) {
	for {
		var choice string
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title(m.t.GetMessage("menu.settings_title", 0, nil)).
				Options(settingsMenuOptions(m.t)...).
				Value(&choice),
		))
		if err := form.Run(); err != nil {
			return
		}

		switch choice {
		case actionBack:
			return
		case settingGitHubToken:
			m.changeGitHubToken(ctx)
		case settingOpenRouterToken:
			m.changeOpenRouterToken()
		case settingModel:
			m.changeModel()
		case settingLanguage:
			m.changeLanguage()
		}
	}
}

// changeGitHubToken replaces the stored token after checking it actually
// authenticates the active user.
func (m *Menu) changeGitHubToken(ctx context.Context) {
	creds, err := m.container.Credentials()
	if err != nil {
		ui.HandleAppError(err, m.t)
		return
	}

	var token string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(m.t.GetMessage("prompt.github_token", 0, nil)).
			EchoMode(huh.EchoModePassword).
			Validate(notEmpty).
			Value(&token),
	))
	if err := form.Run(); err != nil {
		return
	}

	login, err := m.validateToken(ctx, token)
	if err != nil {
		ui.HandleAppError(err, m.t)
		return
	}
	if !strings.EqualFold(login, creds.Username) {
		ui.HandleAppError(apperrors.ErrGitHubTokenInvalid.
			WithError(fmt.Errorf("token belongs to %s, not %s", login, creds.Username)), m.t)
		return
	}

	updated := *creds
	updated.Token = token
	m.saveCredentials(&updated)
}

func (m *Menu) changeOpenRouterToken() {
	creds, err := m.container.Credentials()
	if err != nil {
		ui.HandleAppError(err, m.t)
		return
	}

	var token string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(m.t.GetMessage("prompt.openrouter_token", 0, nil)).
			EchoMode(huh.EchoModePassword).
			Validate(notEmpty).
			Value(&token),
	))
	if err := form.Run(); err != nil {
		return
	}

	updated := *creds
	updated.OpenRouterToken = token
	m.saveCredentials(&updated)
}

func (m *Menu) changeModel() {
	creds, err := m.container.Credentials()
	if err != nil {
		ui.HandleAppError(err, m.t)
		return
	}

	supported := config.SupportedModels()
	options := make([]huh.Option[string], 0, len(supported))
	for _, model := range supported {
		options = append(options, huh.NewOption(string(model), string(model)))
	}

	choice := string(m.container.Model())
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(m.t.GetMessage("prompt.select_model", 0, nil)).
			Options(options...).
			Value(&choice),
	))
	if err := form.Run(); err != nil {
		return
	}

	updated := *creds
	updated.Model = choice
	m.saveCredentials(&updated)
}

// changeLanguage switches the interface language for this run and stores
// it for the next one.
func (m *Menu) changeLanguage() {
	langs := m.t.SupportedLanguages()
	options := make([]huh.Option[string], 0, len(langs))
	for _, lang := range langs {
		options = append(options, huh.NewOption(lang, lang))
	}

	var choice string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(m.t.GetMessage("prompt.select_language", 0, nil)).
			Options(options...).
			Value(&choice),
	))
	if err := form.Run(); err != nil {
		return
	}

	if err := m.t.SetLanguage(choice); err != nil {
		ui.HandleAppError(err, m.t)
		return
	}
	if err := m.container.Store().SetLanguage(choice); err != nil {
		ui.HandleAppError(err, m.t)
		return
	}
	ui.PrintSuccess(os.Stdout, m.t.GetMessage("configure.saved", 0, nil))
}

// saveCredentials persists the profile and swaps it into the container so
// later actions use the new tokens.
func (m *Menu) saveCredentials(creds *config.UserCredentials) {
	if err := m.container.Store().SaveUser(creds); err != nil {
		ui.HandleAppError(err, m.t)
		return
	}
	m.container.SetCredentials(creds)
	ui.PrintSuccess(os.Stdout, m.t.GetMessage("configure.saved", 0, nil))
}
