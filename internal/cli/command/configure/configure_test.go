package configure

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/swerner/grepo2/internal/config"
	"github.com/swerner/grepo2/internal/i18n"
	"github.com/swerner/grepo2/internal/infrastructure/di"
)

func setupConfigureTest(t *testing.T) (*di.Container, *i18n.Translations, *config.Store) {
	t.Helper()

	store, err := config.NewStore(t.TempDir())
	require.NoError(t, err)

	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	require.NoError(t, store.SaveUser(&config.UserCredentials{
		Username: "alice",
		Token:    "old",
		Model:    string(config.DefaultModel),
	}))
	require.NoError(t, store.SetActiveUser("alice"))

	return di.NewContainer(store, translations), translations, store
}

func TestConfigureCommand(t *testing.T) {
	t.Run("should update tokens and model", func(t *testing.T) {
		container, translations, store := setupConfigureTest(t)

		var buf bytes.Buffer
		cmd := NewConfigureCommandFactory().CreateCommand(translations, container)
		app := &cli.Command{Commands: []*cli.Command{cmd}, Writer: &buf}

		err := app.Run(context.Background(), []string{
			"grepo2", "configure",
			"--github-token", "newtok",
			"--openrouter-token", "sk-or-1",
			"--model", "openai/gpt-4",
		})

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Configuration saved")

		saved, err := store.LoadUser("alice")
		require.NoError(t, err)
		assert.Equal(t, "newtok", saved.Token)
		assert.Equal(t, "sk-or-1", saved.OpenRouterToken)
		assert.Equal(t, "openai/gpt-4", saved.Model)
	})

	t.Run("should reject an unsupported model", func(t *testing.T) {
		container, translations, store := setupConfigureTest(t)

		cmd := NewConfigureCommandFactory().CreateCommand(translations, container)
		app := &cli.Command{Commands: []*cli.Command{cmd}, Writer: &bytes.Buffer{}}

		err := app.Run(context.Background(), []string{"grepo2", "configure", "--model", "gpt-9000"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Unsupported model 'gpt-9000'")

		saved, err := store.LoadUser("alice")
		require.NoError(t, err)
		assert.Equal(t, string(config.DefaultModel), saved.Model)
	})

	t.Run("should keep stored tokens when validation fails", func(t *testing.T) {
		container, translations, store := setupConfigureTest(t)

		cmd := NewConfigureCommandFactory().CreateCommand(translations, container)
		app := &cli.Command{Commands: []*cli.Command{cmd}, Writer: &bytes.Buffer{}}

		err := app.Run(context.Background(), []string{
			"grepo2", "configure", "--github-token", "newtok", "--model", "gpt-9000",
		})

		require.Error(t, err)
		saved, err := store.LoadUser("alice")
		require.NoError(t, err)
		assert.Equal(t, "old", saved.Token)

		creds, err := container.Credentials()
		require.NoError(t, err)
		assert.Equal(t, "old", creds.Token)
	})

	t.Run("should require at least one flag", func(t *testing.T) {
		container, translations, _ := setupConfigureTest(t)

		cmd := NewConfigureCommandFactory().CreateCommand(translations, container)
		app := &cli.Command{Commands: []*cli.Command{cmd}, Writer: &bytes.Buffer{}}

		err := app.Run(context.Background(), []string{"grepo2", "configure"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Nothing to configure")
	})

	t.Run("should switch the interface language", func(t *testing.T) {
		container, translations, store := setupConfigureTest(t)

		var buf bytes.Buffer
		cmd := NewConfigureCommandFactory().CreateCommand(translations, container)
		app := &cli.Command{Commands: []*cli.Command{cmd}, Writer: &buf}

		err := app.Run(context.Background(), []string{"grepo2", "configure", "--language", "de"})

		require.NoError(t, err)
		assert.Equal(t, "Arbeitsverzeichnis sauber", translations.GetMessage("status.clean", 0, nil))

		global, err := store.LoadGlobal()
		require.NoError(t, err)
		assert.Equal(t, "de", global.Language)
	})

	t.Run("should reject an unknown language", func(t *testing.T) {
		container, translations, _ := setupConfigureTest(t)

		cmd := NewConfigureCommandFactory().CreateCommand(translations, container)
		app := &cli.Command{Commands: []*cli.Command{cmd}, Writer: &bytes.Buffer{}}

		err := app.Run(context.Background(), []string{"grepo2", "configure", "--language", "xx"})

		assert.Error(t, err)
	})
}
