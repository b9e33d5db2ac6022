package repo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swerner/grepo2/internal/config"
	"github.com/swerner/grepo2/internal/i18n"
	"github.com/swerner/grepo2/internal/infrastructure/di"
)

func setupRepoTest(t *testing.T) (*di.Container, *i18n.Translations, *config.Store) {
	t.Helper()

	store, err := config.NewStore(t.TempDir())
	require.NoError(t, err)

	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	container := di.NewContainer(store, translations)
	container.SetCredentials(&config.UserCredentials{
		Username: "alice",
		Token:    "tok",
		Model:    string(config.DefaultModel),
	})

	return container, translations, store
}
