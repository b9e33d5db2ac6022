package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v3"

	"github.com/swerner/grepo2/internal/config"
	"github.com/swerner/grepo2/internal/i18n"
	"github.com/swerner/grepo2/internal/infrastructure/di"
)

type mockCommandFactory struct {
	name string
}

func (m *mockCommandFactory) CreateCommand(t *i18n.Translations, container *di.Container) *cli.Command {
	return &cli.Command{
		Name: m.name,
	}
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	store, err := config.NewStore(t.TempDir())
	assert.NoError(t, err)
	translations, err := i18n.NewTranslations("en", "")
	assert.NoError(t, err)
	return NewRegistry(di.NewContainer(store, translations), translations)
}

func TestRegistry_Register(t *testing.T) {
	t.Run("should register new factory successfully", func(t *testing.T) {
		registry := newTestRegistry(t)
		factory := &mockCommandFactory{name: "mock-command"}

		err := registry.Register("test-command", factory)

		assert.NoError(t, err)
		assert.Len(t, registry.factories, 1)
		assert.Contains(t, registry.factories, "test-command")
	})

	t.Run("should return error when registering duplicate factory", func(t *testing.T) {
		registry := newTestRegistry(t)
		factory := &mockCommandFactory{name: "mock-command"}

		_ = registry.Register("test-command", factory)
		err := registry.Register("test-command", factory)

		assert.Error(t, err)
		assert.Len(t, registry.factories, 1)
	})
}

func TestRegistry_CreateCommands(t *testing.T) {
	t.Run("should create commands in registration order", func(t *testing.T) {
		registry := newTestRegistry(t)

		_ = registry.Register("beta", &mockCommandFactory{name: "beta"})
		_ = registry.Register("alpha", &mockCommandFactory{name: "alpha"})

		commands := registry.CreateCommands()

		assert.Len(t, commands, 2)
		assert.Equal(t, "beta", commands[0].Name)
		assert.Equal(t, "alpha", commands[1].Name)
	})

	t.Run("should return empty slice when no factories registered", func(t *testing.T) {
		registry := newTestRegistry(t)

		commands := registry.CreateCommands()

		assert.Empty(t, commands)
	})
}

func TestNewRegistry(t *testing.T) {
	t.Run("should create new registry with empty factories", func(t *testing.T) {
		registry := newTestRegistry(t)

		assert.NotNil(t, registry)
		assert.Empty(t, registry.factories)
		assert.NotNil(t, registry.container)
		assert.NotNil(t, registry.t)
	})
}
