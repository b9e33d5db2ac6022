package registry

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/swerner/grepo2/internal/i18n"
	"github.com/swerner/grepo2/internal/infrastructure/di"
)

type CommandFactory interface {
	CreateCommand(t *i18n.Translations, container *di.Container) *cli.Command
}

type Registry struct {
	factories map[string]CommandFactory
	order     []string
	container *di.Container
	t         *i18n.Translations
}

func NewRegistry(container *di.Container, t *i18n.Translations) *Registry {
	return &Registry{
		factories: make(map[string]CommandFactory),
		container: container,
		t:         t,
	}
}

func (r *Registry) Register(name string, factory CommandFactory) error {
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%s", r.t.GetMessage("factory_already_registered", 0, map[string]interface{}{
			"FactoryName": name,
		}))
	}
	r.factories[name] = factory
	r.order = append(r.order, name)
	return nil
}

// CreateCommands builds the commands in registration order.
func (r *Registry) CreateCommands() []*cli.Command {
	commands := make([]*cli.Command, 0, len(r.factories))
	for _, name := range r.order {
		commands = append(commands, r.factories[name].CreateCommand(r.t, r.container))
	}
	return commands
}
