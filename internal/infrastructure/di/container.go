package di

import (
	"github.com/swerner/grepo2/internal/config"
	"github.com/swerner/grepo2/internal/domain/ports"
	apperrors "github.com/swerner/grepo2/internal/errors"
	"github.com/swerner/grepo2/internal/i18n"
	"github.com/swerner/grepo2/internal/infrastructure/ai/openrouter"
	"github.com/swerner/grepo2/internal/infrastructure/codex"
	"github.com/swerner/grepo2/internal/infrastructure/git"
	"github.com/swerner/grepo2/internal/infrastructure/vcs/github"
	"github.com/swerner/grepo2/internal/services"
)

// Container wires infrastructure clients and services for one run. The
// GitHub and OpenRouter clients are built from the active user's tokens,
// so switching users drops everything derived from them.
type Container struct {
	store        *config.Store
	translations *i18n.Translations

	creds *config.UserCredentials

	gitService ports.GitService
	github     *github.Client
	openrouter *openrouter.Client

	repoService    *services.RepoService
	roadmapService *services.RoadmapService
	codexService   *services.CodexService
}

func NewContainer(store *config.Store, trans *i18n.Translations) *Container {
	return &Container{
		store:        store,
		translations: trans,
	}
}

func (c *Container) Store() *config.Store {
	return c.store
}

func (c *Container) Translations() *i18n.Translations {
	return c.translations
}

// SetCredentials switches the active user. Clients and services built
// from the previous user's tokens are discarded.
func (c *Container) SetCredentials(creds *config.UserCredentials) {
	c.creds = creds
	c.github = nil
	c.openrouter = nil
	c.repoService = nil
	c.roadmapService = nil
	c.codexService = nil
}

// Credentials resolves the active user, loading it from the store on
// first use.
func (c *Container) Credentials() (*config.UserCredentials, error) {
	if c.creds != nil {
		return c.creds, nil
	}
	creds, err := c.store.ActiveUser()
	if err != nil {
		return nil, err
	}
	c.creds = creds
	return creds, nil
}

// Model resolves the active user's model, falling back to the default
// when the profile names none or an unknown one.
func (c *Container) Model() config.Model {
	if c.creds != nil && config.IsSupportedModel(c.creds.Model) {
		return config.Model(c.creds.Model)
	}
	return config.DefaultModel
}

func (c *Container) GitService() ports.GitService {
	if c.gitService == nil {
		c.gitService = git.NewGitService()
	}
	return c.gitService
}

// SetGitService overrides the git implementation, for tests.
func (c *Container) SetGitService(service ports.GitService) {
	c.gitService = service
}

// Service setters let tests wire services built on mocked ports.
func (c *Container) SetRepoService(service *services.RepoService) {
	c.repoService = service
}

func (c *Container) SetRoadmapService(service *services.RoadmapService) {
	c.roadmapService = service
}

func (c *Container) SetCodexService(service *services.CodexService) {
	c.codexService = service
}

// GitHub returns the client for the active user's token.
func (c *Container) GitHub() (*github.Client, error) {
	if c.github != nil {
		return c.github, nil
	}

	creds, err := c.Credentials()
	if err != nil {
		return nil, err
	}
	if creds.Token == "" {
		return nil, apperrors.ErrTokenMissing
	}

	c.github = github.NewClient(creds.Token)
	return c.github, nil
}

// OpenRouter returns the chat-completions client for the active user's
// OpenRouter token and model.
func (c *Container) OpenRouter() (*openrouter.Client, error) {
	if c.openrouter != nil {
		return c.openrouter, nil
	}

	creds, err := c.Credentials()
	if err != nil {
		return nil, err
	}
	if creds.OpenRouterToken == "" {
		return nil, apperrors.ErrOpenRouterTokenMissing
	}

	c.openrouter = openrouter.NewClient(creds.OpenRouterToken, c.Model())
	return c.openrouter, nil
}

func (c *Container) RepoService() (*services.RepoService, error) {
	if c.repoService != nil {
		return c.repoService, nil
	}

	gh, err := c.GitHub()
	if err != nil {
		return nil, err
	}

	c.repoService = services.NewRepoService(gh, c.GitService(), c.store)
	return c.repoService, nil
}

// RoadmapService needs only the GitHub token; without an OpenRouter token
// the service still parses and syncs, it just cannot generate.
func (c *Container) RoadmapService() (*services.RoadmapService, error) {
	if c.roadmapService != nil {
		return c.roadmapService, nil
	}

	gh, err := c.GitHub()
	if err != nil {
		return nil, err
	}

	var generator ports.RoadmapGenerator
	if or, err := c.OpenRouter(); err == nil {
		generator = or
	}

	c.roadmapService = services.NewRoadmapService(generator, gh)
	return c.roadmapService, nil
}

func (c *Container) CodexService() (*services.CodexService, error) {
	if c.codexService != nil {
		return c.codexService, nil
	}

	gh, err := c.GitHub()
	if err != nil {
		return nil, err
	}
	analyzer, err := c.OpenRouter()
	if err != nil {
		return nil, err
	}

	creds, _ := c.Credentials()
	runner := codex.NewRunner(c.Model(), creds.OpenRouterToken)

	c.codexService = services.NewCodexService(gh, c.GitService(), runner, analyzer)
	return c.codexService, nil
}
