package repo

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/swerner/grepo2/internal/domain/models"
	apperrors "github.com/swerner/grepo2/internal/errors"
	"github.com/swerner/grepo2/internal/services"
)

func TestRepoCreateCommand(t *testing.T) {
	t.Run("should create the repository and clone it", func(t *testing.T) {
		container, translations, store := setupRepoTest(t)

		manager := new(services.MockRepoManager)
		git := new(services.MockGitService)
		wantDest := filepath.Join(store.UserWorkspace("alice"), "tool")

		manager.On("CreateRepository", mock.Anything, "tool", "cli playground", true).
			Return(&models.Repository{Name: "tool", FullName: "alice/tool"}, nil)
		git.On("Clone", mock.Anything, "https://tok@github.com/alice/tool.git", wantDest).Return(nil)

		container.SetRepoService(services.NewRepoService(manager, git, store))

		var buf bytes.Buffer
		cmd := NewRepoCommandFactory().CreateCommand(translations, container)
		app := &cli.Command{Commands: []*cli.Command{cmd}, Writer: &buf}

		err := app.Run(context.Background(), []string{
			"grepo2", "repo", "create", "--name", "tool", "--description", "cli playground", "--private",
		})

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Repository alice/tool created on GitHub")
		assert.Contains(t, buf.String(), "Cloned into "+wantDest)
		manager.AssertExpectations(t)
		git.AssertExpectations(t)
	})

	t.Run("should fail without a name", func(t *testing.T) {
		container, translations, store := setupRepoTest(t)
		container.SetRepoService(services.NewRepoService(new(services.MockRepoManager), new(services.MockGitService), store))

		cmd := NewRepoCommandFactory().CreateCommand(translations, container)
		app := &cli.Command{Commands: []*cli.Command{cmd}, Writer: &bytes.Buffer{}}

		err := app.Run(context.Background(), []string{"grepo2", "repo", "create"})

		assert.Error(t, err)
	})

	t.Run("should surface creation failures", func(t *testing.T) {
		container, translations, store := setupRepoTest(t)

		manager := new(services.MockRepoManager)
		git := new(services.MockGitService)
		manager.On("CreateRepository", mock.Anything, "tool", "", false).
			Return(nil, apperrors.ErrRepositoryExists)

		container.SetRepoService(services.NewRepoService(manager, git, store))

		cmd := NewRepoCommandFactory().CreateCommand(translations, container)
		app := &cli.Command{Commands: []*cli.Command{cmd}, Writer: &bytes.Buffer{}}

		err := app.Run(context.Background(), []string{"grepo2", "repo", "create", "--name", "tool"})

		assert.ErrorIs(t, err, apperrors.ErrRepositoryExists)
		git.AssertNotCalled(t, "Clone", mock.Anything, mock.Anything, mock.Anything)
	})
}
