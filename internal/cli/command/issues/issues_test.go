package issues

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/swerner/grepo2/internal/config"
	"github.com/swerner/grepo2/internal/domain/models"
	apperrors "github.com/swerner/grepo2/internal/errors"
	"github.com/swerner/grepo2/internal/i18n"
	"github.com/swerner/grepo2/internal/infrastructure/di"
	"github.com/swerner/grepo2/internal/services"
)

const testRoadmap = `PHASE 1 – Setup
[ ] Init project: Bootstrap the module layout.
[ ] Add CI: Configure the pipeline.

PHASE 2 – Core
[ ] Build parser: Implement the roadmap grammar.
`

func setupIssuesTest(t *testing.T) (*di.Container, *i18n.Translations, *config.Store) {
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

func writeRoadmap(t *testing.T, store *config.Store, repo string) string {
	t.Helper()

	workspace, err := store.EnsureWorkspace("alice")
	require.NoError(t, err)
	repoPath := filepath.Join(workspace, repo)
	require.NoError(t, os.MkdirAll(repoPath, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "roadmap.md"), []byte(testRoadmap), 0o644))
	return repoPath
}

func TestIssuesCommand(t *testing.T) {
	t.Run("should preview tasks without touching GitHub", func(t *testing.T) {
		container, translations, store := setupIssuesTest(t)
		writeRoadmap(t, store, "tool")

		var buf bytes.Buffer
		cmd := NewIssuesCommandFactory().CreateCommand(translations, container)
		app := &cli.Command{Commands: []*cli.Command{cmd}, Writer: &buf}

		err := app.Run(context.Background(), []string{"grepo2", "issues", "--repo", "tool", "--dry-run"})

		require.NoError(t, err)
		out := buf.String()
		assert.Contains(t, out, "3 tasks parsed from")
		assert.Contains(t, out, "[phase 1] Init project")
		assert.Contains(t, out, "[phase 1] Add CI")
		assert.Contains(t, out, "[phase 2] Build parser")
	})

	t.Run("should create issues and print the summary", func(t *testing.T) {
		container, translations, store := setupIssuesTest(t)
		writeRoadmap(t, store, "tool")

		tracker := new(services.MockIssueTracker)
		tracker.On("CreateIssue", mock.Anything, "alice", "tool", "Init project", mock.Anything, []string{"enhancement", "phase-1"}).
			Return(&models.Issue{Number: 10, Title: "Init project"}, nil)
		tracker.On("CreateIssue", mock.Anything, "alice", "tool", "Add CI", mock.Anything, mock.Anything).
			Return(nil, errors.New("boom"))
		tracker.On("CreateIssue", mock.Anything, "alice", "tool", "Build parser", mock.Anything, []string{"enhancement", "phase-2"}).
			Return(&models.Issue{Number: 11, Title: "Build parser"}, nil)

		container.SetRoadmapService(services.NewRoadmapService(nil, tracker, services.WithSyncDelay(0)))

		var buf bytes.Buffer
		cmd := NewIssuesCommandFactory().CreateCommand(translations, container)
		app := &cli.Command{Commands: []*cli.Command{cmd}, Writer: &buf}

		err := app.Run(context.Background(), []string{"grepo2", "issues", "--repo", "tool"})

		require.NoError(t, err)
		out := buf.String()
		assert.Contains(t, out, "Created issue #10: Init project")
		assert.Contains(t, out, "Failed: Add CI (boom)")
		assert.Contains(t, out, "Created issue #11: Build parser")
		assert.Contains(t, out, "Created issues: 2/3")
		assert.Contains(t, out, "re-running creates duplicate issues")
		tracker.AssertExpectations(t)
	})

	t.Run("should fail when the roadmap is missing", func(t *testing.T) {
		container, translations, store := setupIssuesTest(t)
		_, err := store.EnsureWorkspace("alice")
		require.NoError(t, err)

		cmd := NewIssuesCommandFactory().CreateCommand(translations, container)
		app := &cli.Command{Commands: []*cli.Command{cmd}, Writer: &bytes.Buffer{}}

		err = app.Run(context.Background(), []string{"grepo2", "issues", "--repo", "ghost", "--dry-run"})

		assert.ErrorIs(t, err, apperrors.ErrRoadmapNotFound)
	})
}
