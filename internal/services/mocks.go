package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/swerner/grepo2/internal/domain/models"
)

type (
	MockGitService struct {
		mock.Mock
	}

	MockRepoManager struct {
		mock.Mock
	}

	MockIssueTracker struct {
		mock.Mock
	}

	MockRoadmapGenerator struct {
		mock.Mock
	}

	MockCodeGenerator struct {
		mock.Mock
	}

	MockCompletionAnalyzer struct {
		mock.Mock
	}
)

func (m *MockGitService) IsRepository(path string) bool {
	args := m.Called(path)
	return args.Bool(0)
}

func (m *MockGitService) CurrentBranch(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

func (m *MockGitService) Status(ctx context.Context, path string) (*models.RepoStatus, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RepoStatus), args.Error(1)
}

func (m *MockGitService) Clone(ctx context.Context, url, dest string) error {
	args := m.Called(ctx, url, dest)
	return args.Error(0)
}

func (m *MockGitService) AddAll(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockGitService) Commit(ctx context.Context, path, message string) error {
	args := m.Called(ctx, path, message)
	return args.Error(0)
}

func (m *MockGitService) AddAllAndCommit(ctx context.Context, path, message string) error {
	args := m.Called(ctx, path, message)
	return args.Error(0)
}

func (m *MockGitService) SoftPush(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockGitService) SoftPull(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockGitService) HardPush(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockGitService) HardPull(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockGitService) ForcePush(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockGitService) ForcePull(ctx context.Context, path, url string) error {
	args := m.Called(ctx, path, url)
	return args.Error(0)
}

func (m *MockGitService) RecentCommits(ctx context.Context, path string, limit int) ([]models.Commit, error) {
	args := m.Called(ctx, path, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Commit), args.Error(1)
}

func (m *MockRepoManager) AuthenticatedUser(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockRepoManager) ListRepositories(ctx context.Context) ([]models.Repository, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Repository), args.Error(1)
}

func (m *MockRepoManager) CreateRepository(ctx context.Context, name, description string, private bool) (*models.Repository, error) {
	args := m.Called(ctx, name, description, private)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Repository), args.Error(1)
}

func (m *MockRepoManager) UpdateRepository(ctx context.Context, owner, repo, description string, private bool) (*models.Repository, error) {
	args := m.Called(ctx, owner, repo, description, private)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Repository), args.Error(1)
}

func (m *MockRepoManager) DeleteRepository(ctx context.Context, owner, repo string) error {
	args := m.Called(ctx, owner, repo)
	return args.Error(0)
}

func (m *MockRepoManager) RepositoryExists(ctx context.Context, owner, repo string) (bool, error) {
	args := m.Called(ctx, owner, repo)
	return args.Bool(0), args.Error(1)
}

func (m *MockIssueTracker) CreateIssue(ctx context.Context, owner, repo, title, body string, labels []string) (*models.Issue, error) {
	args := m.Called(ctx, owner, repo, title, body, labels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Issue), args.Error(1)
}

func (m *MockIssueTracker) ListIssues(ctx context.Context, owner, repo, state string, labels []string) ([]models.Issue, error) {
	args := m.Called(ctx, owner, repo, state, labels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Issue), args.Error(1)
}

func (m *MockIssueTracker) ListIssueComments(ctx context.Context, owner, repo string, number int) ([]models.IssueComment, error) {
	args := m.Called(ctx, owner, repo, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.IssueComment), args.Error(1)
}

func (m *MockIssueTracker) AddIssueComment(ctx context.Context, owner, repo string, number int, body string) error {
	args := m.Called(ctx, owner, repo, number, body)
	return args.Error(0)
}

func (m *MockIssueTracker) AddIssueLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	args := m.Called(ctx, owner, repo, number, labels)
	return args.Error(0)
}

func (m *MockIssueTracker) SetIssueState(ctx context.Context, owner, repo string, number int, state string) error {
	args := m.Called(ctx, owner, repo, number, state)
	return args.Error(0)
}

func (m *MockRoadmapGenerator) GenerateRoadmap(ctx context.Context, projectName, description string, onDelta func(string)) (string, error) {
	args := m.Called(ctx, projectName, description, onDelta)
	return args.String(0), args.Error(1)
}

func (m *MockCodeGenerator) Available() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockCodeGenerator) Run(ctx context.Context, repoPath, prompt string) (*models.CodexResult, error) {
	args := m.Called(ctx, repoPath, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CodexResult), args.Error(1)
}

func (m *MockCompletionAnalyzer) AnalyzeCompletion(ctx context.Context, issue models.Issue, codexOutput string) (*models.CompletionVerdict, error) {
	args := m.Called(ctx, issue, codexOutput)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CompletionVerdict), args.Error(1)
}
