package github

import (
	"context"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/mock"
)

type MockIssuesService struct {
	mock.Mock
}

func (m *MockIssuesService) Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error) {
	args := m.Called(ctx, owner, repo, issue)
	return issueOrNil(args.Get(0)), responseOrNil(args.Get(1)), args.Error(2)
}

func (m *MockIssuesService) Edit(ctx context.Context, owner, repo string, number int, issue *github.IssueRequest) (*github.Issue, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, issue)
	return issueOrNil(args.Get(0)), responseOrNil(args.Get(1)), args.Error(2)
}

func (m *MockIssuesService) ListByRepo(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	var issues []*github.Issue
	if args.Get(0) != nil {
		issues = args.Get(0).([]*github.Issue)
	}
	return issues, responseOrNil(args.Get(1)), args.Error(2)
}

func (m *MockIssuesService) ListComments(ctx context.Context, owner, repo string, number int, opts *github.IssueListCommentsOptions) ([]*github.IssueComment, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts)
	var comments []*github.IssueComment
	if args.Get(0) != nil {
		comments = args.Get(0).([]*github.IssueComment)
	}
	return comments, responseOrNil(args.Get(1)), args.Error(2)
}

func (m *MockIssuesService) CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, comment)
	var created *github.IssueComment
	if args.Get(0) != nil {
		created = args.Get(0).(*github.IssueComment)
	}
	return created, responseOrNil(args.Get(1)), args.Error(2)
}

func (m *MockIssuesService) AddLabelsToIssue(ctx context.Context, owner, repo string, number int, labels []string) ([]*github.Label, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, labels)
	var added []*github.Label
	if args.Get(0) != nil {
		added = args.Get(0).([]*github.Label)
	}
	return added, responseOrNil(args.Get(1)), args.Error(2)
}

type MockRepositoriesService struct {
	mock.Mock
}

func (m *MockRepositoriesService) Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error) {
	args := m.Called(ctx, owner, repo)
	return repoOrNil(args.Get(0)), responseOrNil(args.Get(1)), args.Error(2)
}

func (m *MockRepositoriesService) Create(ctx context.Context, org string, repo *github.Repository) (*github.Repository, *github.Response, error) {
	args := m.Called(ctx, org, repo)
	return repoOrNil(args.Get(0)), responseOrNil(args.Get(1)), args.Error(2)
}

func (m *MockRepositoriesService) Edit(ctx context.Context, owner, repo string, repository *github.Repository) (*github.Repository, *github.Response, error) {
	args := m.Called(ctx, owner, repo, repository)
	return repoOrNil(args.Get(0)), responseOrNil(args.Get(1)), args.Error(2)
}

func (m *MockRepositoriesService) Delete(ctx context.Context, owner, repo string) (*github.Response, error) {
	args := m.Called(ctx, owner, repo)
	return responseOrNil(args.Get(0)), args.Error(1)
}

func (m *MockRepositoriesService) ListByAuthenticatedUser(ctx context.Context, opts *github.RepositoryListByAuthenticatedUserOptions) ([]*github.Repository, *github.Response, error) {
	args := m.Called(ctx, opts)
	var repos []*github.Repository
	if args.Get(0) != nil {
		repos = args.Get(0).([]*github.Repository)
	}
	return repos, responseOrNil(args.Get(1)), args.Error(2)
}

type MockUsersService struct {
	mock.Mock
}

func (m *MockUsersService) Get(ctx context.Context, user string) (*github.User, *github.Response, error) {
	args := m.Called(ctx, user)
	var u *github.User
	if args.Get(0) != nil {
		u = args.Get(0).(*github.User)
	}
	return u, responseOrNil(args.Get(1)), args.Error(2)
}

func issueOrNil(v interface{}) *github.Issue {
	if v == nil {
		return nil
	}
	return v.(*github.Issue)
}

func repoOrNil(v interface{}) *github.Repository {
	if v == nil {
		return nil
	}
	return v.(*github.Repository)
}

func responseOrNil(v interface{}) *github.Response {
	if v == nil {
		return nil
	}
	return v.(*github.Response)
}
