package github

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/swerner/grepo2/internal/errors"
)

func newTestClient(issues *MockIssuesService, repos *MockRepositoriesService, users *MockUsersService) *Client {
	return NewClientWithServices(issues, repos, users)
}

func ghResponse(status, nextPage int) *github.Response {
	return &github.Response{
		Response: &http.Response{StatusCode: status},
		NextPage: nextPage,
	}
}

func ghErrorResponse(status int, message string) *github.ErrorResponse {
	return &github.ErrorResponse{
		Response: &http.Response{StatusCode: status},
		Message:  message,
	}
}

func TestClient_AuthenticatedUser(t *testing.T) {
	t.Run("should return the login of the token owner", func(t *testing.T) {
		users := &MockUsersService{}
		client := newTestClient(&MockIssuesService{}, &MockRepositoriesService{}, users)

		users.On("Get", mock.Anything, "").
			Return(&github.User{Login: github.Ptr("alice")}, ghResponse(http.StatusOK, 0), nil).Once()

		login, err := client.AuthenticatedUser(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "alice", login)
		users.AssertExpectations(t)
	})

	t.Run("should map a 401 to an invalid token error with the API message", func(t *testing.T) {
		users := &MockUsersService{}
		client := newTestClient(&MockIssuesService{}, &MockRepositoriesService{}, users)

		users.On("Get", mock.Anything, "").
			Return(nil, ghResponse(http.StatusUnauthorized, 0), ghErrorResponse(http.StatusUnauthorized, "Bad credentials")).Once()

		_, err := client.AuthenticatedUser(context.Background())

		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.TypeGitHub, appErr.Type)
		assert.Equal(t, apperrors.ErrGitHubTokenInvalid.Message, appErr.Message)
		assert.Contains(t, err.Error(), "Bad credentials")
	})
}

func TestClient_ListRepositories(t *testing.T) {
	t.Run("should collect every page", func(t *testing.T) {
		repos := &MockRepositoriesService{}
		client := newTestClient(&MockIssuesService{}, repos, &MockUsersService{})

		page1 := []*github.Repository{
			{Name: github.Ptr("alpha"), FullName: github.Ptr("alice/alpha"), Private: github.Ptr(true)},
		}
		page2 := []*github.Repository{
			{Name: github.Ptr("beta"), FullName: github.Ptr("alice/beta"), DefaultBranch: github.Ptr("main")},
		}

		repos.On("ListByAuthenticatedUser", mock.Anything, mock.MatchedBy(func(opts *github.RepositoryListByAuthenticatedUserOptions) bool {
			return opts.Page == 0 && opts.Sort == "full_name"
		})).Return(page1, ghResponse(http.StatusOK, 2), nil).Once()

		repos.On("ListByAuthenticatedUser", mock.Anything, mock.MatchedBy(func(opts *github.RepositoryListByAuthenticatedUserOptions) bool {
			return opts.Page == 2
		})).Return(page2, ghResponse(http.StatusOK, 0), nil).Once()

		result, err := client.ListRepositories(context.Background())

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "alpha", result[0].Name)
		assert.True(t, result[0].Private)
		assert.Equal(t, "alice/beta", result[1].FullName)
		assert.Equal(t, "main", result[1].DefaultBranch)
		repos.AssertExpectations(t)
	})
}

func TestClient_CreateRepository(t *testing.T) {
	t.Run("should create a private auto-initialized repository", func(t *testing.T) {
		repos := &MockRepositoriesService{}
		client := newTestClient(&MockIssuesService{}, repos, &MockUsersService{})

		created := &github.Repository{
			Name:          github.Ptr("tool"),
			FullName:      github.Ptr("alice/tool"),
			Private:       github.Ptr(true),
			CloneURL:      github.Ptr("https://github.com/alice/tool.git"),
			DefaultBranch: github.Ptr("main"),
		}

		repos.On("Create", mock.Anything, "", mock.MatchedBy(func(repo *github.Repository) bool {
			return repo.GetName() == "tool" &&
				repo.GetDescription() == "a small tool" &&
				repo.GetPrivate() &&
				repo.GetAutoInit()
		})).Return(created, ghResponse(http.StatusCreated, 0), nil).Once()

		result, err := client.CreateRepository(context.Background(), "tool", "a small tool", true)

		require.NoError(t, err)
		assert.Equal(t, "alice/tool", result.FullName)
		assert.Equal(t, "https://github.com/alice/tool.git", result.CloneURL)
		repos.AssertExpectations(t)
	})

	t.Run("should report an already existing repository on 422", func(t *testing.T) {
		repos := &MockRepositoriesService{}
		client := newTestClient(&MockIssuesService{}, repos, &MockUsersService{})

		repos.On("Create", mock.Anything, "", mock.Anything).
			Return(nil, ghResponse(http.StatusUnprocessableEntity, 0), ghErrorResponse(http.StatusUnprocessableEntity, "name already exists on this account")).Once()

		_, err := client.CreateRepository(context.Background(), "tool", "", false)

		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrRepositoryExists.Message, appErr.Message)
		assert.Equal(t, "tool", appErr.Context["repo"])
	})
}

func TestClient_RepositoryExists(t *testing.T) {
	t.Run("should return true when the repository is reachable", func(t *testing.T) {
		repos := &MockRepositoriesService{}
		client := newTestClient(&MockIssuesService{}, repos, &MockUsersService{})

		repos.On("Get", mock.Anything, "alice", "tool").
			Return(&github.Repository{Name: github.Ptr("tool")}, ghResponse(http.StatusOK, 0), nil).Once()

		exists, err := client.RepositoryExists(context.Background(), "alice", "tool")

		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("should return false without error on 404", func(t *testing.T) {
		repos := &MockRepositoriesService{}
		client := newTestClient(&MockIssuesService{}, repos, &MockUsersService{})

		repos.On("Get", mock.Anything, "alice", "ghost").
			Return(nil, ghResponse(http.StatusNotFound, 0), ghErrorResponse(http.StatusNotFound, "Not Found")).Once()

		exists, err := client.RepositoryExists(context.Background(), "alice", "ghost")

		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("should surface other failures", func(t *testing.T) {
		repos := &MockRepositoriesService{}
		client := newTestClient(&MockIssuesService{}, repos, &MockUsersService{})

		repos.On("Get", mock.Anything, "alice", "tool").
			Return(nil, ghResponse(http.StatusForbidden, 0), ghErrorResponse(http.StatusForbidden, "Must have admin rights")).Once()

		_, err := client.RepositoryExists(context.Background(), "alice", "tool")

		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrGitHubInsufficientPerms.Message, appErr.Message)
	})
}

func TestClient_DeleteRepository(t *testing.T) {
	t.Run("should delete the repository", func(t *testing.T) {
		repos := &MockRepositoriesService{}
		client := newTestClient(&MockIssuesService{}, repos, &MockUsersService{})

		repos.On("Delete", mock.Anything, "alice", "tool").
			Return(ghResponse(http.StatusNoContent, 0), nil).Once()

		err := client.DeleteRepository(context.Background(), "alice", "tool")

		require.NoError(t, err)
		repos.AssertExpectations(t)
	})
}

func TestClient_CreateIssue(t *testing.T) {
	t.Run("should send title, body and labels", func(t *testing.T) {
		issues := &MockIssuesService{}
		client := newTestClient(issues, &MockRepositoriesService{}, &MockUsersService{})

		created := &github.Issue{
			Number:  github.Ptr(7),
			Title:   github.Ptr("Add login"),
			State:   github.Ptr("open"),
			HTMLURL: github.Ptr("https://github.com/alice/tool/issues/7"),
		}

		issues.On("Create", mock.Anything, "alice", "tool", mock.MatchedBy(func(req *github.IssueRequest) bool {
			return req.GetTitle() == "Add login" &&
				req.GetBody() == "Support OAuth." &&
				req.Labels != nil && len(*req.Labels) == 2
		})).Return(created, ghResponse(http.StatusCreated, 0), nil).Once()

		issue, err := client.CreateIssue(context.Background(), "alice", "tool", "Add login", "Support OAuth.", []string{"enhancement", "phase-1"})

		require.NoError(t, err)
		assert.Equal(t, 7, issue.Number)
		assert.Equal(t, "https://github.com/alice/tool/issues/7", issue.URL)
		issues.AssertExpectations(t)
	})
}

func TestClient_ListIssues(t *testing.T) {
	t.Run("should filter out pull requests and keep creation order", func(t *testing.T) {
		issues := &MockIssuesService{}
		client := newTestClient(issues, &MockRepositoriesService{}, &MockUsersService{})

		older := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		page := []*github.Issue{
			{
				Number:    github.Ptr(1),
				Title:     github.Ptr("Add login"),
				State:     github.Ptr("open"),
				CreatedAt: &github.Timestamp{Time: older},
				Labels:    []*github.Label{{Name: github.Ptr("enhancement")}},
			},
			{
				Number:           github.Ptr(2),
				Title:            github.Ptr("Some PR"),
				PullRequestLinks: &github.PullRequestLinks{},
			},
			{
				Number: github.Ptr(3),
				Title:  github.Ptr("Fix crash"),
				State:  github.Ptr("open"),
			},
		}

		issues.On("ListByRepo", mock.Anything, "alice", "tool", mock.MatchedBy(func(opts *github.IssueListByRepoOptions) bool {
			return opts.State == "open" &&
				len(opts.Labels) == 1 && opts.Labels[0] == "in-work" &&
				opts.Sort == "created" && opts.Direction == "asc"
		})).Return(page, ghResponse(http.StatusOK, 0), nil).Once()

		result, err := client.ListIssues(context.Background(), "alice", "tool", "open", []string{"in-work"})

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, 1, result[0].Number)
		assert.Equal(t, older, result[0].CreatedAt)
		assert.Equal(t, []string{"enhancement"}, result[0].Labels)
		assert.Equal(t, 3, result[1].Number)
		issues.AssertExpectations(t)
	})
}

func TestClient_ListIssueComments(t *testing.T) {
	t.Run("should map author and body", func(t *testing.T) {
		issues := &MockIssuesService{}
		client := newTestClient(issues, &MockRepositoriesService{}, &MockUsersService{})

		comments := []*github.IssueComment{
			{
				User:      &github.User{Login: github.Ptr("bob")},
				Body:      github.Ptr("Looks done to me."),
				CreatedAt: &github.Timestamp{Time: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
			},
		}

		issues.On("ListComments", mock.Anything, "alice", "tool", 7, mock.Anything).
			Return(comments, ghResponse(http.StatusOK, 0), nil).Once()

		result, err := client.ListIssueComments(context.Background(), "alice", "tool", 7)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "bob", result[0].Author)
		assert.Equal(t, "Looks done to me.", result[0].Body)
	})
}

func TestClient_AddIssueComment(t *testing.T) {
	t.Run("should post the comment body", func(t *testing.T) {
		issues := &MockIssuesService{}
		client := newTestClient(issues, &MockRepositoriesService{}, &MockUsersService{})

		issues.On("CreateComment", mock.Anything, "alice", "tool", 7, mock.MatchedBy(func(comment *github.IssueComment) bool {
			return comment.GetBody() == "Analysis: done."
		})).Return(&github.IssueComment{}, ghResponse(http.StatusCreated, 0), nil).Once()

		err := client.AddIssueComment(context.Background(), "alice", "tool", 7, "Analysis: done.")

		require.NoError(t, err)
		issues.AssertExpectations(t)
	})
}

func TestClient_AddIssueLabels(t *testing.T) {
	t.Run("should attach the labels", func(t *testing.T) {
		issues := &MockIssuesService{}
		client := newTestClient(issues, &MockRepositoriesService{}, &MockUsersService{})

		issues.On("AddLabelsToIssue", mock.Anything, "alice", "tool", 7, []string{"in-work"}).
			Return([]*github.Label{{Name: github.Ptr("in-work")}}, ghResponse(http.StatusOK, 0), nil).Once()

		err := client.AddIssueLabels(context.Background(), "alice", "tool", 7, []string{"in-work"})

		require.NoError(t, err)
		issues.AssertExpectations(t)
	})
}

func TestClient_SetIssueState(t *testing.T) {
	t.Run("should close the issue", func(t *testing.T) {
		issues := &MockIssuesService{}
		client := newTestClient(issues, &MockRepositoriesService{}, &MockUsersService{})

		issues.On("Edit", mock.Anything, "alice", "tool", 7, mock.MatchedBy(func(req *github.IssueRequest) bool {
			return req.GetState() == "closed"
		})).Return(&github.Issue{State: github.Ptr("closed")}, ghResponse(http.StatusOK, 0), nil).Once()

		err := client.SetIssueState(context.Background(), "alice", "tool", 7, "closed")

		require.NoError(t, err)
		issues.AssertExpectations(t)
	})
}

func TestToAppError(t *testing.T) {
	t.Run("should detect rate limiting", func(t *testing.T) {
		err := toAppError(&github.RateLimitError{Message: "API rate limit exceeded"})
		assert.Equal(t, apperrors.ErrGitHubRateLimit.Message, err.Message)
	})

	t.Run("should wrap transport failures generically", func(t *testing.T) {
		err := toAppError(errors.New("dial tcp: connection refused"))
		assert.Equal(t, apperrors.TypeGitHub, err.Type)
		assert.Contains(t, err.Error(), "GitHub request failed")
	})
}
