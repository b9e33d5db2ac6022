package github

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/go-github/v80/github"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/swerner/grepo2/internal/domain/models"
	apperrors "github.com/swerner/grepo2/internal/errors"
	"github.com/swerner/grepo2/internal/logging"
)

// Narrow views of the go-github services the client actually touches,
// so tests can substitute them.
type (
	IssuesService interface {
		Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
		Edit(ctx context.Context, owner, repo string, number int, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
		ListByRepo(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error)
		ListComments(ctx context.Context, owner, repo string, number int, opts *github.IssueListCommentsOptions) ([]*github.IssueComment, *github.Response, error)
		CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error)
		AddLabelsToIssue(ctx context.Context, owner, repo string, number int, labels []string) ([]*github.Label, *github.Response, error)
	}

	RepositoriesService interface {
		Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error)
		Create(ctx context.Context, org string, repo *github.Repository) (*github.Repository, *github.Response, error)
		Edit(ctx context.Context, owner, repo string, repository *github.Repository) (*github.Repository, *github.Response, error)
		Delete(ctx context.Context, owner, repo string) (*github.Response, error)
		ListByAuthenticatedUser(ctx context.Context, opts *github.RepositoryListByAuthenticatedUserOptions) ([]*github.Repository, *github.Response, error)
	}

	UsersService interface {
		Get(ctx context.Context, user string) (*github.User, *github.Response, error)
	}
)

type Client struct {
	issues IssuesService
	repos  RepositoriesService
	users  UsersService
	log    zerolog.Logger
}

func NewClient(token string) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	gh := github.NewClient(httpClient)
	return &Client{
		issues: gh.Issues,
		repos:  gh.Repositories,
		users:  gh.Users,
		log:    logging.Component("github"),
	}
}

func NewClientWithServices(issues IssuesService, repos RepositoriesService, users UsersService) *Client {
	return &Client{
		issues: issues,
		repos:  repos,
		users:  users,
		log:    logging.Component("github"),
	}
}

// toAppError converts a go-github failure into the grepo2 taxonomy.
// API rejections carry the response body's own message so the user sees
// it verbatim; transport failures become a generic GitHub error.
func toAppError(err error) *apperrors.AppError {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return apperrors.ErrGitHubRateLimit.WithError(err)
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) {
		base := apperrors.NewAppError(apperrors.TypeGitHub, "GitHub rejected the request", nil)
		if ghErr.Response != nil {
			switch ghErr.Response.StatusCode {
			case http.StatusUnauthorized:
				base = apperrors.ErrGitHubTokenInvalid
			case http.StatusForbidden:
				base = apperrors.ErrGitHubInsufficientPerms
			case http.StatusNotFound:
				base = apperrors.ErrRepositoryNotFound
			}
		}
		return base.WithError(err).WithContext("message", ghErr.Message)
	}

	return apperrors.NewAppError(apperrors.TypeGitHub, "GitHub request failed", err)
}

func repoFromGitHub(repo *github.Repository) models.Repository {
	return models.Repository{
		Name:          repo.GetName(),
		FullName:      repo.GetFullName(),
		Description:   repo.GetDescription(),
		Private:       repo.GetPrivate(),
		CloneURL:      repo.GetCloneURL(),
		HTMLURL:       repo.GetHTMLURL(),
		DefaultBranch: repo.GetDefaultBranch(),
	}
}

func issueFromGitHub(issue *github.Issue) models.Issue {
	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}

	return models.Issue{
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		Body:      issue.GetBody(),
		State:     issue.GetState(),
		Labels:    labels,
		URL:       issue.GetHTMLURL(),
		CreatedAt: issue.GetCreatedAt().Time,
	}
}
