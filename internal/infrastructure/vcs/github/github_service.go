package github

import (
	"context"
	"net/http"

	"github.com/google/go-github/v80/github"

	"github.com/swerner/grepo2/internal/domain/models"
	"github.com/swerner/grepo2/internal/domain/ports"
	apperrors "github.com/swerner/grepo2/internal/errors"
)

var (
	_ ports.RepoManager  = (*Client)(nil)
	_ ports.IssueTracker = (*Client)(nil)
)

const perPage = 100

func (c *Client) AuthenticatedUser(ctx context.Context) (string, error) {
	user, _, err := c.users.Get(ctx, "")
	if err != nil {
		return "", toAppError(err)
	}
	return user.GetLogin(), nil
}

func (c *Client) ListRepositories(ctx context.Context) ([]models.Repository, error) {
	opts := &github.RepositoryListByAuthenticatedUserOptions{
		Sort:        "full_name",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var all []models.Repository
	for {
		repos, resp, err := c.repos.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, toAppError(err)
		}
		for _, repo := range repos {
			all = append(all, repoFromGitHub(repo))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	c.log.Debug().Int("count", len(all)).Msg("listed repositories")
	return all, nil
}

// CreateRepository creates a repository under the authenticated user with an
// initial commit, so a clone right after creation has a checked-out branch.
func (c *Client) CreateRepository(ctx context.Context, name, description string, private bool) (*models.Repository, error) {
	repo := &github.Repository{
		Name:        github.Ptr(name),
		Description: github.Ptr(description),
		Private:     github.Ptr(private),
		AutoInit:    github.Ptr(true),
	}

	created, resp, err := c.repos.Create(ctx, "", repo)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnprocessableEntity {
			return nil, apperrors.ErrRepositoryExists.WithError(err).WithContext("repo", name)
		}
		return nil, toAppError(err)
	}

	c.log.Info().Str("repo", created.GetFullName()).Msg("repository created")
	result := repoFromGitHub(created)
	return &result, nil
}

func (c *Client) UpdateRepository(ctx context.Context, owner, repo, description string, private bool) (*models.Repository, error) {
	patch := &github.Repository{
		Description: github.Ptr(description),
		Private:     github.Ptr(private),
	}

	updated, _, err := c.repos.Edit(ctx, owner, repo, patch)
	if err != nil {
		return nil, toAppError(err)
	}

	result := repoFromGitHub(updated)
	return &result, nil
}

func (c *Client) DeleteRepository(ctx context.Context, owner, repo string) error {
	if _, err := c.repos.Delete(ctx, owner, repo); err != nil {
		return toAppError(err)
	}
	c.log.Info().Str("owner", owner).Str("repo", repo).Msg("repository deleted")
	return nil
}

func (c *Client) RepositoryExists(ctx context.Context, owner, repo string) (bool, error) {
	_, resp, err := c.repos.Get(ctx, owner, repo)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, toAppError(err)
	}
	return true, nil
}

func (c *Client) CreateIssue(ctx context.Context, owner, repo, title, body string, labels []string) (*models.Issue, error) {
	req := &github.IssueRequest{
		Title: github.Ptr(title),
		Body:  github.Ptr(body),
	}
	if len(labels) > 0 {
		req.Labels = &labels
	}

	issue, _, err := c.issues.Create(ctx, owner, repo, req)
	if err != nil {
		return nil, toAppError(err)
	}

	c.log.Debug().Int("number", issue.GetNumber()).Str("title", title).Msg("issue created")
	result := issueFromGitHub(issue)
	return &result, nil
}

// ListIssues returns issues sorted oldest first. Pull requests, which the
// GitHub issues API reports alongside issues, are filtered out.
func (c *Client) ListIssues(ctx context.Context, owner, repo, state string, labels []string) ([]models.Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State:       state,
		Labels:      labels,
		Sort:        "created",
		Direction:   "asc",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var all []models.Issue
	for {
		issues, resp, err := c.issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			return nil, toAppError(err)
		}
		for _, issue := range issues {
			if issue.IsPullRequest() {
				continue
			}
			all = append(all, issueFromGitHub(issue))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}

	return all, nil
}

func (c *Client) ListIssueComments(ctx context.Context, owner, repo string, number int) ([]models.IssueComment, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var all []models.IssueComment
	for {
		comments, resp, err := c.issues.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, toAppError(err)
		}
		for _, comment := range comments {
			all = append(all, models.IssueComment{
				Author:    comment.GetUser().GetLogin(),
				Body:      comment.GetBody(),
				CreatedAt: comment.GetCreatedAt().Time,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

func (c *Client) AddIssueComment(ctx context.Context, owner, repo string, number int, body string) error {
	comment := &github.IssueComment{Body: github.Ptr(body)}
	if _, _, err := c.issues.CreateComment(ctx, owner, repo, number, comment); err != nil {
		return toAppError(err)
	}
	return nil
}

func (c *Client) AddIssueLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	if _, _, err := c.issues.AddLabelsToIssue(ctx, owner, repo, number, labels); err != nil {
		return toAppError(err)
	}
	return nil
}

func (c *Client) SetIssueState(ctx context.Context, owner, repo string, number int, state string) error {
	req := &github.IssueRequest{State: github.Ptr(state)}
	if _, _, err := c.issues.Edit(ctx, owner, repo, number, req); err != nil {
		return toAppError(err)
	}
	c.log.Debug().Int("number", number).Str("state", state).Msg("issue state changed")
	return nil
}
