package ports

import (
	"context"

	"github.com/swerner/grepo2/internal/domain/models"
)

// IssueTracker covers the issue-level GitHub API surface.
type IssueTracker interface {
	CreateIssue(ctx context.Context, owner, repo, title, body string, labels []string) (*models.Issue, error)
	ListIssues(ctx context.Context, owner, repo, state string, labels []string) ([]models.Issue, error)
	ListIssueComments(ctx context.Context, owner, repo string, number int) ([]models.IssueComment, error)
	AddIssueComment(ctx context.Context, owner, repo string, number int, body string) error
	AddIssueLabels(ctx context.Context, owner, repo string, number int, labels []string) error
	SetIssueState(ctx context.Context, owner, repo string, number int, state string) error
}
