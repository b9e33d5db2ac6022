package ports

import (
	"context"

	"github.com/swerner/grepo2/internal/domain/models"
)

// RepoManager covers the repository-level GitHub API surface.
type RepoManager interface {
	// AuthenticatedUser resolves the login of the token owner. Used to
	// validate a token during setup.
	AuthenticatedUser(ctx context.Context) (string, error)
	ListRepositories(ctx context.Context) ([]models.Repository, error)
	CreateRepository(ctx context.Context, name, description string, private bool) (*models.Repository, error)
	UpdateRepository(ctx context.Context, owner, repo, description string, private bool) (*models.Repository, error)
	DeleteRepository(ctx context.Context, owner, repo string) error
	RepositoryExists(ctx context.Context, owner, repo string) (bool, error)
}
