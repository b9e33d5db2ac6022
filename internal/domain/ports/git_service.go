package ports

import (
	"context"

	"github.com/swerner/grepo2/internal/domain/models"
)

// GitService wraps the git binary for everything grepo2 does to a
// working tree. All operations run against the repository at path.
type GitService interface {
	IsRepository(path string) bool
	CurrentBranch(ctx context.Context, path string) (string, error)
	Status(ctx context.Context, path string) (*models.RepoStatus, error)
	Clone(ctx context.Context, url, dest string) error
	AddAll(ctx context.Context, path string) error
	Commit(ctx context.Context, path, message string) error
	AddAllAndCommit(ctx context.Context, path, message string) error

	// Every push and pull variant auto-commits leftover changes first.
	// SoftPush and SoftPull refuse to touch anything that would need
	// force; HardPush and HardPull overwrite the losing side. ForcePull
	// re-clones from url when a reset cannot recover the tree.
	SoftPush(ctx context.Context, path string) error
	SoftPull(ctx context.Context, path string) error
	HardPush(ctx context.Context, path string) error
	HardPull(ctx context.Context, path string) error
	ForcePush(ctx context.Context, path string) error
	ForcePull(ctx context.Context, path, url string) error

	RecentCommits(ctx context.Context, path string, limit int) ([]models.Commit, error)
}
