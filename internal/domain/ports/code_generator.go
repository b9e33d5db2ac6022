package ports

import (
	"context"

	"github.com/swerner/grepo2/internal/domain/models"
)

// CodeGenerator drives an external coding agent over a checked-out
// repository.
type CodeGenerator interface {
	// Available reports whether the agent binary can be executed.
	Available() error
	Run(ctx context.Context, repoPath, prompt string) (*models.CodexResult, error)
}
