package ports

import (
	"context"

	"github.com/swerner/grepo2/internal/domain/models"
)

// CompletionAnalyzer asks a model whether a codex run resolved an issue.
type CompletionAnalyzer interface {
	AnalyzeCompletion(ctx context.Context, issue models.Issue, codexOutput string) (*models.CompletionVerdict, error)
}
