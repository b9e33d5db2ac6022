package codex

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/swerner/grepo2/internal/config"
	"github.com/swerner/grepo2/internal/domain/models"
	"github.com/swerner/grepo2/internal/domain/ports"
	apperrors "github.com/swerner/grepo2/internal/errors"
	"github.com/swerner/grepo2/internal/logging"
)

var _ ports.CodeGenerator = (*Runner)(nil)

const (
	defaultBinary  = "codex"
	defaultTimeout = 5 * time.Minute

	errorTailBytes = 500
)

// Runner shells out to the codex CLI in full-auto mode.
type Runner struct {
	binary  string
	model   string
	token   string
	timeout time.Duration
	log     zerolog.Logger
}

func NewRunner(model config.Model, openRouterToken string) *Runner {
	return &Runner{
		binary:  defaultBinary,
		model:   string(model),
		token:   openRouterToken,
		timeout: defaultTimeout,
		log:     logging.Component("codex"),
	}
}

// NewRunnerWithBinary overrides the executable and timeout. Used by tests.
func NewRunnerWithBinary(binary string, model config.Model, openRouterToken string, timeout time.Duration) *Runner {
	r := NewRunner(model, openRouterToken)
	r.binary = binary
	r.timeout = timeout
	return r
}

func (r *Runner) Available() error {
	if _, err := exec.LookPath(r.binary); err != nil {
		return apperrors.ErrCodexNotFound.WithError(err)
	}
	return nil
}

// Run executes codex against the repository at repoPath with the assembled
// prompt, capturing combined output. The process is bounded by the runner's
// timeout; a run that exceeds it is killed and reported as a timeout with
// whatever output it produced.
func (r *Runner) Run(ctx context.Context, repoPath, prompt string) (*models.CodexResult, error) {
	runCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, r.binary, "exec", "--full-auto", "--model", r.model, prompt)
	cmd.Dir = repoPath
	cmd.Env = openRouterEnv(r.token)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	r.log.Info().Str("model", r.model).Str("dir", repoPath).Msg("starting codex run")

	start := time.Now()
	err := cmd.Run()

	result := &models.CodexResult{
		Output:   output.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return result, apperrors.ErrCodexTimeout.WithContext("timeout", r.timeout.String())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, apperrors.ErrCodexFailed.WithError(err).
				WithContext("stderr", tail(result.Output, errorTailBytes))
		}
		return result, apperrors.ErrCodexFailed.WithError(err)
	}

	r.log.Info().Dur("duration", result.Duration).Int("bytes", len(result.Output)).Msg("codex run finished")
	return result, nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return strings.ToValidUTF8(s[len(s)-n:], "")
}
