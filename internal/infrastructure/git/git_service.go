package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/swerner/grepo2/internal/domain/models"
	"github.com/swerner/grepo2/internal/domain/ports"
	apperrors "github.com/swerner/grepo2/internal/errors"
	"github.com/swerner/grepo2/internal/logging"
)

var _ ports.GitService = (*GitService)(nil)

// credentialPattern matches userinfo embedded in remote URLs so tokens
// never reach logs or error messages.
var credentialPattern = regexp.MustCompile(`(https?://)[^@/\s]+@`)

type GitService struct {
	log zerolog.Logger
}

func NewGitService() *GitService {
	return &GitService{log: logging.Component("git")}
}

// git runs one git command in dir and returns stdout and scrubbed stderr.
func (s *GitService) git(ctx context.Context, dir string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	errText := redactCredentials(strings.TrimSpace(stderr.String()))

	s.log.Debug().
		Str("dir", dir).
		Strs("args", args).
		Err(err).
		Msg("git command")

	return stdout.String(), errText, err
}

func redactCredentials(text string) string {
	return credentialPattern.ReplaceAllString(text, "$1")
}

func (s *GitService) IsRepository(path string) bool {
	_, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil
}

func (s *GitService) CurrentBranch(ctx context.Context, path string) (string, error) {
	out, errText, err := s.git(ctx, path, "branch", "--show-current")
	if err != nil {
		return "", apperrors.ErrGetBranch.WithError(err).WithContext("stderr", errText)
	}

	branch := strings.TrimSpace(out)
	if branch == "" {
		return "", apperrors.ErrNoBranch
	}
	return branch, nil
}

func (s *GitService) Status(ctx context.Context, path string) (*models.RepoStatus, error) {
	branch, err := s.CurrentBranch(ctx, path)
	if err != nil {
		return nil, err
	}

	out, errText, err := s.git(ctx, path, "status", "--porcelain")
	if err != nil {
		return nil, apperrors.ErrGitStatus.WithError(err).WithContext("stderr", errText)
	}

	status := &models.RepoStatus{Branch: branch}
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 3 {
			file := strings.TrimSpace(line[3:])
			if file != "" {
				status.ChangedFiles = append(status.ChangedFiles, file)
			}
		}
	}
	return status, nil
}

func (s *GitService) Clone(ctx context.Context, url, dest string) error {
	_, errText, err := s.git(ctx, "", "clone", url, dest)
	if err != nil {
		return apperrors.ErrGitClone.WithError(err).WithContext("stderr", errText)
	}
	return nil
}

func (s *GitService) AddAll(ctx context.Context, path string) error {
	_, errText, err := s.git(ctx, path, "add", "-A")
	if err != nil {
		return apperrors.ErrGitAdd.WithError(err).WithContext("stderr", errText)
	}
	return nil
}

func (s *GitService) Commit(ctx context.Context, path, message string) error {
	_, errText, err := s.git(ctx, path, "commit", "-m", message)
	if err != nil {
		return apperrors.ErrCreateCommit.WithError(err).WithContext("stderr", errText)
	}
	return nil
}

// AddAllAndCommit stages everything and commits it, failing with
// ErrNoChanges when the working tree is already clean.
func (s *GitService) AddAllAndCommit(ctx context.Context, path, message string) error {
	if err := s.AddAll(ctx, path); err != nil {
		return err
	}

	out, errText, err := s.git(ctx, path, "status", "--porcelain")
	if err != nil {
		return apperrors.ErrGitStatus.WithError(err).WithContext("stderr", errText)
	}
	if strings.TrimSpace(out) == "" {
		return apperrors.ErrNoChanges
	}

	return s.Commit(ctx, path, message)
}

// commitLeftovers stages and commits whatever is lying around in the
// working tree so a following push or pull starts from a clean state.
// A clean tree is not an error here.
func (s *GitService) commitLeftovers(ctx context.Context, path, message string) error {
	err := s.AddAllAndCommit(ctx, path, message)
	if err != nil && !errors.Is(err, apperrors.ErrNoChanges) {
		return err
	}
	return nil
}

func (s *GitService) SoftPush(ctx context.Context, path string) error {
	if err := s.commitLeftovers(ctx, path, "Auto-commit before soft push"); err != nil {
		return err
	}
	branch, err := s.CurrentBranch(ctx, path)
	if err != nil {
		return err
	}

	_, errText, err := s.git(ctx, path, "push", "origin", branch)
	if err != nil {
		return apperrors.ErrGitPush.WithError(err).WithContext("stderr", errText)
	}
	return nil
}

func (s *GitService) SoftPull(ctx context.Context, path string) error {
	if err := s.commitLeftovers(ctx, path, "Auto-commit before soft pull"); err != nil {
		return err
	}
	branch, err := s.CurrentBranch(ctx, path)
	if err != nil {
		return err
	}

	_, errText, err := s.git(ctx, path, "pull", "--ff-only", "origin", branch)
	if err != nil {
		return apperrors.ErrGitPull.WithError(err).WithContext("stderr", errText)
	}
	return nil
}

func (s *GitService) HardPush(ctx context.Context, path string) error {
	if err := s.commitLeftovers(ctx, path, "Auto-commit before hard push"); err != nil {
		return err
	}
	branch, err := s.CurrentBranch(ctx, path)
	if err != nil {
		return err
	}

	_, errText, err := s.git(ctx, path, "push", "--force-with-lease", "origin", branch)
	if err != nil {
		return apperrors.ErrGitPush.WithError(err).WithContext("stderr", errText)
	}
	return nil
}

// HardPull drops untracked files, then rebases local commits onto the
// remote branch, stashing anything in flight.
func (s *GitService) HardPull(ctx context.Context, path string) error {
	_, errText, err := s.git(ctx, path, "clean", "-fdx")
	if err != nil {
		return apperrors.ErrGitClean.WithError(err).WithContext("stderr", errText)
	}

	branch, err := s.CurrentBranch(ctx, path)
	if err != nil {
		return err
	}

	_, _, _ = s.git(ctx, path, "config", "pull.rebase", "true")

	_, errText, err = s.git(ctx, path, "pull", "--autostash", "origin", branch)
	if err != nil {
		return apperrors.ErrGitPull.WithError(err).WithContext("stderr", errText)
	}
	return nil
}

func (s *GitService) ForcePush(ctx context.Context, path string) error {
	if err := s.commitLeftovers(ctx, path, "Auto-commit before force push"); err != nil {
		return err
	}
	branch, err := s.CurrentBranch(ctx, path)
	if err != nil {
		return err
	}

	_, errText, err := s.git(ctx, path, "push", "--force", "origin", branch)
	if err != nil {
		return apperrors.ErrGitPush.WithError(err).WithContext("stderr", errText)
	}
	return nil
}

// ForcePull makes the local tree match the remote, re-cloning from url
// when the directory no longer holds a usable repository.
func (s *GitService) ForcePull(ctx context.Context, path, url string) error {
	if !s.IsRepository(path) {
		if err := os.RemoveAll(path); err != nil {
			return apperrors.ErrGitClone.WithError(err)
		}
		return s.Clone(ctx, url, path)
	}

	branch, err := s.CurrentBranch(ctx, path)
	if err != nil {
		return err
	}

	_, errText, err := s.git(ctx, path, "fetch", "origin")
	if err != nil {
		return apperrors.ErrGitFetch.WithError(err).WithContext("stderr", errText)
	}

	_, errText, err = s.git(ctx, path, "reset", "--hard", "origin/"+branch)
	if err != nil {
		return apperrors.ErrGitReset.WithError(err).WithContext("stderr", errText)
	}
	return nil
}

func (s *GitService) RecentCommits(ctx context.Context, path string, limit int) ([]models.Commit, error) {
	out, errText, err := s.git(ctx, path,
		"log", "-"+strconv.Itoa(limit), "--pretty=format:%H|%an|%aI|%s")
	if err != nil {
		return nil, apperrors.ErrGetRecentCommits.WithError(err).WithContext("stderr", errText)
	}

	var commits []models.Commit
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 4)
		if len(parts) != 4 {
			continue
		}

		commit := models.Commit{
			Hash:    parts[0],
			Author:  parts[1],
			Message: parts[3],
		}
		if date, err := time.Parse(time.RFC3339, parts[2]); err == nil {
			commit.Date = date
		}
		commits = append(commits, commit)
	}
	return commits, nil
}
