package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/swerner/grepo2/internal/config"
	"github.com/swerner/grepo2/internal/domain/models"
	"github.com/swerner/grepo2/internal/domain/ports"
	apperrors "github.com/swerner/grepo2/internal/errors"
	"github.com/swerner/grepo2/internal/logging"
)

// RepoService manages the pairing of GitHub repositories with their local
// clones in the user's workspace.
type RepoService struct {
	manager ports.RepoManager
	git     ports.GitService
	store   *config.Store
	log     zerolog.Logger
}

func NewRepoService(manager ports.RepoManager, git ports.GitService, store *config.Store) *RepoService {
	return &RepoService{
		manager: manager,
		git:     git,
		store:   store,
		log:     logging.Component("repo"),
	}
}

// CloneURL builds the token-carrying HTTPS remote. The token lands in the
// clone's remote URL so later pushes authenticate without a credential
// helper, matching how the workspace is set up everywhere else.
func CloneURL(token, fullName string) string {
	return fmt.Sprintf("https://%s@github.com/%s.git", token, fullName)
}

// CreateAndClone creates the repository on GitHub and clones it into the
// user's workspace. Returns the created repository and the local path.
func (s *RepoService) CreateAndClone(ctx context.Context, creds *config.UserCredentials, name, description string, private bool) (*models.Repository, string, error) {
	repo, err := s.manager.CreateRepository(ctx, name, description, private)
	if err != nil {
		return nil, "", err
	}

	dest, err := s.clone(ctx, creds, *repo)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("repo", repo.FullName).Str("path", dest).Msg("repository created and cloned")
	return repo, dest, nil
}

// CloneExisting clones an already existing GitHub repository into the
// user's workspace.
func (s *RepoService) CloneExisting(ctx context.Context, creds *config.UserCredentials, repo models.Repository) (string, error) {
	return s.clone(ctx, creds, repo)
}

func (s *RepoService) clone(ctx context.Context, creds *config.UserCredentials, repo models.Repository) (string, error) {
	workspace, err := s.store.EnsureWorkspace(creds.Username)
	if err != nil {
		return "", err
	}

	dest := filepath.Join(workspace, repo.Name)
	if err := s.git.Clone(ctx, CloneURL(creds.Token, repo.FullName), dest); err != nil {
		return "", err
	}
	return dest, nil
}

// LocalRepositories lists the repository directories in the user's
// workspace, sorted by name. A missing workspace is an empty list.
func (s *RepoService) LocalRepositories(username string) ([]string, error) {
	entries, err := os.ReadDir(s.store.UserWorkspace(username))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(apperrors.TypeInternal, "Failed to read workspace", err)
	}

	var repos []string
	for _, entry := range entries {
		if entry.IsDir() {
			repos = append(repos, entry.Name())
		}
	}
	sort.Strings(repos)
	return repos, nil
}

// Delete removes the local clone and, when deleteRemote is set, the GitHub
// repository as well. The remote goes first so a failed API call leaves the
// local copy untouched.
func (s *RepoService) Delete(ctx context.Context, username, owner, name string, deleteRemote bool) error {
	if deleteRemote {
		if err := s.manager.DeleteRepository(ctx, owner, name); err != nil {
			return err
		}
	}

	local := filepath.Join(s.store.UserWorkspace(username), name)
	if err := os.RemoveAll(local); err != nil {
		return apperrors.NewAppError(apperrors.TypeInternal, "Failed to remove local repository", err).
			WithContext("path", local)
	}

	s.log.Info().Str("repo", name).Bool("remote", deleteRemote).Msg("repository deleted")
	return nil
}
