package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/swerner/grepo2/internal/errors"
)

type (
	// GlobalConfig holds machine-wide state shared by all users.
	GlobalConfig struct {
		ActiveUser   string `json:"active_user"`
		LastRepoPath string `json:"last_repo_path,omitempty"`
		Language     string `json:"language,omitempty"`
	}

	// UserCredentials is the in-memory view of a user profile. Secrets are
	// held decoded here and only encoded when written to disk.
	UserCredentials struct {
		Username        string
		Token           string
		OpenRouterToken string
		Model           string
	}

	// userFile is the on-disk shape of a user profile. Token fields carry
	// the encoded form produced by EncodeSecret.
	userFile struct {
		Username        string `json:"username"`
		Token           string `json:"token"`
		OpenRouterToken string `json:"openrouter_token,omitempty"`
		Model           string `json:"model,omitempty"`
	}
)

const defaultLang = "en"

// Store reads and writes the configuration tree under
// ~/.config/grepo2 and manages the per-user workspace root.
type Store struct {
	configDir     string
	usersDir      string
	workspaceRoot string
}

func NewStore(homeDir string) (*Store, error) {
	s := &Store{
		configDir:     filepath.Join(homeDir, ".config", "grepo2"),
		workspaceRoot: filepath.Join(homeDir, "github2"),
	}
	s.usersDir = filepath.Join(s.configDir, "users")

	if err := os.MkdirAll(s.usersDir, 0755); err != nil {
		return nil, fmt.Errorf("could not create config directory: %w", err)
	}
	return s, nil
}

func DefaultStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not resolve home directory: %w", err)
	}
	return NewStore(home)
}

// ConfigDir returns the directory the store keeps its files in, for
// callers that place other per-install files next to them.
func (s *Store) ConfigDir() string {
	return s.configDir
}

func (s *Store) globalPath() string {
	return filepath.Join(s.configDir, "config.json")
}

func (s *Store) userPath(username string) string {
	return filepath.Join(s.usersDir, username+".json")
}

// LoadGlobal returns the global configuration. A missing file is not an
// error; defaults are returned so first runs can proceed to setup.
func (s *Store) LoadGlobal() (*GlobalConfig, error) {
	data, err := os.ReadFile(s.globalPath())
	if os.IsNotExist(err) {
		return &GlobalConfig{Language: defaultLang}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read global config: %w", err)
	}

	var cfg GlobalConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, apperrors.ErrCorruptConfig.
			WithError(err).
			WithContext("path", s.globalPath())
	}
	if cfg.Language == "" {
		cfg.Language = defaultLang
	}
	return &cfg, nil
}

func (s *Store) SaveGlobal(cfg *GlobalConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode global config: %w", err)
	}
	if err := os.WriteFile(s.globalPath(), data, 0644); err != nil {
		return fmt.Errorf("could not save global config: %w", err)
	}
	return nil
}

// LoadUser reads a user profile and decodes its stored secrets.
func (s *Store) LoadUser(username string) (*UserCredentials, error) {
	data, err := os.ReadFile(s.userPath(username))
	if os.IsNotExist(err) {
		return nil, apperrors.ErrUserNotFound.WithContext("user", username)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read user config: %w", err)
	}

	var file userFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, apperrors.ErrCorruptConfig.
			WithError(err).
			WithContext("path", s.userPath(username))
	}

	token, err := DecodeSecret(file.Token)
	if err != nil {
		return nil, err
	}
	openRouterToken := ""
	if file.OpenRouterToken != "" {
		openRouterToken, err = DecodeSecret(file.OpenRouterToken)
		if err != nil {
			return nil, err
		}
	}

	model := file.Model
	if model == "" {
		model = string(DefaultModel)
	}

	return &UserCredentials{
		Username:        file.Username,
		Token:           token,
		OpenRouterToken: openRouterToken,
		Model:           model,
	}, nil
}

// SaveUser writes a user profile, encoding its secrets for storage.
func (s *Store) SaveUser(creds *UserCredentials) error {
	if creds.Username == "" {
		return apperrors.NewAppError(apperrors.TypeConfiguration, "username must not be empty", nil)
	}

	file := userFile{
		Username: creds.Username,
		Token:    EncodeSecret(creds.Token),
		Model:    creds.Model,
	}
	if creds.OpenRouterToken != "" {
		file.OpenRouterToken = EncodeSecret(creds.OpenRouterToken)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode user config: %w", err)
	}
	if err := os.WriteFile(s.userPath(creds.Username), data, 0644); err != nil {
		return fmt.Errorf("could not save user config: %w", err)
	}
	return nil
}

// DeleteUser removes a user profile. If the user was active the global
// active_user field is cleared.
func (s *Store) DeleteUser(username string) error {
	if err := os.Remove(s.userPath(username)); err != nil {
		if os.IsNotExist(err) {
			return apperrors.ErrUserNotFound.WithContext("user", username)
		}
		return fmt.Errorf("could not delete user config: %w", err)
	}

	global, err := s.LoadGlobal()
	if err != nil {
		return err
	}
	if global.ActiveUser == username {
		global.ActiveUser = ""
		return s.SaveGlobal(global)
	}
	return nil
}

// ListUsers returns all configured usernames in sorted order.
func (s *Store) ListUsers() ([]string, error) {
	entries, err := os.ReadDir(s.usersDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not list users: %w", err)
	}

	var users []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		users = append(users, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(users)
	return users, nil
}

// ActiveUser resolves the active user's credentials.
func (s *Store) ActiveUser() (*UserCredentials, error) {
	global, err := s.LoadGlobal()
	if err != nil {
		return nil, err
	}
	if global.ActiveUser == "" {
		return nil, apperrors.ErrNoActiveUser
	}
	return s.LoadUser(global.ActiveUser)
}

// SetActiveUser marks an existing user as active.
func (s *Store) SetActiveUser(username string) error {
	if _, err := s.LoadUser(username); err != nil {
		return err
	}
	global, err := s.LoadGlobal()
	if err != nil {
		return err
	}
	global.ActiveUser = username
	return s.SaveGlobal(global)
}

// SetLastRepoPath remembers the repository the user worked in last.
func (s *Store) SetLastRepoPath(path string) error {
	global, err := s.LoadGlobal()
	if err != nil {
		return err
	}
	global.LastRepoPath = path
	return s.SaveGlobal(global)
}

// SetLanguage persists the UI language.
func (s *Store) SetLanguage(lang string) error {
	global, err := s.LoadGlobal()
	if err != nil {
		return err
	}
	global.Language = lang
	return s.SaveGlobal(global)
}

// UserWorkspace returns the directory where a user's clones live.
func (s *Store) UserWorkspace(username string) string {
	return filepath.Join(s.workspaceRoot, username)
}

// EnsureWorkspace creates the user's workspace directory if needed.
func (s *Store) EnsureWorkspace(username string) (string, error) {
	dir := s.UserWorkspace(username)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not create workspace directory: %w", err)
	}
	return dir, nil
}
