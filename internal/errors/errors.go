package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeGit           ErrorType = "GIT"
	TypeGitHub        ErrorType = "GITHUB"
	TypeOpenRouter    ErrorType = "OPENROUTER"
	TypeCodex         ErrorType = "CODEX"
	TypeRoadmap       ErrorType = "ROADMAP"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if stderr, ok := e.Context["stderr"].(string); ok && stderr != "" {
			msg += fmt.Sprintf(" - %s", stderr)
		}
		if detail, ok := e.Context["message"].(string); ok && detail != "" {
			msg += fmt.Sprintf(" - %s", detail)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by type and message, so errors derived through
// WithError and WithContext still answer to their base sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Git errors
var (
	ErrNotInGitRepo = NewAppError(TypeGit, "Not a git repository", nil).
			WithSuggestion("Initialize a git repository: git init")

	ErrGetBranch = NewAppError(TypeGit, "Failed to get current branch", nil).
			WithSuggestion("Make sure you are in a git repository: git status")

	ErrNoBranch = NewAppError(TypeGit, "No branch detected", nil).
			WithSuggestion("Create a branch first: git checkout -b <branch-name>")

	ErrGitStatus = NewAppError(TypeGit, "Failed to get repository status", nil).
			WithSuggestion("Check the repository directory still exists")

	ErrGitAdd = NewAppError(TypeGit, "Failed to stage changes", nil).
			WithSuggestion("Check file permissions in the working tree")

	ErrCreateCommit = NewAppError(TypeGit, "Failed to create commit", nil).
			WithSuggestion("Ensure git user is configured:\n   git config --global user.name \"Your Name\"\n   git config --global user.email \"your@email.com\"")

	ErrNoChanges = NewAppError(TypeGit, "No changes to commit", nil).
			WithSuggestion("The working tree is clean")

	ErrGitPush = NewAppError(TypeGit, "Failed to push to origin", nil).
			WithSuggestion("Verify remote is configured: git remote -v")

	ErrGitPull = NewAppError(TypeGit, "Failed to pull from origin", nil).
			WithSuggestion("Check for local changes blocking the pull: git status")

	ErrGitFetch = NewAppError(TypeGit, "Failed to fetch from origin", nil).
			WithSuggestion("Check your network connection and remote access")

	ErrGitReset = NewAppError(TypeGit, "Failed to reset working tree", nil)

	ErrGitClean = NewAppError(TypeGit, "Failed to clean working tree", nil)

	ErrGitClone = NewAppError(TypeGit, "Failed to clone repository", nil).
			WithSuggestion("Check the repository exists and your token has access to it")

	ErrGetRecentCommits = NewAppError(TypeGit, "Failed to read commit history", nil).
				WithSuggestion("Verify the repository has commits: git log --oneline")
)

// Configuration errors
var (
	ErrNoActiveUser = NewAppError(TypeConfiguration, "No active user configured", nil).
			WithSuggestion("Run grepo2 once without arguments to complete the setup wizard")

	ErrUserNotFound = NewAppError(TypeConfiguration, "User profile not found", nil).
			WithSuggestion("Add the user from the user menu or re-run the setup wizard")

	ErrTokenMissing = NewAppError(TypeConfiguration, "GitHub token is missing", nil).
			WithSuggestion("Set a token in Settings > Change GitHub token")

	ErrOpenRouterTokenMissing = NewAppError(TypeConfiguration, "OpenRouter token is missing", nil).
					WithSuggestion("Set a token in Settings > Configure AI access")

	ErrCorruptConfig = NewAppError(TypeConfiguration, "Configuration file is corrupt", nil).
				WithSuggestion("Delete the file under ~/.config/grepo2 and run the setup wizard again")

	ErrDecodeSecret = NewAppError(TypeConfiguration, "Stored secret could not be decoded", nil).
			WithSuggestion("Re-enter the token in Settings; the stored value is damaged")
)

// GitHub errors
var (
	ErrGitHubTokenInvalid = NewAppError(TypeGitHub, "GitHub token is invalid or expired", nil).
				WithSuggestion("Generate a new token at: https://github.com/settings/tokens\nThen update it in Settings")

	ErrGitHubInsufficientPerms = NewAppError(TypeGitHub, "GitHub token has insufficient permissions", nil).
					WithSuggestion("The token needs the 'repo' scope.\nRegenerate at: https://github.com/settings/tokens")

	ErrGitHubRateLimit = NewAppError(TypeGitHub, "GitHub API rate limit exceeded", nil).
				WithSuggestion("Wait a few minutes before retrying")

	ErrRepositoryNotFound = NewAppError(TypeGitHub, "Repository not found", nil).
				WithSuggestion("Check the repository name and your access permissions")

	ErrRepositoryExists = NewAppError(TypeGitHub, "Repository already exists", nil).
				WithSuggestion("Pick another name or delete the existing repository first")

	ErrNoOpenIssues = NewAppError(TypeGitHub, "No open issues found", nil).
			WithSuggestion("Generate a roadmap and sync it to create issues")
)

// OpenRouter errors
var (
	ErrRoadmapGeneration = NewAppError(TypeOpenRouter, "Roadmap generation failed", nil).
				WithSuggestion("Check your OpenRouter token and network connection, then retry")

	ErrCompletionRequest = NewAppError(TypeOpenRouter, "Completion request failed", nil).
				WithSuggestion("Check your OpenRouter token and the configured model name")

	ErrStreamAborted = NewAppError(TypeOpenRouter, "Stream aborted before completion", nil).
				WithSuggestion("The roadmap was not saved; retry the generation")
)

// Codex errors
var (
	ErrCodexNotFound = NewAppError(TypeCodex, "codex binary not found", nil).
				WithSuggestion("Install it first: npm install -g @openai/codex")

	ErrCodexTimeout = NewAppError(TypeCodex, "codex run exceeded the time limit", nil).
			WithSuggestion("Re-run on a smaller issue or raise the timeout in Settings")

	ErrCodexFailed = NewAppError(TypeCodex, "codex exited with an error", nil)

	ErrCodexConfig = NewAppError(TypeCodex, "Failed to write codex provider config", nil).
			WithSuggestion("Check that ~/.codex is writable")
)

// Roadmap errors
var (
	ErrDescriptionNotFound = NewAppError(TypeRoadmap, "Project description not found", nil).
				WithSuggestion("Without a description file the roadmap is generated from the repository's README.md")

	ErrRoadmapNotFound = NewAppError(TypeRoadmap, "roadmap.md not found", nil).
				WithSuggestion("Generate a roadmap first from the repository menu")

	ErrRoadmapEmpty = NewAppError(TypeRoadmap, "Roadmap contains no tasks", nil).
			WithSuggestion("The file needs PHASE headings and '[ ] title: body' lines")

	ErrChangelogWrite = NewAppError(TypeRoadmap, "Failed to update CHANGELOG.md", nil)
)
