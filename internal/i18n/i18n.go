package i18n

import (
	"embed"
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

// NewTranslations builds the message bundle: embedded English defaults,
// embedded shipped locales, then any active.<lang>.toml files found in
// localesDir as overrides.
func NewTranslations(defaultLang string, localesDir string) (*Translations, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.MustParseMessageFileBytes([]byte(defaultMessages), "default.en.toml")

	entries, err := localeFS.ReadDir("locales")
	if err == nil {
		for _, entry := range entries {
			data, readErr := localeFS.ReadFile("locales/" + entry.Name())
			if readErr != nil {
				continue
			}
			if _, err := bundle.ParseMessageFileBytes(data, entry.Name()); err != nil {
				return nil, fmt.Errorf("error parsing embedded locale %s: %w", entry.Name(), err)
			}
		}
	}

	if localesDir != "" {
		files, err := filepath.Glob(filepath.Join(localesDir, "active.*.toml"))
		if err != nil {
			return nil, fmt.Errorf("error reading locales: %w", err)
		}
		for _, file := range files {
			if _, err := bundle.LoadMessageFile(file); err != nil {
				return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
			}
		}
	}

	localize := i18n.NewLocalizer(bundle, defaultLang)

	return &Translations{
		bundle:   bundle,
		localize: localize,
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

// SupportedLanguages lists the language tags the bundle can serve.
func (t *Translations) SupportedLanguages() []string {
	tags := t.bundle.LanguageTags()
	langs := make([]string, 0, len(tags))
	for _, tag := range tags {
		langs = append(langs, tag.String())
	}
	return langs
}

func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	localized, err := t.localize.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		PluralCount:  count,
		TemplateData: templateData,
	})
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}

var defaultMessages = `
	[app_usage]
	other = "Manage GitHub repositories, roadmaps and AI code generation from the terminal"

	[app_description]
	other = "grepo2 keeps one workspace per user under ~/github2, wraps the everyday git operations, turns AI-generated roadmaps into GitHub issues and drives the codex CLI against them."

	[help_command_usage]
	other = "Shows help for grepo2"

	[factory_already_registered]
	other = "the command factory '{{.FactoryName}}' is already registered"

	[ui_error.try_suggestion]
	other = "💡 Try: "

	[ui.duration]
	other = "Duration"

	[ui.exit_code]
	other = "Exit code"

	[ui.output_bytes]
	other = "Output bytes"

	[operation_cancelled]
	other = "Operation cancelled"

	[active_user]
	other = "Active user: {{.User}}"

	[menu.main_title]
	other = "grepo2 - repositories of {{.User}}"

	[menu.option.switch_user]
	other = "Switch user"

	[menu.option.new_repo]
	other = "Create new repository"

	[menu.option.settings]
	other = "Settings"

	[menu.option.exit]
	other = "Exit"

	[menu.repo_title]
	other = "Repository: {{.Repo}}"

	[menu.option.status]
	other = "Show status"

	[menu.option.commit]
	other = "Commit all changes"

	[menu.option.soft_push]
	other = "Push"

	[menu.option.soft_pull]
	other = "Pull (fast-forward only)"

	[menu.option.hard_push]
	other = "Hard push (force-with-lease)"

	[menu.option.hard_pull]
	other = "Hard pull (clean working tree, autostash)"

	[menu.option.force_push]
	other = "Force push (overwrites remote)"

	[menu.option.force_pull]
	other = "Force pull (overwrites local)"

	[menu.option.roadmap]
	other = "Generate roadmap (AI)"

	[menu.option.sync_issues]
	other = "Create GitHub issues from roadmap"

	[menu.option.codex]
	other = "Run codex on the next open issue"

	[menu.option.delete_repo]
	other = "Delete repository"

	[menu.option.back]
	other = "Back"

	[menu.settings_title]
	other = "Settings"

	[menu.option.set_github_token]
	other = "Change GitHub token"

	[menu.option.set_openrouter_token]
	other = "Configure AI access (OpenRouter)"

	[menu.option.set_model]
	other = "Choose AI model"

	[menu.option.set_language]
	other = "Choose language"

	[menu.user_title]
	other = "User management"

	[menu.option.user_select]
	other = "Select active user"

	[menu.option.user_add]
	other = "Add user"

	[menu.option.user_delete]
	other = "Delete user"

	[prompt.username]
	other = "GitHub username"

	[prompt.github_token]
	other = "GitHub personal access token"

	[prompt.openrouter_token]
	other = "OpenRouter API token"

	[prompt.commit_message]
	other = "Commit message"

	[prompt.repo_name]
	other = "Repository name"

	[prompt.repo_description]
	other = "Description"

	[prompt.repo_private]
	other = "Private repository?"

	[prompt.select_model]
	other = "Model"

	[prompt.select_language]
	other = "Language"

	[prompt.select_user]
	other = "User"

	[confirm.force_push]
	other = "Force push rewrites the remote branch. Continue?"

	[confirm.force_pull]
	other = "Force pull discards all local changes. Continue?"

	[confirm.delete_repo]
	other = "Delete {{.Repo}} on GitHub? This cannot be undone."

	[confirm.delete_user]
	other = "Remove the stored profile of {{.User}}?"

	[setup.welcome]
	other = "Welcome to grepo2! Let's set up your first user."

	[setup.token_validating]
	other = "Validating token with GitHub..."

	[setup.user_ready]
	other = "User {{.User}} is ready. Workspace: {{.Path}}"

	[setup.user_exists]
	other = "A profile for {{.User}} already exists"

	[sync.no_tasks]
	other = "No tasks found in the roadmap"

	[sync.creating]
	one = "Creating {{.Count}} issue in {{.Owner}}/{{.Repo}}..."
	other = "Creating {{.Count}} issues in {{.Owner}}/{{.Repo}}..."

	[sync.issue_created]
	other = "Created issue #{{.Number}}: {{.Title}}"

	[sync.issue_failed]
	other = "Failed: {{.Title}} ({{.Error}})"

	[sync.summary]
	other = "Created issues: {{.Created}}/{{.Total}}"

	[sync.duplicate_note]
	other = "Note: grepo2 does not track previous syncs; re-running creates duplicate issues."

	[roadmap.generating]
	other = "Generating roadmap with {{.Model}}..."

	[roadmap.saved]
	other = "Roadmap saved to {{.Path}}"

	[codex.no_open_issue]
	other = "No open issue available for codex"

	[codex.picked_issue]
	other = "Selected issue #{{.Number}}: {{.Title}}"

	[codex.marked_in_work]
	other = "Labeled issue #{{.Number}} as in-work"

	[codex.running]
	other = "Running codex with {{.Model}}..."

	[codex.finished]
	other = "codex finished in {{.Duration}}"

	[codex.issue_closed]
	other = "Closed issue #{{.Number}}"

	[codex.comment_added]
	other = "Posted analysis comment on issue #{{.Number}}"

	[status.clean]
	other = "Working tree clean"

	[status.changed_files]
	one = "{{.Count}} changed file"
	other = "{{.Count}} changed files"

	[commit.created]
	other = "Commit created"

	[push.done]
	other = "Pushed {{.Branch}} to origin"

	[pull.done]
	other = "Pulled {{.Branch}} from origin"

	[clone.done]
	other = "Cloned into {{.Path}}"

	[repo.created]
	other = "Repository {{.Repo}} created on GitHub"

	[repo.deleted]
	other = "Repository {{.Repo}} deleted"

	[repo_list.empty]
	other = "No repositories in workspace {{.Path}}"

	[repo_list.title]
	other = "Repositories of {{.User}}"

	[cmd.go.usage]
	other = "Scripted access to grepo2 operations"

	[cmd.repo.usage]
	other = "Repository operations"

	[cmd.repo_list.usage]
	other = "List local repositories in the workspace"

	[cmd.repo_create.usage]
	other = "Create a GitHub repository and clone it into the workspace"

	[cmd.repo_status.usage]
	other = "Show git status of a workspace repository"

	[cmd.roadmap.usage]
	other = "Generate roadmap.md for a repository from a project description"

	[cmd.issues.usage]
	other = "Create GitHub issues from a repository's roadmap.md"

	[cmd.configure.usage]
	other = "Configure tokens, model and language"

	[flag.repo.usage]
	other = "repository name inside the workspace"

	[flag.repo_name.usage]
	other = "name of the repository to create"

	[flag.repo_description.usage]
	other = "repository description"

	[flag.repo_private.usage]
	other = "create the repository as private"

	[flag.desc.usage]
	other = "project description file fed to the model (defaults to the repository README.md)"

	[flag.model.usage]
	other = "OpenRouter model identifier"

	[flag.dry_run.usage]
	other = "parse and preview without creating issues"

	[flag.github_token.usage]
	other = "GitHub personal access token"

	[flag.openrouter_token.usage]
	other = "OpenRouter API token"

	[flag.language.usage]
	other = "interface language"

	[issues.preview_header]
	one = "{{.Count}} task parsed from {{.Path}}"
	other = "{{.Count}} tasks parsed from {{.Path}}"

	[configure.saved]
	other = "Configuration saved"

	[configure.nothing]
	other = "Nothing to configure: pass at least one flag"

	[configure.unsupported_model]
	other = "Unsupported model '{{.Model}}'. Supported models: {{.List}}"
	`
