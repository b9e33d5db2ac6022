package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/swerner/grepo2/internal/config"
	"github.com/swerner/grepo2/internal/domain/models"
	apperrors "github.com/swerner/grepo2/internal/errors"
	"github.com/swerner/grepo2/internal/i18n"
	"github.com/swerner/grepo2/internal/infrastructure/codex"
	"github.com/swerner/grepo2/internal/services"
	"github.com/swerner/grepo2/internal/ui"
)

// Selection values of the repository menu.
const (
	actionStatus     = "status"
	actionCommit     = "commit"
	actionSoftPush   = "soft-push"
	actionSoftPull   = "soft-pull"
	actionHardPush   = "hard-push"
	actionHardPull   = "hard-pull"
	actionForcePush  = "force-push"
	actionForcePull  = "force-pull"
	actionRoadmap    = "roadmap"
	actionSyncIssues = "sync-issues"
	actionCodex      = "codex"
	actionDeleteRepo = "delete-repo"
)

func repoMenuOptions(t *i18n.Translations) []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption(t.GetMessage("menu.option.status", 0, nil), actionStatus),
		huh.NewOption(t.GetMessage("menu.option.commit", 0, nil), actionCommit),
		huh.NewOption(t.GetMessage("menu.option.soft_push", 0, nil), actionSoftPush),
		huh.NewOption(t.GetMessage("menu.option.soft_pull", 0, nil), actionSoftPull),
		huh.NewOption(t.GetMessage("menu.option.hard_push", 0, nil), actionHardPush),
		huh.NewOption(t.GetMessage("menu.option.hard_pull", 0, nil), actionHardPull),
		huh.NewOption(t.GetMessage("menu.option.force_push", 0, nil), actionForcePush),
		huh.NewOption(t.GetMessage("menu.option.force_pull", 0, nil), actionForcePull),
		huh.NewOption(t.GetMessage("menu.option.roadmap", 0, nil), actionRoadmap),
		huh.NewOption(t.GetMessage("menu.option.sync_issues", 0, nil), actionSyncIssues),
		huh.NewOption(t.GetMessage("menu.option.codex", 0, nil), actionCodex),
		huh.NewOption(t.GetMessage("menu.option.delete_repo", 0, nil), actionDeleteRepo),
		huh.NewOption(t.GetMessage("menu.option.back", 0, nil), actionBack),
	}
}

// repoMenu loops over the actions for one workspace repository until the
// user goes back or the repository is deleted.
func (m *Menu) repoMenu(ctx context.Context, repo string) {
	creds, err := m.container.Credentials()
	if err != nil {
		ui.HandleAppError(err, m.t)
		return
	}
	path := filepath.Join(m.container.Store().UserWorkspace(creds.Username), repo)
	if err := m.container.Store().SetLastRepoPath(path); err != nil {
		m.log.Warn().Err(err).Msg("could not remember repository path")
	}
	ui.PrintSectionBanner(repo)

	for {
		var choice string
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title(m.t.GetMessage("menu.repo_title", 0, map[string]interface{}{"Repo": repo})).
				Options(repoMenuOptions(m.t)...).
				Value(&choice),
		))
		if err := form.Run(); err != nil {
			return
		}
		if choice == actionBack {
			return
		}
		if leave := m.runRepoAction(ctx, creds, repo, path, choice); leave {
			return
		}
	}
}

// runRepoAction dispatches one repository menu selection. It reports
// whether the menu should be left, which only deleting the repository
// does.
func (m *Menu) runRepoAction(ctx context.Context, creds *config.UserCredentials, repo, path, action string) bool {
	switch action {
	case actionStatus:
		m.showStatus(ctx, path)
	case actionCommit:
		m.commitAll(ctx, path)
	case actionSoftPush:
		m.runGitOp(ctx, path, "menu.option.soft_push", "push.done", m.container.GitService().SoftPush)
	case actionSoftPull:
		m.runGitOp(ctx, path, "menu.option.soft_pull", "pull.done", m.container.GitService().SoftPull)
	case actionHardPush:
		m.runGitOp(ctx, path, "menu.option.hard_push", "push.done", m.container.GitService().HardPush)
	case actionHardPull:
		m.runGitOp(ctx, path, "menu.option.hard_pull", "pull.done", m.container.GitService().HardPull)
	case actionForcePush:
		if !m.confirm(m.t.GetMessage("confirm.force_push", 0, nil)) {
			return false
		}
		m.runGitOp(ctx, path, "menu.option.force_push", "push.done", m.container.GitService().ForcePush)
	case actionForcePull:
		m.forcePull(ctx, creds, repo, path)
	case actionRoadmap:
		m.generateRoadmap(ctx, path)
	case actionSyncIssues:
		m.syncIssues(ctx, creds, repo, path)
	case actionCodex:
		m.runCodex(ctx, creds, repo, path)
	case actionDeleteRepo:
		return m.deleteRepository(ctx, creds, repo)
	}
	return false
}

func (m *Menu) showStatus(ctx context.Context, path string) {
	git := m.container.GitService()
	if !git.IsRepository(path) {
		ui.HandleAppError(apperrors.ErrNotInGitRepo.WithContext("path", path), m.t)
		return
	}
	status, err := git.Status(ctx, path)
	if err != nil {
		ui.HandleAppError(err, m.t)
		return
	}

	ui.PrintKeyValue("Branch", status.Branch)
	if status.Clean() {
		ui.PrintInfo(m.t.GetMessage("status.clean", 0, nil))
		return
	}
	count := len(status.ChangedFiles)
	fmt.Println(m.t.GetMessage("status.changed_files", count, map[string]interface{}{"Count": count}))
	for _, file := range status.ChangedFiles {
		fmt.Printf("  %s\n", file)
	}
}

func (m *Menu) commitAll(ctx context.Context, path string) {
	var message string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(m.t.GetMessage("prompt.commit_message", 0, nil)).
			Validate(notEmpty).
			Value(&message),
	))
	if err := form.Run(); err != nil {
		return
	}

	if err := m.container.GitService().AddAllAndCommit(ctx, path, message); err != nil {
		ui.HandleAppError(err, m.t)
		return
	}
	ui.PrintSuccess(os.Stdout, m.t.GetMessage("commit.created", 0, nil))
}

// runGitOp wraps a push or pull variant in a spinner and reports the
// branch it moved.
func (m *Menu) runGitOp(ctx context.Context, path, labelKey, doneKey string, op func(context.Context, string) error) {
	branch, err := m.container.GitService().CurrentBranch(ctx, path)
	if err != nil {
		ui.HandleAppError(err, m.t)
		return
	}

	spin := ui.NewSmartSpinner(m.t.GetMessage(labelKey, 0, nil))
	spin.Start()
	if err := op(ctx, path); err != nil {
		ui.HandleAppError(err, m.t)
		return
	}
	spin.Success(m.t.GetMessage(doneKey, 0, map[string]interface{}{"Branch": branch}))
}

// forcePull re-clones the repository from GitHub, so it reports the clone
// destination instead of a branch.
func (m *Menu) forcePull(ctx context.Context, creds *config.UserCredentials, repo, path string) {
	if !m.confirm(m.t.GetMessage("confirm.force_pull", 0, nil)) {
		return
	}

	url := services.CloneURL(creds.Token, creds.Username+"/"+repo)
	spin := ui.NewSmartSpinner(m.t.GetMessage("menu.option.force_pull", 0, nil))
	spin.Start()
	if err := m.container.GitService().ForcePull(ctx, path, url); err != nil {
		ui.HandleAppError(err, m.t)
		return
	}
	spin.Success(m.t.GetMessage("clone.done", 0, map[string]interface{}{"Path": path}))
}

func (m *Menu) generateRoadmap(ctx context.Context, path string) {
	service, err := m.container.RoadmapService()
	if err != nil {
		ui.HandleAppError(err, m.t)
		return
	}

	fmt.Println(m.t.GetMessage("roadmap.generating", 0, map[string]interface{}{"Model": string(m.container.Model())}))
	saved, err := service.Generate(ctx, path, func(fragment string) {
		fmt.Print(fragment)
	})
	if err != nil {
		ui.HandleAppError(err, m.t)
		return
	}
	fmt.Println()
	ui.PrintSuccess(os.Stdout, m.t.GetMessage("roadmap.saved", 0, map[string]interface{}{"Path": saved}))
}

func (m *Menu) syncIssues(ctx context.Context, creds *config.UserCredentials, repo, path string) {
	service, err := m.container.RoadmapService()
	if err != nil {
		ui.HandleAppError(err, m.t)
		return
	}

	tasks, err := services.RoadmapTasks(path)
	if err != nil {
		if errors.Is(err, apperrors.ErrRoadmapEmpty) {
			ui.PrintWarning(m.t.GetMessage("sync.no_tasks", 0, nil))
			return
		}
		ui.HandleAppError(err, m.t)
		return
	}

	fmt.Println(m.t.GetMessage("sync.creating", len(tasks), map[string]interface{}{
		"Count": len(tasks),
		"Owner": creds.Username,
		"Repo":  repo,
	}))

	summary, err := service.Sync(ctx, path, creds.Username, repo, func(result models.IssueResult) {
		if result.Succeeded {
			ui.PrintSuccess(os.Stdout, m.t.GetMessage("sync.issue_created", 0, map[string]interface{}{
				"Number": result.RemoteNumber,
				"Title":  result.TaskTitle,
			}))
			return
		}
		ui.PrintError(os.Stdout, m.t.GetMessage("sync.issue_failed", 0, map[string]interface{}{
			"Title": result.TaskTitle,
			"Error": result.ErrorMessage,
		}))
	})
	if err != nil {
		ui.HandleAppError(err, m.t)
		return
	}

	fmt.Println(m.t.GetMessage("sync.summary", 0, map[string]interface{}{
		"Created": summary.Created,
		"Total":   summary.Total,
	}))
	fmt.Println(m.t.GetMessage("sync.duplicate_note", 0, nil))
}

func (m *Menu) runCodex(ctx context.Context, creds *config.UserCredentials, repo, path string) {
	service, err := m.container.CodexService()
	if err != nil {
		ui.HandleAppError(err, m.t)
		return
	}

	home, err := os.UserHomeDir()
	if err != nil {
		ui.HandleAppError(err, m.t)
		return
	}
	if err := codex.EnsureOpenRouterProfile(home); err != nil {
		ui.HandleAppError(err, m.t)
		return
	}

	issue, err := service.PickIssue(ctx, creds.Username, repo)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoOpenIssues) {
			ui.PrintWarning(m.t.GetMessage("codex.no_open_issue", 0, nil))
			return
		}
		ui.HandleAppError(err, m.t)
		return
	}
	ui.PrintInfo(m.t.GetMessage("codex.picked_issue", 0, map[string]interface{}{
		"Number": issue.Number,
		"Title":  issue.Title,
	}))
	// A fresh pick gets the label remotely; the listed issue does not
	// carry it yet.
	if !slices.Contains(issue.Labels, services.InWorkLabel) {
		ui.PrintInfo(m.t.GetMessage("codex.marked_in_work", 0, map[string]interface{}{"Number": issue.Number}))
	}

	prompt := service.BuildPrompt(ctx, creds.Username, repo, path, *issue)

	spin := ui.NewSmartSpinner(m.t.GetMessage("codex.running", 0, map[string]interface{}{"Model": string(m.container.Model())}))
	spin.Start()
	result, verdict, err := service.Execute(ctx, path, creds.Username, repo, *issue, prompt)
	if err != nil {
		ui.HandleAppError(err, m.t)
		if result != nil {
			ui.PrintCommandOutput(result.Output)
		}
		return
	}

	spin.Success(m.t.GetMessage("codex.finished", 0, map[string]interface{}{
		"Duration": result.Duration.Round(time.Second).String(),
	}))
	ui.PrintRunStats(result, m.t)
	ui.PrintInfo(m.t.GetMessage("codex.comment_added", 0, map[string]interface{}{"Number": issue.Number}))

	if verdict.ShouldClose() {
		if err := service.Close(ctx, creds.Username, repo, *issue, *verdict); err != nil {
			ui.HandleAppError(err, m.t)
			return
		}
		ui.PrintSuccess(os.Stdout, m.t.GetMessage("codex.issue_closed", 0, map[string]interface{}{"Number": issue.Number}))
	}
}

func (m *Menu) deleteRepository(ctx context.Context, creds *config.UserCredentials, repo string) bool {
	if !m.confirm(m.t.GetMessage("confirm.delete_repo", 0, map[string]interface{}{"Repo": repo})) {
		return false
	}

	service, err := m.container.RepoService()
	if err != nil {
		ui.HandleAppError(err, m.t)
		return false
	}
	if err := service.Delete(ctx, creds.Username, creds.Username, repo, true); err != nil {
		ui.HandleAppError(err, m.t)
		return false
	}
	ui.PrintSuccess(os.Stdout, m.t.GetMessage("repo.deleted", 0, map[string]interface{}{"Repo": repo}))
	return true
}

// createRepository runs the new-repository form from the main menu and
// clones the result into the workspace.
func (m *Menu) createRepository(ctx context.Context) {
	creds, err := m.container.Credentials()
	if err != nil {
		ui.HandleAppError(err, m.t)
		return
	}
	service, err := m.container.RepoService()
	if err != nil {
		ui.HandleAppError(err, m.t)
		return
	}

	var name, description string
	private := true
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(m.t.GetMessage("prompt.repo_name", 0, nil)).
			Validate(notEmpty).
			Value(&name),
		huh.NewInput().
			Title(m.t.GetMessage("prompt.repo_description", 0, nil)).
			Value(&description),
		huh.NewConfirm().
			Title(m.t.GetMessage("prompt.repo_private", 0, nil)).
			Value(&private),
	))
	if err := form.Run(); err != nil {
		return
	}

	spin := ui.NewSmartSpinner(m.t.GetMessage("menu.option.new_repo", 0, nil))
	spin.Start()
	repo, dest, err := service.CreateAndClone(ctx, creds, name, description, private)
	if err != nil {
		ui.HandleAppError(err, m.t)
		return
	}
	spin.Success(m.t.GetMessage("repo.created", 0, map[string]interface{}{"Repo": repo.FullName}))
	ui.PrintSuccess(os.Stdout, m.t.GetMessage("clone.done", 0, map[string]interface{}{"Path": dest}))
}
