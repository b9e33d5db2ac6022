package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/swerner/grepo2/internal/changelog"
	"github.com/swerner/grepo2/internal/domain/models"
	"github.com/swerner/grepo2/internal/domain/ports"
	apperrors "github.com/swerner/grepo2/internal/errors"
	"github.com/swerner/grepo2/internal/logging"
	"github.com/swerner/grepo2/internal/version"
)

// InWorkLabel marks the issue a codex run is currently working on, so a
// second run picks up where the last one stopped.
const InWorkLabel = "in-work"

const codexPromptTemplate = `DEVELOPMENT ORDER for repository "%s"

ISSUE #%d - %s

DESCRIPTION:
%s

RECENT COMMITS:
%s

PREVIOUS COMMENTS:
%s

WORKING DIRECTORY: %s

TASK:
Analyze the issue and implement a complete solution in this repository.
Write or change whatever files are needed, keep the existing project
conventions, and make sure the result builds.

IMPORTANT:
- Work only inside the working directory.
- Prefer small, focused changes over rewrites.
- If the issue is already resolved, say so instead of changing code.

BEGIN NOW:`

// CodexService runs the codex agent against a repository issue and closes
// the issue when the analysis says the run resolved it.
type CodexService struct {
	tracker  ports.IssueTracker
	git      ports.GitService
	runner   ports.CodeGenerator
	analyzer ports.CompletionAnalyzer
	log      zerolog.Logger
}

func NewCodexService(tracker ports.IssueTracker, git ports.GitService, runner ports.CodeGenerator, analyzer ports.CompletionAnalyzer) *CodexService {
	return &CodexService{
		tracker:  tracker,
		git:      git,
		runner:   runner,
		analyzer: analyzer,
		log:      logging.Component("codex"),
	}
}

// PickIssue selects the issue to work on: the oldest open issue labeled
// in-work, or the oldest open issue overall, which then gets the label.
func (s *CodexService) PickIssue(ctx context.Context, owner, repo string) (*models.Issue, error) {
	labeled, err := s.tracker.ListIssues(ctx, owner, repo, "open", []string{InWorkLabel})
	if err != nil {
		return nil, err
	}
	if len(labeled) > 0 {
		s.log.Debug().Int("issue", labeled[0].Number).Msg("resuming labeled issue")
		return &labeled[0], nil
	}

	open, err := s.tracker.ListIssues(ctx, owner, repo, "open", nil)
	if err != nil {
		return nil, err
	}
	if len(open) == 0 {
		return nil, apperrors.ErrNoOpenIssues.WithContext("repo", repo)
	}

	issue := open[0]
	if err := s.tracker.AddIssueLabels(ctx, owner, repo, issue.Number, []string{InWorkLabel}); err != nil {
		s.log.Warn().Err(err).Int("issue", issue.Number).Msg("could not add in-work label")
	}
	return &issue, nil
}

// BuildPrompt assembles the development order for a codex run: the issue,
// its comments, and the repository's recent commits. Comment and history
// lookups are best effort.
func (s *CodexService) BuildPrompt(ctx context.Context, owner, repo, repoPath string, issue models.Issue) string {
	commentBlock := "No previous comments."
	if comments, err := s.tracker.ListIssueComments(ctx, owner, repo, issue.Number); err != nil {
		s.log.Warn().Err(err).Int("issue", issue.Number).Msg("could not load comments")
	} else {
		var lines []string
		for _, comment := range comments {
			body := strings.TrimSpace(comment.Body)
			if body == "" {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s: %s", comment.Author, body))
		}
		if len(lines) > 0 {
			commentBlock = strings.Join(lines, "\n")
		}
	}

	commitBlock := "No commits yet."
	if commits, err := s.git.RecentCommits(ctx, repoPath, 3); err != nil {
		s.log.Warn().Err(err).Msg("could not read commit history")
	} else if len(commits) > 0 {
		var lines []string
		for _, commit := range commits {
			lines = append(lines, fmt.Sprintf("%s %s", shortHash(commit.Hash), commit.Message))
		}
		commitBlock = strings.Join(lines, "\n")
	}

	return fmt.Sprintf(codexPromptTemplate,
		repo, issue.Number, issue.Title, issue.Body, commitBlock, commentBlock, repoPath)
}

// Execute runs codex with the prompt and has the analyzer judge the output.
// A failed run posts an error comment on the issue and returns the error; a
// failed analysis degrades to a keep-open verdict so the run still counts.
func (s *CodexService) Execute(ctx context.Context, repoPath, owner, repo string, issue models.Issue, prompt string) (*models.CodexResult, *models.CompletionVerdict, error) {
	result, err := s.runner.Run(ctx, repoPath, prompt)
	if err != nil {
		body := fmt.Sprintf("❌ **Codex run failed**\n\n```\n%s\n```", err.Error())
		if commentErr := s.tracker.AddIssueComment(ctx, owner, repo, issue.Number, body); commentErr != nil {
			s.log.Warn().Err(commentErr).Int("issue", issue.Number).Msg("could not post failure comment")
		}
		return result, nil, err
	}

	verdict, err := s.analyzer.AnalyzeCompletion(ctx, issue, result.Output)
	if err != nil {
		s.log.Warn().Err(err).Int("issue", issue.Number).Msg("completion analysis failed")
		verdict = &models.CompletionVerdict{
			Reason:         "Analysis unavailable: " + err.Error(),
			Recommendation: "keep_open",
		}
	}

	if err := s.tracker.AddIssueComment(ctx, owner, repo, issue.Number, formatAnalysisComment(*verdict, result)); err != nil {
		s.log.Warn().Err(err).Int("issue", issue.Number).Msg("could not post analysis comment")
	}

	message := fmt.Sprintf("Codex run for issue #%d (%s)", issue.Number, issue.Title)
	if err := changelog.Append(repoPath, message, changelog.LevelSuccess); err != nil {
		s.log.Warn().Err(err).Msg("could not update changelog")
	}

	s.log.Info().Int("issue", issue.Number).Int("confidence", verdict.Confidence).Msg("codex run finished")
	return result, verdict, nil
}

// Close marks the issue resolved after a confirmed verdict. The closing
// comment is best effort; the state change is not.
func (s *CodexService) Close(ctx context.Context, owner, repo string, issue models.Issue, verdict models.CompletionVerdict) error {
	body := fmt.Sprintf("🤖 **Closed automatically**\n\nThe analysis rated this issue as resolved (confidence %d%%).\n\n%s",
		verdict.Confidence, verdict.Reason)
	if err := s.tracker.AddIssueComment(ctx, owner, repo, issue.Number, body); err != nil {
		s.log.Warn().Err(err).Int("issue", issue.Number).Msg("could not post close comment")
	}
	return s.tracker.SetIssueState(ctx, owner, repo, issue.Number, "closed")
}

func formatAnalysisComment(verdict models.CompletionVerdict, result *models.CodexResult) string {
	emoji := "⚠️"
	status := "In progress"
	if verdict.Completed {
		emoji = "✅"
		status = "Completed"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s Automated issue analysis\n\n", emoji)
	fmt.Fprintf(&b, "**Status**: %s\n", status)
	fmt.Fprintf(&b, "**Confidence**: %d%%\n", verdict.Confidence)
	fmt.Fprintf(&b, "**Analysis**: %s\n", verdict.Reason)
	fmt.Fprintf(&b, "**Recommendation**: %s\n", strings.ReplaceAll(verdict.Recommendation, "_", " "))

	if len(verdict.NextSteps) > 0 {
		b.WriteString("\n**Next steps**:\n")
		for _, step := range verdict.NextSteps {
			fmt.Fprintf(&b, "- %s\n", step)
		}
	}

	fmt.Fprintf(&b, "\n### Codex output\n\n```\n%s\n```\n", excerpt(result.Output, 500))
	fmt.Fprintf(&b, "\n---\n*Generated by grepo2 %s in %.1fs*\n", version.FullVersion(), result.Duration.Seconds())
	return b.String()
}

func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.ToValidUTF8(s[:n], "") + "..."
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
