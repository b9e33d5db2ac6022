package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/swerner/grepo2/internal/changelog"
	"github.com/swerner/grepo2/internal/domain/models"
	"github.com/swerner/grepo2/internal/domain/ports"
	apperrors "github.com/swerner/grepo2/internal/errors"
	"github.com/swerner/grepo2/internal/logging"
	"github.com/swerner/grepo2/internal/roadmap"
)

const defaultSyncDelay = time.Second

// RoadmapService turns a repository's README into a phased roadmap and the
// roadmap's tasks into GitHub issues. generator may be nil when the user
// has not configured OpenRouter; parsing and syncing still work, only
// generation fails.
type RoadmapService struct {
	generator ports.RoadmapGenerator
	tracker   ports.IssueTracker
	delay     time.Duration
	log       zerolog.Logger
}

type RoadmapOption func(*RoadmapService)

// WithSyncDelay overrides the pause between issue creations during Sync.
func WithSyncDelay(d time.Duration) RoadmapOption {
	return func(s *RoadmapService) {
		s.delay = d
	}
}

func NewRoadmapService(generator ports.RoadmapGenerator, tracker ports.IssueTracker, opts ...RoadmapOption) *RoadmapService {
	s := &RoadmapService{
		generator: generator,
		tracker:   tracker,
		delay:     defaultSyncDelay,
		log:       logging.Component("roadmap"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate streams a roadmap for the repository at repoPath from its
// README.md and writes the result to roadmap.md. onDelta receives each
// streamed fragment as it arrives and may be nil.
func (s *RoadmapService) Generate(ctx context.Context, repoPath string, onDelta func(string)) (string, error) {
	return s.GenerateFrom(ctx, repoPath, filepath.Join(repoPath, "README.md"), onDelta)
}

// GenerateFrom is Generate with an explicit project description file.
func (s *RoadmapService) GenerateFrom(ctx context.Context, repoPath, descPath string, onDelta func(string)) (string, error) {
	if s.generator == nil {
		return "", apperrors.ErrOpenRouterTokenMissing
	}

	desc, err := os.ReadFile(descPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.ErrDescriptionNotFound.WithContext("path", descPath)
		}
		return "", apperrors.NewAppError(apperrors.TypeRoadmap, "Failed to read project description", err).
			WithContext("path", descPath)
	}

	projectName := filepath.Base(repoPath)
	content, err := s.generator.GenerateRoadmap(ctx, projectName, string(desc), onDelta)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		return "", apperrors.ErrRoadmapEmpty
	}

	path := filepath.Join(repoPath, "roadmap.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", apperrors.NewAppError(apperrors.TypeRoadmap, "Failed to write roadmap.md", err).
			WithContext("path", path)
	}

	if err := changelog.Append(repoPath, "Roadmap generated: roadmap.md", changelog.LevelSuccess); err != nil {
		s.log.Warn().Err(err).Msg("could not update changelog")
	}

	s.log.Info().Str("path", path).Int("chars", len(content)).Msg("roadmap written")
	return path, nil
}

// RoadmapTasks parses the repository's roadmap.md into task records.
// A free function so callers that only preview tasks need no service.
func RoadmapTasks(repoPath string) ([]models.TaskRecord, error) {
	path := filepath.Join(repoPath, "roadmap.md")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrRoadmapNotFound.WithContext("path", path)
		}
		return nil, apperrors.NewAppError(apperrors.TypeRoadmap, "Failed to read roadmap.md", err)
	}

	tasks := roadmap.Parse(string(data))
	if len(tasks) == 0 {
		return nil, apperrors.ErrRoadmapEmpty
	}
	return tasks, nil
}

// Tasks parses the repository's roadmap.md into task records.
func (s *RoadmapService) Tasks(repoPath string) ([]models.TaskRecord, error) {
	return RoadmapTasks(repoPath)
}

// Sync creates one GitHub issue per roadmap task. A failed creation is
// recorded in the summary and the loop moves on; only context cancellation
// stops the run early. onResult receives each task's outcome as it lands
// and may be nil.
func (s *RoadmapService) Sync(ctx context.Context, repoPath, owner, repo string, onResult func(models.IssueResult)) (*models.SyncSummary, error) {
	tasks, err := s.Tasks(repoPath)
	if err != nil {
		return nil, err
	}

	summary := &models.SyncSummary{Total: len(tasks)}
	for i, task := range tasks {
		result := models.IssueResult{TaskTitle: task.Title}

		issue, err := s.tracker.CreateIssue(ctx, owner, repo, task.Title, task.Body, task.Labels)
		if err != nil {
			result.ErrorMessage = err.Error()
			s.log.Warn().Err(err).Str("task", task.Title).Msg("issue creation failed")
		} else {
			result.Succeeded = true
			result.RemoteNumber = issue.Number
			summary.Created++
		}

		summary.Results = append(summary.Results, result)
		if onResult != nil {
			onResult(result)
		}

		if i < len(tasks)-1 && s.delay > 0 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			case <-time.After(s.delay):
			}
		}
	}

	level := changelog.LevelSuccess
	if summary.Created < summary.Total {
		level = changelog.LevelWarning
	}
	message := fmt.Sprintf("GitHub issues created: %d/%d for %s", summary.Created, summary.Total, repo)
	if err := changelog.Append(repoPath, message, level); err != nil {
		s.log.Warn().Err(err).Msg("could not update changelog")
	}

	s.log.Info().Int("created", summary.Created).Int("total", summary.Total).Msg("roadmap synced")
	return summary, nil
}
