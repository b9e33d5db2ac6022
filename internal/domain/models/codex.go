package models

import "time"

// closeConfidence is the minimum confidence before an issue may be
// closed automatically.
const closeConfidence = 80

type (
	// CodexResult captures one codex run over a repository.
	CodexResult struct {
		Output   string
		ExitCode int
		Duration time.Duration
	}

	// CompletionVerdict is the model's judgement on whether a codex run
	// resolved the issue it was launched for. The field names mirror the
	// JSON the analysis prompt requests.
	CompletionVerdict struct {
		Completed      bool     `json:"completed"`
		Confidence     int      `json:"confidence"`
		Reason         string   `json:"reason"`
		NextSteps      []string `json:"next_steps,omitempty"`
		Recommendation string   `json:"recommendation,omitempty"`
	}
)

func (v CompletionVerdict) ShouldClose() bool {
	return v.Completed && v.Confidence >= closeConfidence
}
