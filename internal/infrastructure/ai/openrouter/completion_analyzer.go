package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/swerner/grepo2/internal/domain/models"
	"github.com/swerner/grepo2/internal/domain/ports"
	apperrors "github.com/swerner/grepo2/internal/errors"
)

var _ ports.CompletionAnalyzer = (*Client)(nil)

// maxOutputExcerpt caps how much codex output goes into the analysis prompt.
const maxOutputExcerpt = 2000

// AnalyzeCompletion asks the model whether the codex run resolved the issue
// and returns its verdict.
func (c *Client) AnalyzeCompletion(ctx context.Context, issue models.Issue, codexOutput string) (*models.CompletionVerdict, error) {
	prompt := fmt.Sprintf(analysisPromptTemplate, issue.Title, issue.Body, truncate(codexOutput, maxOutputExcerpt))

	payload := chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}

	req, err := c.newRequest(ctx, payload)
	if err != nil {
		return nil, apperrors.ErrCompletionRequest.WithError(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.ErrCompletionRequest.WithError(err)
	}
	defer c.closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.ErrCompletionRequest.
			WithContext("status", resp.StatusCode).
			WithContext("message", readErrorBody(resp))
	}

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, apperrors.ErrCompletionRequest.WithError(err)
	}
	if len(completion.Choices) == 0 {
		return nil, apperrors.ErrCompletionRequest.WithContext("message", "response carried no choices")
	}

	verdict := parseVerdict(completion.Choices[0].Message.Content)
	c.log.Debug().
		Int("issue", issue.Number).
		Bool("completed", verdict.Completed).
		Int("confidence", verdict.Confidence).
		Msg("completion verdict")
	return &verdict, nil
}

// parseVerdict reads the model's JSON verdict. Models wrap the JSON in
// markdown fences or pad it with prose often enough that both a fence strip
// and a keyword fallback are kept.
func parseVerdict(content string) models.CompletionVerdict {
	text := stripFences(content)

	var verdict models.CompletionVerdict
	if err := json.Unmarshal([]byte(text), &verdict); err == nil {
		return clampVerdict(verdict)
	}

	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			if err := json.Unmarshal([]byte(text[start:end+1]), &verdict); err == nil {
				return clampVerdict(verdict)
			}
		}
	}

	lower := strings.ToLower(content)
	fallback := models.CompletionVerdict{
		Completed: strings.Contains(lower, "completed") && strings.Contains(lower, "true"),
		Reason:    truncate(strings.TrimSpace(content), 200),
	}
	if strings.Contains(lower, "completed") {
		fallback.Confidence = 75
	} else {
		fallback.Confidence = 25
	}
	if strings.Contains(lower, "close") {
		fallback.Recommendation = "close"
	} else {
		fallback.Recommendation = "keep_open"
	}
	return fallback
}

func stripFences(s string) string {
	text := strings.TrimSpace(s)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

func clampVerdict(v models.CompletionVerdict) models.CompletionVerdict {
	if v.Confidence < 0 {
		v.Confidence = 0
	}
	if v.Confidence > 100 {
		v.Confidence = 100
	}
	if v.Recommendation == "" {
		v.Recommendation = "keep_open"
	}
	return v
}
