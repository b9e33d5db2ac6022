package openrouter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/swerner/grepo2/internal/domain/ports"
	apperrors "github.com/swerner/grepo2/internal/errors"
)

var _ ports.RoadmapGenerator = (*Client)(nil)

// GenerateRoadmap streams a roadmap for projectName out of the project
// description. Each content fragment is handed to onDelta as it arrives; the
// returned string is the complete accumulated document. A failure mid-stream
// discards the partial text.
func (c *Client) GenerateRoadmap(ctx context.Context, projectName, description string, onDelta func(string)) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: roadmapSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(roadmapUserPromptTemplate, projectName, description)},
		},
		Stream: true,
	}

	req, err := c.newRequest(ctx, payload)
	if err != nil {
		return "", apperrors.ErrRoadmapGeneration.WithError(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.ErrRoadmapGeneration.WithError(err)
	}
	defer c.closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.ErrRoadmapGeneration.
			WithContext("status", resp.StatusCode).
			WithContext("message", readErrorBody(resp))
	}

	var content strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}

		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == doneSentinel {
			break
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}

		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		content.WriteString(delta)
		if onDelta != nil {
			onDelta(delta)
		}
	}

	if err := scanner.Err(); err != nil {
		return "", apperrors.ErrStreamAborted.WithError(err)
	}

	c.log.Debug().Str("model", c.model).Int("chars", content.Len()).Msg("roadmap stream finished")
	return content.String(), nil
}
