package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/swerner/grepo2/internal/config"
	"github.com/swerner/grepo2/internal/infrastructure/httpclient"
	"github.com/swerner/grepo2/internal/logging"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1/chat/completions"
	doneSentinel   = "[DONE]"

	requestTimeout = 120 * time.Second
)

// Client talks to the OpenRouter chat completions endpoint, streaming for
// roadmap generation and non-streaming for issue analysis.
type Client struct {
	httpClient httpclient.HTTPClient
	token      string
	model      string
	baseURL    string
	log        zerolog.Logger
}

func NewClient(token string, model config.Model) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		token:      token,
		model:      string(model),
		baseURL:    defaultBaseURL,
		log:        logging.Component("openrouter"),
	}
}

// NewClientWithHTTP substitutes the transport and, when baseURL is
// non-empty, the endpoint. Used by tests.
func NewClientWithHTTP(client httpclient.HTTPClient, token string, model config.Model, baseURL string) *Client {
	c := NewClient(token, model)
	c.httpClient = client
	if baseURL != "" {
		c.baseURL = baseURL
	}
	return c
}

type (
	chatMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	chatRequest struct {
		Model    string        `json:"model"`
		Messages []chatMessage `json:"messages"`
		Stream   bool          `json:"stream"`
	}

	streamChunk struct {
		Choices []struct {
			Delta struct {
				Content string `json:"content"`
			} `json:"delta"`
		} `json:"choices"`
	}

	completionResponse struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
)

func (c *Client) newRequest(ctx context.Context, payload chatRequest) (*http.Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	if payload.Stream {
		req.Header.Set("Accept", "text/event-stream")
	}
	return req, nil
}

func (c *Client) closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.log.Warn().Err(err).Msg("closing response body")
	}
}

// readErrorBody pulls a short excerpt of a failed response so the error
// carries what the API actually said.
func readErrorBody(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 2048))
	if err != nil {
		return resp.Status
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return resp.Status
	}
	return text
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.ToValidUTF8(s[:n], "")
}
