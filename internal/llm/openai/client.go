package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"resume-o-matic/internal/llm"
	"resume-o-matic/internal/llm/chat"
)

const defaultBaseURL = "https://api.openai.com/v1"

func init() {
	llm.Register(llm.BackendOpenAI, func(cfg llm.Config) (llm.Generator, error) {
		return NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAITimeoutSecs)
	})
}

// Client implements llm.Generator using OpenAI Chat Completions.
type Client struct {
	endpoint chat.Endpoint
}

// NewClient constructs a new OpenAI client. A zero timeout leaves the request
// bounded only by the caller's context.
func NewClient(apiKey, baseURL string, timeoutSecs int) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is required", llm.ErrConfig)
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := &http.Client{}
	if timeoutSecs > 0 {
		httpClient.Timeout = time.Duration(timeoutSecs) * time.Second
	}
	return &Client{
		endpoint: chat.Endpoint{
			Backend:    llm.BackendOpenAI,
			URL:        baseURL + "/chat/completions",
			APIKey:     apiKey,
			HTTPClient: httpClient,
		},
	}, nil
}

// Generate returns the trimmed content of the first choice.
func (c *Client) Generate(ctx context.Context, prompt string, params llm.Params) (string, error) {
	return c.endpoint.Complete(ctx, prompt, params)
}

var _ llm.Generator = (*Client)(nil)
