// Package local talks to an LM Studio style chat-completions server.
package local

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"resume-o-matic/internal/llm"
	"resume-o-matic/internal/llm/chat"
)

// Timeout bounds every local request.
const Timeout = 120 * time.Second

func init() {
	llm.Register(llm.BackendLMStudio, func(cfg llm.Config) (llm.Generator, error) {
		return NewClient(cfg.LMStudioURL)
	})
}

// Client implements llm.Generator against a local endpoint.
type Client struct {
	endpoint chat.Endpoint
}

// NewClient takes the full chat-completions URL.
func NewClient(url string) (*Client, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("%w: LMSTUDIO_URL is required", llm.ErrConfig)
	}
	return &Client{
		endpoint: chat.Endpoint{
			Backend:    llm.BackendLMStudio,
			URL:        url,
			HTTPClient: &http.Client{Timeout: Timeout},
		},
	}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string, params llm.Params) (string, error) {
	return c.endpoint.Complete(ctx, prompt, params)
}

var _ llm.Generator = (*Client)(nil)
