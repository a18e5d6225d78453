// Package chat speaks the chat-completions wire format shared by the model backends.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"resume-o-matic/internal/llm"
)

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

type response struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Endpoint is one chat-completions URL plus the client used to reach it.
type Endpoint struct {
	Backend    string
	URL        string
	APIKey     string
	HTTPClient *http.Client
}

// Complete posts the system message and prompt and returns the first choice, trimmed.
func (e Endpoint) Complete(ctx context.Context, prompt string, params llm.Params) (string, error) {
	payload, err := json.Marshal(request{
		Model: params.Model,
		Messages: []message{
			{Role: "system", Content: llm.SystemMessage},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.URL, bytes.NewReader(payload))
	if err != nil {
		return "", &llm.TransportError{Backend: e.Backend, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if e.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.APIKey)
	}

	client := e.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", &llm.TransportError{Backend: e.Backend, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &llm.TransportError{Backend: e.Backend, StatusCode: resp.StatusCode, Err: err}
	}

	var parsed response
	decodeErr := json.Unmarshal(body, &parsed)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(body))
		if decodeErr == nil && parsed.Error != nil {
			msg = fmt.Sprintf("%s (%s)", parsed.Error.Message, parsed.Error.Type)
		}
		return "", &llm.TransportError{Backend: e.Backend, StatusCode: resp.StatusCode, Err: fmt.Errorf("%s", msg)}
	}
	if decodeErr != nil {
		return "", &llm.TransportError{Backend: e.Backend, StatusCode: resp.StatusCode, Err: fmt.Errorf("response parse: %w", decodeErr)}
	}
	if len(parsed.Choices) == 0 {
		return "", &llm.TransportError{Backend: e.Backend, StatusCode: resp.StatusCode, Err: fmt.Errorf("response missing choices")}
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
