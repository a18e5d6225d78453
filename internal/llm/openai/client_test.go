package openai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"resume-o-matic/internal/llm"
)

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("  ", "", 0)
	if !errors.Is(err, llm.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestNewClientTimeout(t *testing.T) {
	tests := []struct {
		name    string
		secs    int
		want    time.Duration
		baseURL string
		wantURL string
	}{
		{name: "provider default", secs: 0, want: 0, wantURL: "https://api.openai.com/v1/chat/completions"},
		{name: "configured", secs: 30, want: 30 * time.Second, baseURL: "http://proxy/v1/", wantURL: "http://proxy/v1/chat/completions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient("sk", tt.baseURL, tt.secs)
			if err != nil {
				t.Fatalf("NewClient: %v", err)
			}
			if c.endpoint.HTTPClient.Timeout != tt.want {
				t.Fatalf("timeout = %v, want %v", c.endpoint.HTTPClient.Timeout, tt.want)
			}
			if c.endpoint.URL != tt.wantURL {
				t.Fatalf("url = %q, want %q", c.endpoint.URL, tt.wantURL)
			}
		})
	}
}

func TestGeneratePostsToChatCompletions(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":" done "}}]}`))
	}))
	defer server.Close()

	c, err := NewClient("sk", server.URL+"/v1", 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	out, err := c.Generate(context.Background(), "prompt", llm.Params{Model: "gpt-4o"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "done" {
		t.Fatalf("out = %q", out)
	}
	if path != "/v1/chat/completions" {
		t.Fatalf("path = %q", path)
	}
}
