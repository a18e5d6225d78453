package local

import (
	"errors"
	"testing"

	"resume-o-matic/internal/llm"
)

func TestNewClient(t *testing.T) {
	if _, err := NewClient(""); !errors.Is(err, llm.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
	c, err := NewClient("http://localhost:1234/v1/chat/completions")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.endpoint.HTTPClient.Timeout != Timeout {
		t.Fatalf("timeout = %v", c.endpoint.HTTPClient.Timeout)
	}
	if c.endpoint.APIKey != "" {
		t.Fatalf("local client must not send a key")
	}
}
