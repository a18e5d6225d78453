package telemetry

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWriteForwardsFieldsAndLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	Info("submission saved", map[string]any{"submission_id": "abc"})
	Warn("slow model", map[string]any{"ms": 1200})

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "submission saved" || entries[0].Level != zapcore.InfoLevel {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
	if got := entries[0].ContextMap()["submission_id"]; got != "abc" {
		t.Fatalf("submission_id = %v", got)
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Fatalf("expected warn level, got %v", entries[1].Level)
	}
}

func TestSecretFieldsAreRedacted(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	Error("llm call failed", map[string]any{"openai_api_key": "sk-123", "status": 401})

	ctx := logs.All()[0].ContextMap()
	if ctx["openai_api_key"] != "[REDACTED]" {
		t.Fatalf("api key not redacted: %v", ctx["openai_api_key"])
	}
	if ctx["status"] != int64(401) {
		t.Fatalf("status = %v (%T)", ctx["status"], ctx["status"])
	}
}

func TestInitAcceptsKnownEnvironments(t *testing.T) {
	for _, env := range []string{"dev", "production", ""} {
		if err := Init(env); err != nil {
			t.Fatalf("Init(%q): %v", env, err)
		}
	}
	SetLogger(nil)
}
