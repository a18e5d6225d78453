package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DB_DRIVER", "LLM_BACKEND", "LLM_MODEL", "LLM_RESUME_MAX_TOKENS", "LLM_COVER_MAX_TOKENS", "LLM_TEMPERATURE", "AUTO_MIGRATE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("DBDriver = %q, want sqlite", cfg.DBDriver)
	}
	if cfg.LLMBackend != "openai" || cfg.LLMModel != "gpt-4o" {
		t.Fatalf("unexpected llm defaults %q %q", cfg.LLMBackend, cfg.LLMModel)
	}
	if cfg.ResumeMaxTokens != 1800 || cfg.CoverMaxTokens != 1200 {
		t.Fatalf("unexpected token defaults %d %d", cfg.ResumeMaxTokens, cfg.CoverMaxTokens)
	}
	if cfg.LLMTemperature != 0.7 {
		t.Fatalf("temperature = %v", cfg.LLMTemperature)
	}
	if !cfg.AutoMigrate {
		t.Fatalf("expected AutoMigrate default true")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "PostgreSQL")
	t.Setenv("LLM_BACKEND", " LMStudio ")
	t.Setenv("LLM_RESUME_MAX_TOKENS", "900")
	t.Setenv("LLM_TEMPERATURE", "not-a-float")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("OBJECT_STORE", "S3")

	cfg := Load()
	if cfg.DBDriver != "postgres" {
		t.Fatalf("DBDriver = %q", cfg.DBDriver)
	}
	if cfg.LLMBackend != "lmstudio" {
		t.Fatalf("LLMBackend = %q", cfg.LLMBackend)
	}
	if cfg.ResumeMaxTokens != 900 {
		t.Fatalf("ResumeMaxTokens = %d", cfg.ResumeMaxTokens)
	}
	if cfg.LLMTemperature != 0.7 {
		t.Fatalf("invalid float should fall back to default, got %v", cfg.LLMTemperature)
	}
	if len(cfg.CORSAllowOrigin) != 2 {
		t.Fatalf("CORSAllowOrigin = %v", cfg.CORSAllowOrigin)
	}
	if cfg.ObjectStoreType != "s3" {
		t.Fatalf("ObjectStoreType = %q", cfg.ObjectStoreType)
	}
}
