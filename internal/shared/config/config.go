package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"resume-o-matic/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	// GenerateRatePerMin caps model-backed requests per client; 0 disables.
	GenerateRatePerMin int
	GenerateBurst      int

	DBDriver    string
	DatabaseURL string
	SQLitePath  string
	AutoMigrate bool

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string

	LLMBackend        string
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAITimeoutSecs int
	LMStudioURL       string
	LLMModel          string
	ResumeMaxTokens   int
	CoverMaxTokens    int
	LLMTemperature    float64
	ResumeDir         string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	for _, path := range []string{".env", "cmd/.env"} {
		_ = godotenv.Load(path)
	}

	env := normalizeEnv(getEnv("ENV", "dev"))
	driver := normalizeDriver(getEnv("DB_DRIVER", "sqlite"))
	dbURL := os.Getenv("DATABASE_URL")

	if driver == "postgres" && dbURL == "" {
		telemetry.Warn("DATABASE_URL is required for DB_DRIVER=postgres", nil)
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),

		GenerateRatePerMin: getInt("GENERATE_RATE_PER_MIN", 6),
		GenerateBurst:      getInt("GENERATE_BURST", 3),

		DBDriver:    driver,
		DatabaseURL: dbURL,
		SQLitePath:  getEnv("SQLITE_PATH", "./data/resume-o-matic.db"),
		AutoMigrate: getBool("AUTO_MIGRATE", true),

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),

		LLMBackend:        strings.ToLower(strings.TrimSpace(getEnv("LLM_BACKEND", "openai"))),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAITimeoutSecs: getInt("OPENAI_TIMEOUT_SECONDS", 0),
		LMStudioURL:       getEnv("LMSTUDIO_URL", "http://localhost:1234/v1/chat/completions"),
		LLMModel:          getEnv("LLM_MODEL", "gpt-4o"),
		ResumeMaxTokens:   getInt("LLM_RESUME_MAX_TOKENS", 1800),
		CoverMaxTokens:    getInt("LLM_COVER_MAX_TOKENS", 1200),
		LLMTemperature:    getFloat("LLM_TEMPERATURE", 0.7),
		ResumeDir:         getEnv("RESUME_DIR", "."),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		telemetry.Warn("config invalid int", map[string]any{"key": key, "error": err.Error()})
		return def
	}
	return v
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		telemetry.Warn("config invalid float", map[string]any{"key": key, "error": err.Error()})
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		telemetry.Warn("config invalid bool", map[string]any{"key": key, "error": err.Error()})
		return def
	}
	return v
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeDriver(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "postgresql", "pgx":
		return "postgres"
	case "memory", "mem":
		return "memory"
	default:
		return "sqlite"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
