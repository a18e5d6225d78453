package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Backend names accepted by New.
const (
	BackendOpenAI   = "openai"
	BackendLMStudio = "lmstudio"
)

// SystemMessage is sent ahead of every prompt.
const SystemMessage = "You are an expert career advisor."

// Defaults applied when Params leave a field zero.
const (
	DefaultModel           = "gpt-4o"
	DefaultResumeMaxTokens = 1800
	DefaultCoverMaxTokens  = 1200
	DefaultTemperature     = 0.7
)

// Generator abstracts chat-completion providers.
type Generator interface {
	Generate(ctx context.Context, prompt string, params Params) (string, error)
}

// Params tunes a single completion.
type Params struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// ErrConfig is returned when a backend cannot be constructed.
var ErrConfig = errors.New("llm not configured")

// TransportError wraps a network failure or a non-2xx response.
type TransportError struct {
	Backend    string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: http status %d: %v", e.Backend, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Backend, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Config selects and configures a backend.
type Config struct {
	Backend string

	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAITimeoutSecs int

	LMStudioURL string
}

// Factory builds a Generator for one backend.
type Factory func(cfg Config) (Generator, error)

// New picks the backend once. Backend packages register themselves through Register
// so this package does not import them.
func New(cfg Config) (Generator, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if name == "" {
		name = BackendOpenAI
	}
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown backend %q", ErrConfig, cfg.Backend)
	}
	return factory(cfg)
}

var factories = map[string]Factory{}

// Register installs a backend factory. Called from backend init functions.
func Register(name string, f Factory) {
	factories[name] = f
}

// WithDefaults fills an empty model and a non-positive token limit. Temperature
// is passed through as given, so 0 stays 0.
func (p Params) WithDefaults(maxTokens int) Params {
	if strings.TrimSpace(p.Model) == "" {
		p.Model = DefaultModel
	}
	if p.MaxTokens <= 0 {
		p.MaxTokens = maxTokens
	}
	return p
}

// Unavailable returns a Generator that fails every call with err. It stands in
// when New failed so the rest of the API can still serve.
func Unavailable(err error) Generator {
	if err == nil {
		err = ErrConfig
	}
	return unavailable{err: err}
}

type unavailable struct{ err error }

func (u unavailable) Generate(context.Context, string, Params) (string, error) {
	return "", u.err
}
