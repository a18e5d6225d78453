package corrections

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// Input carries the user-editable fields of a correction.
type Input struct {
	Section       string
	OriginalText  string
	CorrectedText string
	Context       Context
}

// Service contains business logic for corrections.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// NewService constructs a Service over repo.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: func() time.Time { return time.Now().UTC() }}
}

// Create validates and stores a new correction. An empty context defaults to global.
func (s *Service) Create(ctx context.Context, in Input) (Correction, error) {
	c := Correction{
		ID:            uuid.NewString(),
		Section:       strings.TrimSpace(in.Section),
		OriginalText:  in.OriginalText,
		CorrectedText: in.CorrectedText,
		Context:       normalizeContext(in.Context),
		CreatedAt:     s.now(),
	}
	if err := validate.Struct(c); err != nil {
		return Correction{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return Correction{}, fmt.Errorf("create correction: %w", err)
	}
	return c, nil
}

// Get returns a correction by ID.
func (s *Service) Get(ctx context.Context, id string) (Correction, error) {
	if strings.TrimSpace(id) == "" {
		return Correction{}, ErrInvalidInput
	}
	return s.Repo.Get(ctx, id)
}

// List returns corrections in creation order. An empty scope returns every context.
func (s *Service) List(ctx context.Context, scope Context) ([]Correction, error) {
	if scope != "" && !scope.Valid() {
		return nil, fmt.Errorf("%w: unknown context %q", ErrInvalidInput, scope)
	}
	return s.Repo.List(ctx, scope)
}

// Update replaces the editable fields of a correction.
func (s *Service) Update(ctx context.Context, id string, in Input) (Correction, error) {
	if strings.TrimSpace(id) == "" {
		return Correction{}, ErrInvalidInput
	}
	c := Correction{
		ID:            id,
		Section:       strings.TrimSpace(in.Section),
		OriginalText:  in.OriginalText,
		CorrectedText: in.CorrectedText,
		Context:       normalizeContext(in.Context),
	}
	if err := validate.Struct(c); err != nil {
		return Correction{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.Repo.Update(ctx, c); err != nil {
		return Correction{}, err
	}
	return s.Repo.Get(ctx, id)
}

// Delete removes a correction. Deleting an unknown ID succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, id)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func normalizeContext(c Context) Context {
	trimmed := Context(strings.ToLower(strings.TrimSpace(string(c))))
	if trimmed == "" {
		return ContextGlobal
	}
	return trimmed
}

// ParseContext normalizes a context query value; blank yields "".
func ParseContext(raw string) (Context, error) {
	c := Context(strings.ToLower(strings.TrimSpace(raw)))
	if c == "" {
		return "", nil
	}
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown context %q", ErrInvalidInput, raw)
	}
	return c, nil
}
