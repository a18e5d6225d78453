package facts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for facts and tweaks.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// NewService constructs a Service over repo.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: func() time.Time { return time.Now().UTC() }}
}

// Add stores a new item of the given kind.
func (s *Service) Add(ctx context.Context, kind Kind, text string) (Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Item{}, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	item := Item{ID: uuid.NewString(), Kind: kind, Text: text, CreatedAt: s.now()}
	if err := s.Repo.Create(ctx, item); err != nil {
		return Item{}, err
	}
	return item, nil
}

// List returns items of kind in creation order.
func (s *Service) List(ctx context.Context, kind Kind) ([]Item, error) {
	return s.Repo.List(ctx, kind)
}

// Texts returns just the text of every item of kind, in creation order.
func (s *Service) Texts(ctx context.Context, kind Kind) ([]string, error) {
	items, err := s.Repo.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list %ss: %w", kind, err)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Text)
	}
	return out, nil
}

// Update rewrites the text of an existing item.
func (s *Service) Update(ctx context.Context, kind Kind, id, text string) (Item, error) {
	text = strings.TrimSpace(text)
	if strings.TrimSpace(id) == "" || text == "" {
		return Item{}, fmt.Errorf("%w: id and text are required", ErrInvalidInput)
	}
	item := Item{ID: id, Kind: kind, Text: text}
	if err := s.Repo.Update(ctx, item); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Delete removes an item. Unknown IDs are ignored.
func (s *Service) Delete(ctx context.Context, kind Kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, kind, id)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
