package facts

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[Kind][]Item
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[Kind][]Item)}
}

func (r *MemoryRepo) Create(ctx context.Context, item Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := item.Kind.table(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[item.Kind] = append(r.data[item.Kind], item)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, kind Kind) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := kind.table(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Item, len(r.data[kind]))
	copy(out, r.data[kind])
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, item Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.data[item.Kind]
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Text = item.Text
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) Delete(ctx context.Context, kind Kind, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.data[kind]
	for i := range items {
		if items[i].ID == id {
			r.data[kind] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
