package corrections

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	rows []Correction
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Create appends a correction.
func (r *MemoryRepo) Create(ctx context.Context, c Correction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, c)
	return nil
}

// Get returns a correction by ID.
func (r *MemoryRepo) Get(ctx context.Context, id string) (Correction, error) {
	if err := ctx.Err(); err != nil {
		return Correction{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return Correction{}, ErrNotFound
}

// List returns corrections in insertion order, optionally filtered by context.
func (r *MemoryRepo) List(ctx context.Context, scope Context) ([]Correction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Correction, 0, len(r.rows))
	for _, c := range r.rows {
		if scope != "" && c.Context != scope {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// Update replaces the editable fields of an existing correction.
func (r *MemoryRepo) Update(ctx context.Context, c Correction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == c.ID {
			c.CreatedAt = r.rows[i].CreatedAt
			r.rows[i] = c
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes a correction. Missing IDs are ignored.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
