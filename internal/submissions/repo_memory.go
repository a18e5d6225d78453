package submissions

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Submission
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Submission)}
}

func (r *MemoryRepo) Create(ctx context.Context, s Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[s.ID] = clone(s)
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Submission, error) {
	if err := ctx.Err(); err != nil {
		return Submission{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.data[id]
	if !ok {
		return Submission{}, ErrNotFound
	}
	return clone(s), nil
}

func (r *MemoryRepo) List(ctx context.Context, state State) ([]Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Submission, 0, len(r.data))
	for _, s := range r.data {
		if state != "" && s.State != state {
			continue
		}
		out = append(out, clone(s))
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID > out[j].ID
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (r *MemoryRepo) UpdateOutputs(ctx context.Context, id, tailoredResume, coverLetter string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}
	s.TailoredResume = tailoredResume
	s.CoverLetter = coverLetter
	s.UpdatedAt = at
	r.data[id] = s
	return nil
}

func (r *MemoryRepo) SetState(ctx context.Context, id string, state State, notes *string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}
	s.State = state
	if notes != nil {
		s.ReviewerNotes = *notes
	}
	s.UpdatedAt = at
	r.data[id] = s
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, id)
	return nil
}

func clone(s Submission) Submission {
	s.Facts = append([]string(nil), s.Facts...)
	s.Tweaks = append([]string(nil), s.Tweaks...)
	return s
}

var _ Repo = (*MemoryRepo)(nil)
