package corrections

import "context"

// Repo defines persistence operations for corrections.
type Repo interface {
	Create(ctx context.Context, c Correction) error
	Get(ctx context.Context, id string) (Correction, error)
	// List returns corrections in creation order. An empty scope returns all.
	List(ctx context.Context, scope Context) ([]Correction, error)
	Update(ctx context.Context, c Correction) error
	Delete(ctx context.Context, id string) error
}
