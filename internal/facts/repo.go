package facts

import "context"

// Repo defines persistence operations for facts and tweaks.
type Repo interface {
	Create(ctx context.Context, item Item) error
	List(ctx context.Context, kind Kind) ([]Item, error)
	Update(ctx context.Context, item Item) error
	Delete(ctx context.Context, kind Kind, id string) error
}
