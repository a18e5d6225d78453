package submissions

import (
	"context"
	"time"
)

// Repo defines persistence operations for submissions.
type Repo interface {
	Create(ctx context.Context, s Submission) error
	Get(ctx context.Context, id string) (Submission, error)
	// List returns submissions newest first. An empty state returns all.
	List(ctx context.Context, state State) ([]Submission, error)
	// UpdateOutputs overwrites the generated texts in place.
	UpdateOutputs(ctx context.Context, id, tailoredResume, coverLetter string, at time.Time) error
	// SetState changes the review state. A nil notes pointer keeps stored notes.
	SetState(ctx context.Context, id string, state State, notes *string, at time.Time) error
	Delete(ctx context.Context, id string) error
}
