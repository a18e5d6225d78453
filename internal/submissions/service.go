package submissions

import (
	"context"
	"fmt"
	"strings"
)

// Service contains read and delete operations over stored submissions.
// Creation and regeneration go through the workflow package.
type Service struct {
	Repo Repo
}

// Get returns a submission by ID.
func (s *Service) Get(ctx context.Context, id string) (Submission, error) {
	if strings.TrimSpace(id) == "" {
		return Submission{}, ErrInvalidInput
	}
	return s.Repo.Get(ctx, id)
}

// List returns submissions newest first, optionally filtered by state.
func (s *Service) List(ctx context.Context, rawState string) ([]Submission, error) {
	state := ParseState(rawState)
	if state != "" && !state.Valid() {
		return nil, fmt.Errorf("%w: unknown state %q", ErrInvalidInput, rawState)
	}
	return s.Repo.List(ctx, state)
}

// Delete removes a submission. Deleting an unknown ID succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, id)
}
