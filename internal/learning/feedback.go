package learning

import (
	"context"
	"fmt"

	"github.com/jonathan/coverletter-agent/internal/types"
)

// Ingestor validates and attaches outcome signals to stored letters.
type Ingestor struct {
	repo Repository
}

// NewIngestor returns an Ingestor backed by repo.
func NewIngestor(repo Repository) *Ingestor {
	return &Ingestor{repo: repo}
}

// Submit attaches feedback to the letter with the given id. The rating must
// be in [1,5]; anything else is rejected before any storage mutation.
// Resubmitting feedback for the same id replaces the previous value entirely,
// there is no accumulation or history. Returns ErrNotFound (wrapped) when the
// id is unknown.
func (in *Ingestor) Submit(ctx context.Context, id string, fb types.Feedback) error {
	if id == "" {
		return &ValidationError{Field: "letter_id", Message: "must not be empty"}
	}
	if fb.Rating < 1 || fb.Rating > 5 {
		return &ValidationError{
			Field:   "rating",
			Message: fmt.Sprintf("must be between 1 and 5, got %d", fb.Rating),
		}
	}
	return in.repo.UpdateFeedback(ctx, id, fb)
}
