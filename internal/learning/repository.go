package learning

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/coverletter-agent/internal/types"
)

// Repository is the durable keyed store of letter records. Records are
// append-only: they are created once, never deleted, and only their feedback
// field may be replaced afterwards.
//
// Implementations must serialize Create and UpdateFeedback against each other,
// and ScanAll must observe either the pre- or post-state of any in-flight
// write, never a partial one.
type Repository interface {
	// Create assigns a fresh id and creation timestamp, durably appends the
	// record, and returns the id. The record is not saved unless the write
	// is acknowledged.
	Create(ctx context.Context, rec types.NewLetterRecord) (string, error)

	// UpdateFeedback replaces the feedback of the record with the given id
	// and durably persists the change. Returns ErrNotFound if the id does
	// not exist; the store is left unchanged in that case.
	UpdateFeedback(ctx context.Context, id string, fb types.Feedback) error

	// ScanAll returns a read-only snapshot of every record in storage order.
	ScanAll(ctx context.Context) ([]types.LetterRecord, error)

	// Close releases resources held by the store.
	Close() error
}

// newLetterID returns a fresh record id. The letter_ prefix keeps ids
// recognizable in logs and persisted files.
func newLetterID() string {
	return "letter_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}

// validateNewRecord rejects records with missing required fields or an
// unrecognized tone before anything touches the durable medium.
func validateNewRecord(rec types.NewLetterRecord) error {
	if rec.JobTitle == "" {
		return &ValidationError{Field: "job_title", Message: "must not be empty"}
	}
	if rec.CompanyName == "" {
		return &ValidationError{Field: "company_name", Message: "must not be empty"}
	}
	if rec.Letter == "" {
		return &ValidationError{Field: "letter", Message: "must not be empty"}
	}
	if !rec.Tone.Valid() {
		return &ValidationError{Field: "tone", Message: fmt.Sprintf("unrecognized tone %q", rec.Tone)}
	}
	return nil
}

// materialize builds the persisted record from caller-supplied fields.
func materialize(rec types.NewLetterRecord, now time.Time) types.LetterRecord {
	return types.LetterRecord{
		ID:          newLetterID(),
		CreatedAt:   now.UTC(),
		JobTitle:    rec.JobTitle,
		CompanyName: rec.CompanyName,
		Industry:    rec.Industry,
		Tone:        rec.Tone,
		Letter:      rec.Letter,
		Metadata:    rec.Metadata,
	}
}
