package learning

import (
	"context"

	"github.com/jonathan/coverletter-agent/internal/types"
)

// Aggregator computes summary metrics over the whole store.
type Aggregator struct {
	repo Repository
}

// NewAggregator returns an Aggregator backed by repo.
func NewAggregator(repo Repository) *Aggregator {
	return &Aggregator{repo: repo}
}

// Stats scans the store and returns summary metrics. All ratios are 0, not
// NaN, when their denominator is empty.
func (a *Aggregator) Stats(ctx context.Context) (types.LetterStats, error) {
	records, err := a.repo.ScanAll(ctx)
	if err != nil {
		return types.LetterStats{}, err
	}

	stats := types.LetterStats{TotalGenerated: len(records)}

	rated := 0
	ratingSum := 0
	used := 0
	for _, rec := range records {
		if rec.Feedback == nil {
			continue
		}
		stats.WithFeedback++
		if rec.Feedback.Rating > 0 {
			rated++
			ratingSum += rec.Feedback.Rating
		}
		if rec.Feedback.WasUsed {
			used++
		}
	}

	if rated > 0 {
		stats.AverageRating = float64(ratingSum) / float64(rated)
	}
	if len(records) > 0 {
		stats.SuccessRate = float64(used) / float64(len(records))
	}
	return stats, nil
}
