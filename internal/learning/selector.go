package learning

import (
	"context"
	"sort"
	"strings"

	"github.com/jonathan/coverletter-agent/internal/types"
)

// excerptLimit is the hard character cap on example excerpts surfaced to the
// prompt builder. Truncation is by character count, not word-aligned.
const excerptLimit = 400

// Feedback signal weights. A confirmed interview is the strongest success
// signal, actual usage the second strongest, the subjective rating the weakest.
const (
	wasUsedWeight      = 2
	gotInterviewWeight = 3
)

// Selector ranks historically successful letters for reuse as few-shot
// examples. It only reads from the repository.
type Selector struct {
	repo Repository
}

// NewSelector returns a Selector backed by repo.
func NewSelector(repo Repository) *Selector {
	return &Selector{repo: repo}
}

// Select returns up to limit reference examples matching the query, best
// scored first. An empty result is a normal outcome, not an error: callers
// must be able to generate without examples.
//
// A candidate must have feedback marking it successful (rating >= 4, or it
// was actually used, or it led to an interview), its tone must equal the
// query tone exactly, and its title must contain the query title as a
// case-insensitive substring or vice versa. The loose bidirectional title
// match trades precision for recall ("Senior Software Engineer" matches a
// stored "Software Engineer" and the reverse).
func (s *Selector) Select(ctx context.Context, jobTitle string, tone types.Tone, limit int) ([]types.ExampleRef, error) {
	if limit <= 0 {
		return nil, nil
	}

	records, err := s.repo.ScanAll(ctx)
	if err != nil {
		return nil, err
	}

	queryTitle := strings.ToLower(jobTitle)
	var candidates []types.LetterRecord
	for _, rec := range records {
		if !successful(rec.Feedback) {
			continue
		}
		if rec.Tone != tone {
			continue
		}
		recTitle := strings.ToLower(rec.JobTitle)
		if !strings.Contains(recTitle, queryTitle) && !strings.Contains(queryTitle, recTitle) {
			continue
		}
		candidates = append(candidates, rec)
	}

	// Descending by score; ties broken newest-first, then by id, so the
	// ordering is deterministic across runs.
	sort.Slice(candidates, func(i, j int) bool {
		si, sj := feedbackScore(candidates[i].Feedback), feedbackScore(candidates[j].Feedback)
		if si != sj {
			return si > sj
		}
		if !candidates[i].CreatedAt.Equal(candidates[j].CreatedAt) {
			return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
		}
		return candidates[i].ID > candidates[j].ID
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	examples := make([]types.ExampleRef, 0, len(candidates))
	for _, rec := range candidates {
		examples = append(examples, types.ExampleRef{
			JobTitle:    rec.JobTitle,
			CompanyName: rec.CompanyName,
			Excerpt:     excerpt(rec.Letter),
		})
	}
	return examples, nil
}

// successful reports whether feedback marks a letter as a reusable example.
func successful(fb *types.Feedback) bool {
	if fb == nil {
		return false
	}
	return fb.Rating >= 4 || fb.WasUsed || fb.Interviewed()
}

// feedbackScore is the ranking weight: rating + 2 if used + 3 if it led to an
// interview.
func feedbackScore(fb *types.Feedback) int {
	if fb == nil {
		return 0
	}
	score := fb.Rating
	if fb.WasUsed {
		score += wasUsedWeight
	}
	if fb.Interviewed() {
		score += gotInterviewWeight
	}
	return score
}

// excerpt truncates letter text to excerptLimit characters, appending an
// ellipsis marker when truncated. Counted in runes so a multibyte character
// is never split.
func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLimit {
		return text
	}
	return string(runes[:excerptLimit]) + "..."
}
