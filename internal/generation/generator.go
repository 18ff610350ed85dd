// Package generation orchestrates cover letter generation: it gathers
// reference examples from the learning store, builds the prompt, invokes the
// LLM, and records the result for future learning.
package generation

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/coverletter-agent/internal/learning"
	"github.com/jonathan/coverletter-agent/internal/llm"
	"github.com/jonathan/coverletter-agent/internal/prompts"
	"github.com/jonathan/coverletter-agent/internal/types"
)

// exampleLimit caps how many past letters are surfaced as few-shot context.
const exampleLimit = 2

// Result is the outcome of one generation.
type Result struct {
	// LetterID identifies the stored record, empty when persisting failed.
	// The letter itself is still usable in that case; only the learning
	// signal is lost.
	LetterID string `json:"letter_id,omitempty"`
	Letter   string `json:"letter"`
	// ExamplesUsed is how many reference examples informed the prompt.
	ExamplesUsed int `json:"examples_used"`
}

// Generator produces letters and feeds successful generations back into the
// example store.
type Generator struct {
	client   llm.Client
	selector *learning.Selector
	repo     learning.Repository
}

// New returns a Generator wired to the given client and store.
func New(client llm.Client, repo learning.Repository) *Generator {
	return &Generator{
		client:   client,
		selector: learning.NewSelector(repo),
		repo:     repo,
	}
}

// Generate produces a letter for the request. Learning-store failures never
// block the generation path: selection errors degrade to "no examples" and a
// failed save is logged, not returned.
func (g *Generator) Generate(ctx context.Context, req *types.GenerateRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generate request: %w", err)
	}

	examples, err := g.selector.Select(ctx, req.JobTitle, req.Tone, exampleLimit)
	if err != nil {
		log.Printf("example selection failed, generating without examples: %v", err)
		examples = nil
	}

	prompt, err := prompts.BuildLetterPrompt(req, examples)
	if err != nil {
		return nil, err
	}

	letter, err := g.client.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("letter generation failed: %w", err)
	}

	result := &Result{Letter: letter, ExamplesUsed: len(examples)}

	id, err := g.repo.Create(ctx, types.NewLetterRecord{
		JobTitle:    req.JobTitle,
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		Tone:        req.Tone,
		Letter:      letter,
		Metadata: types.RecordMetadata{
			KeySkills:           req.KeySkills,
			ProfessionalSummary: req.ProfessionalSummary,
		},
	})
	if err != nil {
		log.Printf("WARNING: generated letter not persisted, feedback on it will be impossible: %v", err)
		return result, nil
	}

	result.LetterID = id
	return result, nil
}
