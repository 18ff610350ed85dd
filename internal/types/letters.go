// Package types provides type definitions for structured data used throughout the cover letter agent.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Tone is the closed style category under which a letter is generated.
type Tone string

// Supported letter tones.
const (
	ToneProfessional   Tone = "professional"
	ToneConversational Tone = "conversational"
	ToneEnthusiastic   Tone = "enthusiastic"
	ToneFormal         Tone = "formal"
)

// Tones lists every supported tone in a stable order.
var Tones = []Tone{ToneProfessional, ToneConversational, ToneEnthusiastic, ToneFormal}

// Valid reports whether t is one of the supported tones.
func (t Tone) Valid() bool {
	switch t {
	case ToneProfessional, ToneConversational, ToneEnthusiastic, ToneFormal:
		return true
	}
	return false
}

// Feedback is the user-supplied outcome signal attached to a letter after the fact.
// Resubmitting feedback replaces the previous value entirely.
type Feedback struct {
	Rating       int    `json:"rating"`
	WasUsed      bool   `json:"was_used"`
	GotInterview *bool  `json:"got_interview,omitempty"`
	Comments     string `json:"comments,omitempty"`
}

// Interviewed reports whether the feedback carries a confirmed interview outcome.
func (f *Feedback) Interviewed() bool {
	return f.GotInterview != nil && *f.GotInterview
}

// RecordMetadata holds auxiliary profile strings kept for bookkeeping only.
type RecordMetadata struct {
	KeySkills           string `json:"key_skills,omitempty"`
	ProfessionalSummary string `json:"professional_summary,omitempty"`
}

// LetterRecord is one persisted generated letter plus its immutable context and
// optional feedback. Feedback is the only mutable field; records are never deleted.
type LetterRecord struct {
	ID          string         `json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	JobTitle    string         `json:"job_title"`
	CompanyName string         `json:"company_name"`
	Industry    string         `json:"industry,omitempty"`
	Tone        Tone           `json:"tone"`
	Letter      string         `json:"letter"`
	Metadata    RecordMetadata `json:"metadata"`
	Feedback    *Feedback      `json:"feedback,omitempty"`
}

// NewLetterRecord holds the caller-supplied fields for Repository.Create.
// The repository assigns the id and creation timestamp.
type NewLetterRecord struct {
	JobTitle    string         `validate:"required,min=1"`
	CompanyName string         `validate:"required,min=1"`
	Industry    string
	Tone        Tone           `validate:"required,oneof=professional conversational enthusiastic formal"`
	Letter      string         `validate:"required,min=1"`
	Metadata    RecordMetadata
}

// Validate validates the NewLetterRecord using the validator.
func (r *NewLetterRecord) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ExampleRef is a past letter surfaced to the generation process as in-context
// reference material. Excerpt is the letter text truncated to 400 characters.
type ExampleRef struct {
	JobTitle    string `json:"job_title"`
	CompanyName string `json:"company_name"`
	Excerpt     string `json:"excerpt"`
}

// LetterStats is the read-only summary computed over the whole store.
type LetterStats struct {
	TotalGenerated int     `json:"total_generated"`
	WithFeedback   int     `json:"with_feedback"`
	AverageRating  float64 `json:"average_rating"`
	SuccessRate    float64 `json:"success_rate"`
}
