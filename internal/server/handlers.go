package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/jonathan/coverletter-agent/internal/learning"
	"github.com/jonathan/coverletter-agent/internal/types"
)

// SaveLetterResponse represents the response for POST /letters.
type SaveLetterResponse struct {
	LetterID string `json:"letter_id"`
}

// FeedbackResponse represents the response for POST /feedback.
type FeedbackResponse struct {
	Success bool `json:"success"`
}

// ExamplesResponse represents the response for GET /examples.
type ExamplesResponse struct {
	Examples []types.ExampleRef `json:"examples"`
}

// handleGenerate generates a cover letter and records it for future learning.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Letter generation is not configured (missing GEMINI_API_KEY)")
		return
	}

	var req types.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing or invalid fields: "+err.Error())
		return
	}

	result, err := s.generator.Generate(r.Context(), &req)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Generation failed: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleSaveLetter stores an already-generated letter.
func (s *Server) handleSaveLetter(w http.ResponseWriter, r *http.Request) {
	var req types.SaveLetterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing or invalid fields: "+err.Error())
		return
	}

	id, err := s.repo.Create(r.Context(), types.NewLetterRecord{
		JobTitle:    req.JobTitle,
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		Tone:        req.Tone,
		Letter:      req.Letter,
		Metadata: types.RecordMetadata{
			KeySkills:           req.KeySkills,
			ProfessionalSummary: req.ProfessionalSummary,
		},
	})
	if err != nil {
		var verr *learning.ValidationError
		if errors.As(err, &verr) {
			s.errorResponse(w, http.StatusBadRequest, verr.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save letter: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, SaveLetterResponse{LetterID: id})
}

// handleFeedback attaches user feedback to a stored letter.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req types.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing or invalid fields: "+err.Error())
		return
	}

	err := s.ingestor.Submit(r.Context(), req.LetterID, types.Feedback{
		Rating:       req.Rating,
		WasUsed:      req.WasUsed,
		GotInterview: req.GotInterview,
		Comments:     req.Comments,
	})
	if err != nil {
		var verr *learning.ValidationError
		switch {
		case errors.As(err, &verr):
			s.errorResponse(w, http.StatusBadRequest, verr.Error())
		case errors.Is(err, learning.ErrNotFound):
			s.errorResponse(w, http.StatusNotFound, "Letter not found: "+req.LetterID)
		default:
			s.errorResponse(w, http.StatusInternalServerError, "Failed to save feedback: "+err.Error())
		}
		return
	}
	s.jsonResponse(w, http.StatusOK, FeedbackResponse{Success: true})
}

// handleExamples runs a selector query. Intended for reporting and debugging;
// the generation path queries the selector directly.
func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	jobTitle := r.URL.Query().Get("job_title")
	tone := types.Tone(r.URL.Query().Get("tone"))
	if jobTitle == "" || !tone.Valid() {
		s.errorResponse(w, http.StatusBadRequest, "job_title and a valid tone are required")
		return
	}

	limit := 5
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	examples, err := s.selector.Select(r.Context(), jobTitle, tone, limit)
	if err != nil {
		// Learning-store unavailability degrades to "no examples".
		examples = nil
	}
	if examples == nil {
		examples = []types.ExampleRef{}
	}
	s.jsonResponse(w, http.StatusOK, ExamplesResponse{Examples: examples})
}

// handleStats returns summary metrics over the whole store.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.aggregator.Stats(r.Context())
	if err != nil {
		// Same degradation: reporting never hard-fails on store trouble.
		stats = types.LetterStats{}
	}
	s.jsonResponse(w, http.StatusOK, stats)
}

// handleHealth returns liveness status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
