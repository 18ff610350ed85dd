package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/coverletter-agent/internal/learning"
	"github.com/jonathan/coverletter-agent/internal/types"
)

// stubLLM returns a canned letter without network access.
type stubLLM struct{ letter string }

func (s stubLLM) GenerateText(context.Context, string) (string, error) { return s.letter, nil }
func (s stubLLM) Close() error                                         { return nil }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	repo, err := learning.OpenFileStore(filepath.Join(t.TempDir(), "letters.json"))
	require.NoError(t, err)
	return New(Config{Port: 0}, repo, stubLLM{letter: "Dear Hiring Manager, test letter."})
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func saveLetter(t *testing.T, srv *Server, title string, tone types.Tone) string {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/letters", types.SaveLetterRequest{
		JobTitle:    title,
		CompanyName: "Acme",
		Tone:        tone,
		Letter:      "Dear Hiring Manager, I am writing about the " + title + " role.",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp SaveLetterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.LetterID)
	return resp.LetterID
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSaveLetterValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body types.SaveLetterRequest
	}{
		{"missing job title", types.SaveLetterRequest{CompanyName: "Acme", Tone: types.ToneFormal, Letter: "x"}},
		{"missing letter", types.SaveLetterRequest{JobTitle: "Engineer", CompanyName: "Acme", Tone: types.ToneFormal}},
		{"bad tone", types.SaveLetterRequest{JobTitle: "Engineer", CompanyName: "Acme", Tone: "casual", Letter: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/letters", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestFeedbackFlow(t *testing.T) {
	srv := newTestServer(t)
	id := saveLetter(t, srv, "Software Engineer", types.ToneProfessional)

	yes := true
	rec := doJSON(t, srv, http.MethodPost, "/feedback", types.FeedbackRequest{
		LetterID: id, Rating: 5, WasUsed: true, GotInterview: &yes,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestFeedbackUnknownLetter(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/feedback", types.FeedbackRequest{
		LetterID: "letter_missing", Rating: 4,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFeedbackRatingValidation(t *testing.T) {
	srv := newTestServer(t)
	id := saveLetter(t, srv, "Software Engineer", types.ToneProfessional)

	for _, rating := range []int{0, 6} {
		rec := doJSON(t, srv, http.MethodPost, "/feedback", types.FeedbackRequest{
			LetterID: id, Rating: rating,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "rating %d", rating)
	}
}

func TestExamplesEndpoint(t *testing.T) {
	srv := newTestServer(t)
	id := saveLetter(t, srv, "Software Engineer", types.ToneFormal)

	rec := doJSON(t, srv, http.MethodPost, "/feedback", types.FeedbackRequest{
		LetterID: id, Rating: 5, WasUsed: true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/examples?job_title=Senior+Software+Engineer&tone=formal", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp ExamplesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Examples, 1)
	assert.Equal(t, "Software Engineer", resp.Examples[0].JobTitle)

	// Different tone never sees the example.
	rec = doJSON(t, srv, http.MethodGet, "/examples?job_title=Software+Engineer&tone=professional", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = ExamplesResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Examples)
}

func TestExamplesEndpointValidation(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/examples?tone=formal", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/examples?job_title=x&tone=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/examples?job_title=x&tone=formal&limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var empty types.LetterStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &empty))
	assert.Equal(t, 0, empty.TotalGenerated)
	assert.Equal(t, 0.0, empty.AverageRating)

	id := saveLetter(t, srv, "Software Engineer", types.ToneProfessional)
	saveLetter(t, srv, "Data Analyst", types.ToneFormal)
	rec = doJSON(t, srv, http.MethodPost, "/feedback", types.FeedbackRequest{
		LetterID: id, Rating: 4, WasUsed: true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats types.LetterStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.TotalGenerated)
	assert.Equal(t, 1, stats.WithFeedback)
	assert.InDelta(t, 4.0, stats.AverageRating, 0.001)
	assert.InDelta(t, 0.5, stats.SuccessRate, 0.001)
}

func TestGenerateEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/generate", types.GenerateRequest{
		UserName:       "Jane Doe",
		JobTitle:       "Software Engineer",
		CompanyName:    "Acme",
		JobDescription: "Build backend services.",
		Tone:           types.ToneProfessional,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		LetterID string `json:"letter_id"`
		Letter   string `json:"letter"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Dear Hiring Manager, test letter.", resp.Letter)
	assert.NotEmpty(t, resp.LetterID)

	// The generated letter is stored and visible to stats.
	statsRec := doJSON(t, srv, http.MethodGet, "/stats", nil)
	var stats types.LetterStats
	require.NoError(t, json.Unmarshal(statsRec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalGenerated)
}

func TestGenerateEndpointValidation(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/generate", types.GenerateRequest{
		UserName: "Jane Doe",
		Tone:     types.ToneProfessional,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateUnavailableWithoutClient(t *testing.T) {
	repo, err := learning.OpenFileStore(filepath.Join(t.TempDir(), "letters.json"))
	require.NoError(t, err)
	srv := New(Config{Port: 0}, repo, nil)

	rec := doJSON(t, srv, http.MethodPost, "/generate", types.GenerateRequest{
		UserName:       "Jane Doe",
		JobTitle:       "Software Engineer",
		CompanyName:    "Acme",
		JobDescription: "Build backend services.",
		Tone:           types.ToneProfessional,
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
