package learning

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/coverletter-agent/internal/types"
)

func testRecord(title, company string, tone types.Tone) types.NewLetterRecord {
	return types.NewLetterRecord{
		JobTitle:    title,
		CompanyName: company,
		Tone:        tone,
		Letter:      "Dear Hiring Manager, I am writing to express my interest.",
	}
}

func openTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := OpenFileStore(filepath.Join(t.TempDir(), "letters.json"))
	require.NoError(t, err)
	return store
}

func TestFileStoreCreateAndScan(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, testRecord("Software Engineer", "Acme", types.ToneProfessional))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	records, err := store.ScanAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, "Software Engineer", rec.JobTitle)
	assert.Equal(t, "Acme", rec.CompanyName)
	assert.Equal(t, types.ToneProfessional, rec.Tone)
	assert.False(t, rec.CreatedAt.IsZero())
	assert.Nil(t, rec.Feedback)
}

func TestFileStoreCreateValidation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		rec  types.NewLetterRecord
	}{
		{"missing job title", types.NewLetterRecord{CompanyName: "Acme", Tone: types.ToneFormal, Letter: "x"}},
		{"missing company", types.NewLetterRecord{JobTitle: "Engineer", Tone: types.ToneFormal, Letter: "x"}},
		{"missing letter", types.NewLetterRecord{JobTitle: "Engineer", CompanyName: "Acme", Tone: types.ToneFormal}},
		{"bad tone", types.NewLetterRecord{JobTitle: "Engineer", CompanyName: "Acme", Tone: "casual", Letter: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Create(ctx, tt.rec)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}

	records, err := store.ScanAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records, "rejected records must not be persisted")
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "letters.json")
	ctx := context.Background()

	store, err := OpenFileStore(path)
	require.NoError(t, err)
	id, err := store.Create(ctx, testRecord("Data Analyst", "Initech", types.ToneFormal))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)
	records, err := reopened.ScanAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].ID)
}

func TestFileStoreUpdateFeedback(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, testRecord("Software Engineer", "Acme", types.ToneProfessional))
	require.NoError(t, err)

	yes := true
	err = store.UpdateFeedback(ctx, id, types.Feedback{Rating: 5, WasUsed: true, GotInterview: &yes, Comments: "great letter"})
	require.NoError(t, err)

	records, err := store.ScanAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	fb := records[0].Feedback
	require.NotNil(t, fb)
	assert.Equal(t, 5, fb.Rating)
	assert.True(t, fb.WasUsed)
	assert.True(t, fb.Interviewed())
	assert.Equal(t, "great letter", fb.Comments)

	// Resubmission fully replaces the previous feedback.
	err = store.UpdateFeedback(ctx, id, types.Feedback{Rating: 1, WasUsed: false})
	require.NoError(t, err)

	records, err = store.ScanAll(ctx)
	require.NoError(t, err)
	fb = records[0].Feedback
	require.NotNil(t, fb)
	assert.Equal(t, 1, fb.Rating)
	assert.False(t, fb.WasUsed)
	assert.Nil(t, fb.GotInterview)
	assert.Empty(t, fb.Comments)
}

func TestFileStoreUpdateFeedbackUnknownID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, testRecord("Software Engineer", "Acme", types.ToneProfessional))
	require.NoError(t, err)

	err = store.UpdateFeedback(ctx, "letter_missing", types.Feedback{Rating: 4})
	assert.ErrorIs(t, err, ErrNotFound)

	records, err := store.ScanAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].Feedback, "failed update must leave the store unchanged")
}

func TestFileStoreCorruptFileTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "letters.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := OpenFileStore(path)
	require.NoError(t, err, "corrupt file must not fail open")

	records, err := store.ScanAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Greater(t, store.CorruptLoads(), 0, "corrupt load must be observable")
}

func TestFileStoreSchemaInvalidTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "letters.json")
	// Valid JSON, but rating out of range violates the collection schema.
	doc := `[{"id":"letter_x","created_at":"2026-01-02T10:00:00Z","job_title":"Engineer","company_name":"Acme","tone":"formal","letter":"hi","feedback":{"rating":9}}]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	store, err := OpenFileStore(path)
	require.NoError(t, err)

	records, err := store.ScanAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Greater(t, store.CorruptLoads(), 0)
}

func TestFileStoreConcurrentCreatesUniqueIDs(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	const n = 20
	ids := make([]string, n)

	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			id, err := store.Create(ctx, testRecord(fmt.Sprintf("Engineer %d", i), "Acme", types.ToneProfessional))
			if err != nil {
				return err
			}
			ids[i] = id
			return nil
		})
	}
	require.NoError(t, g.Wait())

	seen := make(map[string]bool, n)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}

	records, err := store.ScanAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, n, "no concurrent create may be silently dropped")
}
