package learning

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/coverletter-agent/internal/types"
)

func openTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "letters.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := openTestSQLiteStore(t)
	ctx := context.Background()

	rec := testRecord("Software Engineer", "Acme", types.ToneProfessional)
	rec.Industry = "tech"
	rec.Metadata = types.RecordMetadata{KeySkills: "Go, SQL", ProfessionalSummary: "Backend developer"}

	id, err := store.Create(ctx, rec)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	records, err := store.ScanAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Software Engineer", got.JobTitle)
	assert.Equal(t, "Acme", got.CompanyName)
	assert.Equal(t, "tech", got.Industry)
	assert.Equal(t, types.ToneProfessional, got.Tone)
	assert.Equal(t, "Go, SQL", got.Metadata.KeySkills)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Nil(t, got.Feedback)
}

func TestSQLiteStoreCreateValidation(t *testing.T) {
	store := openTestSQLiteStore(t)

	_, err := store.Create(context.Background(), types.NewLetterRecord{
		JobTitle: "Engineer", CompanyName: "Acme", Tone: "casual", Letter: "x",
	})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSQLiteStoreFeedbackLifecycle(t *testing.T) {
	store := openTestSQLiteStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, testRecord("Software Engineer", "Acme", types.ToneProfessional))
	require.NoError(t, err)

	err = store.UpdateFeedback(ctx, id, types.Feedback{Rating: 4, WasUsed: true, GotInterview: boolPtr(true), Comments: "landed a call"})
	require.NoError(t, err)

	records, err := store.ScanAll(ctx)
	require.NoError(t, err)
	fb := records[0].Feedback
	require.NotNil(t, fb)
	assert.Equal(t, 4, fb.Rating)
	assert.True(t, fb.WasUsed)
	assert.True(t, fb.Interviewed())
	assert.Equal(t, "landed a call", fb.Comments)

	// Overwrite clears everything the resubmission omits.
	require.NoError(t, store.UpdateFeedback(ctx, id, types.Feedback{Rating: 2}))
	records, err = store.ScanAll(ctx)
	require.NoError(t, err)
	fb = records[0].Feedback
	require.NotNil(t, fb)
	assert.Equal(t, 2, fb.Rating)
	assert.False(t, fb.WasUsed)
	assert.Nil(t, fb.GotInterview)
	assert.Empty(t, fb.Comments)
}

func TestSQLiteStoreFeedbackUnknownID(t *testing.T) {
	store := openTestSQLiteStore(t)

	err := store.UpdateFeedback(context.Background(), "letter_missing", types.Feedback{Rating: 3})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStoreScanOrder(t *testing.T) {
	store := openTestSQLiteStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, testRecord("First Role", "Acme", types.ToneFormal))
	require.NoError(t, err)
	second, err := store.Create(ctx, testRecord("Second Role", "Acme", types.ToneFormal))
	require.NoError(t, err)

	records, err := store.ScanAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, first, records[0].ID)
	assert.Equal(t, second, records[1].ID)
}
