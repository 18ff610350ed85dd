package learning

import (
	"context"
	"database/sql"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jonathan/coverletter-agent/internal/types"
)

// SQLiteStore is an embedded Repository backend with native per-key updates:
// feedback is an UPDATE on one row instead of a whole-collection rewrite.
type SQLiteStore struct {
	db *sql.DB

	// SQLite allows one writer at a time; serializing mutations here avoids
	// SQLITE_BUSY churn under concurrent Create/UpdateFeedback.
	mu sync.Mutex
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS letters (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	job_title TEXT NOT NULL,
	company_name TEXT NOT NULL,
	industry TEXT NOT NULL DEFAULT '',
	tone TEXT NOT NULL,
	letter TEXT NOT NULL,
	key_skills TEXT NOT NULL DEFAULT '',
	professional_summary TEXT NOT NULL DEFAULT '',
	fb_rating INTEGER,
	fb_was_used INTEGER,
	fb_got_interview INTEGER,
	fb_comments TEXT
);`

// OpenSQLiteStore opens (or initializes) an embedded store at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, &ValidationError{Field: "path", Message: "store path must not be empty"}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StorageError{Op: "open", Cause: err}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, &StorageError{Op: "migrate", Cause: err}
	}
	return &SQLiteStore{db: db}, nil
}

// Create validates the record, assigns an id and timestamp, and inserts it.
func (s *SQLiteStore) Create(ctx context.Context, rec types.NewLetterRecord) (string, error) {
	if err := validateNewRecord(rec); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	saved := materialize(rec, time.Now())
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO letters (id, created_at, job_title, company_name, industry, tone, letter, key_skills, professional_summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		saved.ID, saved.CreatedAt.Format(time.RFC3339Nano), saved.JobTitle, saved.CompanyName,
		saved.Industry, string(saved.Tone), saved.Letter,
		saved.Metadata.KeySkills, saved.Metadata.ProfessionalSummary,
	)
	if err != nil {
		return "", &StorageError{Op: "insert", Cause: err}
	}
	return saved.ID, nil
}

// UpdateFeedback replaces the feedback columns of one row.
func (s *SQLiteStore) UpdateFeedback(ctx context.Context, id string, fb types.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var gotInterview any
	if fb.GotInterview != nil {
		gotInterview = boolToInt(*fb.GotInterview)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE letters SET fb_rating = ?, fb_was_used = ?, fb_got_interview = ?, fb_comments = ? WHERE id = ?`,
		fb.Rating, boolToInt(fb.WasUsed), gotInterview, fb.Comments, id,
	)
	if err != nil {
		return &StorageError{Op: "update", Cause: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &StorageError{Op: "update", Cause: err}
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ScanAll returns every record in insertion order.
func (s *SQLiteStore) ScanAll(ctx context.Context) ([]types.LetterRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, job_title, company_name, industry, tone, letter,
		        key_skills, professional_summary,
		        fb_rating, fb_was_used, fb_got_interview, fb_comments
		 FROM letters ORDER BY rowid ASC`)
	if err != nil {
		return nil, &StorageError{Op: "scan", Cause: err}
	}
	defer rows.Close()

	var records []types.LetterRecord
	for rows.Next() {
		var rec types.LetterRecord
		var createdAt, tone string
		var rating, wasUsed, gotInterview sql.NullInt64
		var comments sql.NullString

		if err := rows.Scan(&rec.ID, &createdAt, &rec.JobTitle, &rec.CompanyName,
			&rec.Industry, &tone, &rec.Letter,
			&rec.Metadata.KeySkills, &rec.Metadata.ProfessionalSummary,
			&rating, &wasUsed, &gotInterview, &comments); err != nil {
			return nil, &StorageError{Op: "scan", Cause: err}
		}

		rec.Tone = types.Tone(tone)
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			rec.CreatedAt = t
		}
		if rating.Valid {
			fb := &types.Feedback{
				Rating:  int(rating.Int64),
				WasUsed: wasUsed.Valid && wasUsed.Int64 != 0,
			}
			if gotInterview.Valid {
				v := gotInterview.Int64 != 0
				fb.GotInterview = &v
			}
			if comments.Valid {
				fb.Comments = comments.String
			}
			rec.Feedback = fb
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "scan", Cause: err}
	}
	return records, nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
