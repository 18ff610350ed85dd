package learning

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/coverletter-agent/internal/types"
)

// PostgresStore is the Repository backend for deployments with a database.
// Per-key updates and transactional writes come from the database itself, so
// no application-level serialization is needed.
type PostgresStore struct {
	pool *pgxpool.Pool
}

const pgSchema = `
CREATE TABLE IF NOT EXISTS letters (
	id TEXT PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL,
	job_title TEXT NOT NULL,
	company_name TEXT NOT NULL,
	industry TEXT NOT NULL DEFAULT '',
	tone TEXT NOT NULL,
	letter TEXT NOT NULL,
	key_skills TEXT NOT NULL DEFAULT '',
	professional_summary TEXT NOT NULL DEFAULT '',
	seq BIGINT GENERATED ALWAYS AS IDENTITY,
	fb_rating INTEGER,
	fb_was_used BOOLEAN,
	fb_got_interview BOOLEAN,
	fb_comments TEXT
);`

// ConnectPostgres establishes a connection pool and ensures the schema exists.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Create validates the record, assigns an id and timestamp, and inserts it.
func (s *PostgresStore) Create(ctx context.Context, rec types.NewLetterRecord) (string, error) {
	if err := validateNewRecord(rec); err != nil {
		return "", err
	}

	saved := materialize(rec, time.Now())
	_, err := s.pool.Exec(ctx,
		`INSERT INTO letters (id, created_at, job_title, company_name, industry, tone, letter, key_skills, professional_summary)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		saved.ID, saved.CreatedAt, saved.JobTitle, saved.CompanyName,
		saved.Industry, string(saved.Tone), saved.Letter,
		saved.Metadata.KeySkills, saved.Metadata.ProfessionalSummary,
	)
	if err != nil {
		return "", &StorageError{Op: "insert", Cause: err}
	}
	return saved.ID, nil
}

// UpdateFeedback replaces the feedback columns of one row.
func (s *PostgresStore) UpdateFeedback(ctx context.Context, id string, fb types.Feedback) error {
	res, err := s.pool.Exec(ctx,
		`UPDATE letters SET fb_rating = $1, fb_was_used = $2, fb_got_interview = $3, fb_comments = $4 WHERE id = $5`,
		fb.Rating, fb.WasUsed, fb.GotInterview, fb.Comments, id,
	)
	if err != nil {
		return &StorageError{Op: "update", Cause: err}
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ScanAll returns every record in insertion order.
func (s *PostgresStore) ScanAll(ctx context.Context) ([]types.LetterRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, created_at, job_title, company_name, industry, tone, letter,
		        key_skills, professional_summary,
		        fb_rating, fb_was_used, fb_got_interview, fb_comments
		 FROM letters ORDER BY seq ASC`)
	if err != nil {
		return nil, &StorageError{Op: "scan", Cause: err}
	}
	defer rows.Close()

	var records []types.LetterRecord
	for rows.Next() {
		var rec types.LetterRecord
		var tone string
		var rating *int
		var wasUsed, gotInterview *bool
		var comments *string

		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.JobTitle, &rec.CompanyName,
			&rec.Industry, &tone, &rec.Letter,
			&rec.Metadata.KeySkills, &rec.Metadata.ProfessionalSummary,
			&rating, &wasUsed, &gotInterview, &comments); err != nil {
			return nil, &StorageError{Op: "scan", Cause: err}
		}

		rec.Tone = types.Tone(tone)
		if rating != nil {
			fb := &types.Feedback{Rating: *rating}
			if wasUsed != nil {
				fb.WasUsed = *wasUsed
			}
			fb.GotInterview = gotInterview
			if comments != nil {
				fb.Comments = *comments
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

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
