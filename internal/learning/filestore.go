package learning

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonathan/coverletter-agent/internal/schemas"
	"github.com/jonathan/coverletter-agent/internal/types"
)

// FileStore is the default Repository backend: a single JSON collection file.
// The persisted form has no per-record addressability, so every mutation is a
// whole-collection read-modify-write; a mutex serializes mutations and writes
// go through a temp file plus atomic rename so a crash mid-write cannot
// corrupt the previously valid state.
type FileStore struct {
	mu   sync.RWMutex
	path string

	// corruptLoads counts how many times the persisted collection was
	// unreadable and treated as empty. Exposed so the fallback is
	// observable rather than silent. Atomic because load also runs under
	// the read lock.
	corruptLoads atomic.Int64
}

// OpenFileStore opens (or initializes) a file-backed store at path. The
// parent directory is created if missing. A corrupt existing file is not an
// error: it is logged loudly and the store behaves as empty, preserving
// availability over strictness.
func OpenFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, &ValidationError{Field: "path", Message: "store path must not be empty"}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &StorageError{Op: "open", Cause: err}
	}
	s := &FileStore{path: path}

	// Probe the existing collection so corruption is reported at startup,
	// not on first use.
	s.mu.Lock()
	s.load()
	s.mu.Unlock()

	return s, nil
}

// Create validates the record, assigns an id and timestamp, and appends it to
// the collection file.
func (s *FileStore) Create(ctx context.Context, rec types.NewLetterRecord) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validateNewRecord(rec); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load()
	saved := materialize(rec, time.Now())
	records = append(records, saved)

	if err := s.save(records); err != nil {
		return "", err
	}
	return saved.ID, nil
}

// UpdateFeedback replaces the feedback of the record with the given id.
func (s *FileStore) UpdateFeedback(ctx context.Context, id string, fb types.Feedback) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load()
	idx := -1
	for i := range records {
		if records[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("update feedback for %s: %w", id, ErrNotFound)
	}

	fbCopy := fb
	records[idx].Feedback = &fbCopy
	return s.save(records)
}

// ScanAll returns a snapshot of every record in storage order.
func (s *FileStore) ScanAll(ctx context.Context) ([]types.LetterRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load(), nil
}

// CorruptLoads reports how many times the persisted collection was found
// unreadable and replaced with an empty one.
func (s *FileStore) CorruptLoads() int {
	return int(s.corruptLoads.Load())
}

// Close releases resources. The file store holds no open handles.
func (s *FileStore) Close() error { return nil }

// load reads the collection file. Caller must hold mu. A missing file is an
// empty store; an unreadable or schema-invalid file is treated as empty and
// logged loudly, since it silently discards all history otherwise.
func (s *FileStore) load() []types.LetterRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARNING: letter store %s unreadable, treating as empty: %v", s.path, err)
			s.corruptLoads.Add(1)
		}
		return nil
	}

	var records []types.LetterRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("WARNING: letter store %s corrupt, treating as empty (all history discarded): %v", s.path, err)
		s.corruptLoads.Add(1)
		return nil
	}

	if err := schemas.ValidateLetterCollection(data); err != nil {
		log.Printf("WARNING: letter store %s failed schema validation, treating as empty (all history discarded): %v", s.path, err)
		s.corruptLoads.Add(1)
		return nil
	}

	return records
}

// save writes the collection atomically: marshal, write to a temp file in the
// same directory, then rename over the previous file.
func (s *FileStore) save(records []types.LetterRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &StorageError{Op: "marshal", Cause: err}
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".letters-*.json")
	if err != nil {
		return &StorageError{Op: "write", Cause: err}
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &StorageError{Op: "write", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &StorageError{Op: "write", Cause: err}
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return &StorageError{Op: "rename", Cause: err}
	}
	return nil
}
