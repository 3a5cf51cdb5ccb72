package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/tsawler/folio/document"
)

// ErrNotCached is returned when no snapshot exists for a content id.
var ErrNotCached = errors.New("store: document not cached")

// schema is applied on open; the table keeps one snapshot per source
// document.
const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	content_id TEXT PRIMARY KEY,
	snapshot   TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// Store is a SQLite-backed snapshot cache keyed by content id.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open creates or opens the snapshot database under dataDir. A nil logger
// falls back to slog.Default.
func Open(dataDir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "folio.db")

	// WAL mode so a reader (export) can overlap a writer (autosave)
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	logger.Debug("snapshot store opened", "path", dbPath)
	return &Store{db: db, path: dbPath, logger: logger}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ContentID derives the cache key for a source document's raw bytes.
func ContentID(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Save stores or replaces the snapshot for a content id.
func (s *Store) Save(ctx context.Context, contentID string, snap document.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshalling snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (content_id, snapshot)
		VALUES (?, ?)
		ON CONFLICT(content_id) DO UPDATE SET
			snapshot = excluded.snapshot,
			updated_at = CURRENT_TIMESTAMP
	`, contentID, string(data))
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	s.logger.Debug("snapshot saved", "content_id", contentID, "pages", len(snap.Pages))
	return nil
}

// Load retrieves the snapshot for a content id. ErrNotCached is returned
// when the document has never been saved.
func (s *Store) Load(ctx context.Context, contentID string) (document.Snapshot, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT snapshot FROM snapshots WHERE content_id = ?
	`, contentID).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return document.Snapshot{}, fmt.Errorf("%w: %s", ErrNotCached, contentID)
		}
		return document.Snapshot{}, fmt.Errorf("loading snapshot: %w", err)
	}

	var snap document.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return document.Snapshot{}, fmt.Errorf("unmarshaling snapshot: %w", err)
	}
	return snap, nil
}

// Delete removes the snapshot for a content id. Deleting an absent id is
// not an error.
func (s *Store) Delete(ctx context.Context, contentID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE content_id = ?", contentID)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	return nil
}

// List returns every cached content id.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT content_id FROM snapshots ORDER BY content_id")
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning content id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return ids, nil
}
