// CLAUDE:SUMMARY SQLite-backed session snapshot store keyed (namespace, user_id, slot).
package sessiondb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hazyhaar/crosswalk/pkg/match"
)

// DB implements match.Store on a SQLite sessions table. One row per
// (namespace, user, slot); Save upserts the whole snapshot as a JSON
// payload, so the session is written and read atomically as one record.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and ensures the
// sessions table exists.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS sessions (
		namespace  TEXT NOT NULL,
		user_id    TEXT NOT NULL,
		slot       TEXT NOT NULL,
		payload    TEXT NOT NULL,
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (namespace, user_id, slot)
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sessions table: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the underlying connection.
func (s *DB) Close() error {
	return s.db.Close()
}

// Save upserts the snapshot under key. Overlapping saves are not
// serialized; the last write wins at the database.
func (s *DB) Save(ctx context.Context, key match.Key, snap *match.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	const q = `INSERT INTO sessions (namespace, user_id, slot, payload, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (namespace, user_id, slot)
		DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, q, key.Namespace, key.UserID, key.Slot, string(payload), time.Now().Unix()); err != nil {
		return fmt.Errorf("write session %s/%s/%s: %w", key.Namespace, key.UserID, key.Slot, err)
	}
	return nil
}

// Load fetches the snapshot under key. match.ErrNotFound when no row
// exists; any other error is a storage failure.
func (s *DB) Load(ctx context.Context, key match.Key) (*match.Snapshot, error) {
	const q = `SELECT payload FROM sessions WHERE namespace = ? AND user_id = ? AND slot = ?`

	var payload string
	err := s.db.QueryRowContext(ctx, q, key.Namespace, key.UserID, key.Slot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, match.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read session %s/%s/%s: %w", key.Namespace, key.UserID, key.Slot, err)
	}

	var snap match.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s/%s/%s: %w", key.Namespace, key.UserID, key.Slot, err)
	}
	return &snap, nil
}
