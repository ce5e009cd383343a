// Package persistence stores game snapshots in a local SQLite database.
// Snapshots are JSON, zstd-compressed, keyed by save slot, and carry a
// schema version so old saves are rejected instead of misread.
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"github.com/verdantloop/chronogarden/internal/domain"
)

// SnapshotVersion is the current save schema. Bump it when GameState
// changes shape incompatibly.
const SnapshotVersion = 1

// DefaultSlot is the slot used when the player never names one.
const DefaultSlot = "default"

// SlotInfo describes one saved game.
type SlotInfo struct {
	Slot    string    `json:"slot"`
	Version int       `json:"version"`
	SavedAt time.Time `json:"savedAt"`
}

// Store is the save database. Safe for concurrent use; SQLite serializes
// writers through the single connection.
type Store struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Open creates or opens the save database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty save database path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create save directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open save database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, enc: enc, dec: dec}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS saves (
		slot     TEXT PRIMARY KEY,
		version  INTEGER NOT NULL,
		data     BLOB NOT NULL,
		saved_at TEXT NOT NULL
	);`)
	return err
}

// Close releases the database and the compressors.
func (s *Store) Close() error {
	s.enc.Close()
	s.dec.Close()
	return s.db.Close()
}

// Save writes the snapshot into the slot, replacing any previous save.
func (s *Store) Save(ctx context.Context, slot string, state *domain.GameState) error {
	if slot == "" {
		slot = DefaultSlot
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	blob := s.enc.EncodeAll(raw, nil)

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO saves(slot, version, data, saved_at) VALUES(?,?,?,?)`,
		slot, SnapshotVersion, blob, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to write save: %w", err)
	}
	return nil
}

// Load reads and validates the snapshot in the slot.
func (s *Store) Load(ctx context.Context, slot string) (*domain.GameState, error) {
	if slot == "" {
		slot = DefaultSlot
	}
	var (
		version int
		blob    []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT version, data FROM saves WHERE slot = ?`, slot).Scan(&version, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: slot %q", domain.ErrSnapshotNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read save: %w", err)
	}
	if version != SnapshotVersion {
		return nil, fmt.Errorf("%w: save version %d, want %d", domain.ErrInvalidSnapshot, version, SnapshotVersion)
	}

	raw, err := s.dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
	}
	return Import(raw)
}

// Slots lists saved games, most recent first.
func (s *Store) Slots(ctx context.Context) ([]SlotInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT slot, version, saved_at FROM saves ORDER BY saved_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	defer rows.Close()

	var out []SlotInfo
	for rows.Next() {
		var (
			info    SlotInfo
			savedAt string
		)
		if err := rows.Scan(&info.Slot, &info.Version, &savedAt); err != nil {
			return nil, err
		}
		info.SavedAt, _ = time.Parse(time.RFC3339Nano, savedAt)
		out = append(out, info)
	}
	return out, rows.Err()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Delete removes a save slot. Deleting a missing slot is not an error.
func (s *Store) Delete(ctx context.Context, slot string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, slot)
	return err
}
