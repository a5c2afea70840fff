// Package store persists labelled save codes in a local SQLite database
// so players can manage named slots instead of copying raw codes around.
// The code column is the source of truth; the summary columns exist only
// for listing and are denormalized from the decoded payload.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// ErrSlotNotFound is returned when no slot carries the requested label.
var ErrSlotNotFound = errors.New("save slot not found")

// Slot is one persisted save.
type Slot struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	Code      string    `json:"code"`
	Presses   int64     `json:"presses"`
	Coins     int64     `json:"coins"`
	Runtime   int64     `json:"runtime_seconds"`
	Upgrade   string    `json:"upgrade"`
	CreatedAt time.Time `json:"created_at"`
}

// Store wraps the slot database.
type Store struct {
	db *sql.DB
}

// Open opens/creates the SQLite database at dbPath and runs migrations.
func Open(dbPath string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open save database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite is not concurrent for writes

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS saves (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL UNIQUE,
			code TEXT NOT NULL,
			presses INTEGER NOT NULL,
			coins INTEGER NOT NULL,
			runtime_seconds INTEGER NOT NULL,
			upgrade TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_saves_created_at ON saves(created_at DESC)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Put stores a slot under its label, replacing any existing slot with the
// same label.
func (s *Store) Put(ctx context.Context, slot Slot) (Slot, error) {
	if slot.Label == "" {
		return Slot{}, fmt.Errorf("store: empty slot label")
	}
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saves (id, label, code, presses, coins, runtime_seconds, upgrade, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(label) DO UPDATE SET
			code = excluded.code,
			presses = excluded.presses,
			coins = excluded.coins,
			runtime_seconds = excluded.runtime_seconds,
			upgrade = excluded.upgrade,
			created_at = excluded.created_at`,
		slot.ID.String(), slot.Label, slot.Code, slot.Presses, slot.Coins,
		slot.Runtime, slot.Upgrade, slot.CreatedAt)
	if err != nil {
		return Slot{}, fmt.Errorf("store slot %q: %w", slot.Label, err)
	}
	return slot, nil
}

// Get returns the slot with the given label.
func (s *Store) Get(ctx context.Context, label string) (Slot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, label, code, presses, coins, runtime_seconds, upgrade, created_at
		FROM saves WHERE label = ?`, label)
	slot, err := scanSlot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Slot{}, fmt.Errorf("store: label %q: %w", label, ErrSlotNotFound)
	}
	if err != nil {
		return Slot{}, fmt.Errorf("load slot %q: %w", label, err)
	}
	return slot, nil
}

// List returns all slots, newest first.
func (s *Store) List(ctx context.Context) ([]Slot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, code, presses, coins, runtime_seconds, upgrade, created_at
		FROM saves ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var slots []Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("list slots: %w", err)
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

// Delete removes the slot with the given label.
func (s *Store) Delete(ctx context.Context, label string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE label = ?`, label)
	if err != nil {
		return fmt.Errorf("delete slot %q: %w", label, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete slot %q: %w", label, err)
	}
	if n == 0 {
		return fmt.Errorf("store: label %q: %w", label, ErrSlotNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSlot(r rowScanner) (Slot, error) {
	var slot Slot
	if err := r.Scan(&slot.ID, &slot.Label, &slot.Code, &slot.Presses, &slot.Coins,
		&slot.Runtime, &slot.Upgrade, &slot.CreatedAt); err != nil {
		return Slot{}, err
	}
	return slot, nil
}
