// Package savestore keeps save slots and run history in a local sqlite file.
package savestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrSlotNotFound is returned when loading an empty slot
var ErrSlotNotFound = errors.New("save slot not found")

// Slot is one stored snapshot
type Slot struct {
	ID      string
	Slot    int
	Stage   string
	Tick    int
	SavedAt time.Time
	Data    []byte
}

// Outcome of a finished run
type Outcome string

const (
	OutcomeCleared Outcome = "cleared"
	OutcomeDied    Outcome = "died"
	OutcomeQuit    Outcome = "quit"
)

// Run is one row of play history
type Run struct {
	ID         string
	Stage      string
	Seed       int64
	Outcome    Outcome
	Ticks      int
	Coins      int
	Defeated   int
	FinishedAt time.Time
}

// Store is a sqlite-backed save store. A single connection serializes
// writers.
type Store struct {
	db  *sql.DB
	log *log.Logger
}

// Open opens or creates the database at path
func Open(path string, logger *log.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create save dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open save db: %w", err)
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
	return &Store{db: db, log: logger}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("failed to set %q: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS slots (
			slot INTEGER PRIMARY KEY,
			id TEXT NOT NULL,
			stage TEXT NOT NULL,
			tick INTEGER NOT NULL,
			saved_at TEXT NOT NULL,
			data BLOB NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			stage TEXT NOT NULL,
			seed INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			ticks INTEGER NOT NULL,
			coins INTEGER NOT NULL,
			defeated INTEGER NOT NULL,
			finished_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS runs_finished ON runs(finished_at);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("failed to init schema: %w", err)
		}
	}
	return nil
}

// Save writes data into a slot, replacing whatever was there
func (s *Store) Save(ctx context.Context, slot int, stage string, tick int, data []byte) (Slot, error) {
	row := Slot{
		ID:      uuid.New().String(),
		Slot:    slot,
		Stage:   stage,
		Tick:    tick,
		SavedAt: time.Now().UTC().Truncate(time.Second),
		Data:    data,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO slots (slot, id, stage, tick, saved_at, data) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET id=excluded.id, stage=excluded.stage, tick=excluded.tick,
		 saved_at=excluded.saved_at, data=excluded.data`,
		row.Slot, row.ID, row.Stage, row.Tick, row.SavedAt.Format(time.RFC3339), row.Data)
	if err != nil {
		return Slot{}, fmt.Errorf("failed to save slot %d: %w", slot, err)
	}
	s.logf("savestore: slot %d saved (%s, tick %d, %d bytes)", slot, stage, tick, len(data))
	return row, nil
}

// Load reads a slot
func (s *Store) Load(ctx context.Context, slot int) (Slot, error) {
	var (
		row     Slot
		savedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT slot, id, stage, tick, saved_at, data FROM slots WHERE slot = ?`, slot,
	).Scan(&row.Slot, &row.ID, &row.Stage, &row.Tick, &savedAt, &row.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return Slot{}, fmt.Errorf("%w: %d", ErrSlotNotFound, slot)
	}
	if err != nil {
		return Slot{}, fmt.Errorf("failed to load slot %d: %w", slot, err)
	}
	row.SavedAt, _ = time.Parse(time.RFC3339, savedAt)
	return row, nil
}

// Slots lists the occupied slots without their data, ordered by slot
func (s *Store) Slots(ctx context.Context) ([]Slot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slot, id, stage, tick, saved_at FROM slots ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	defer rows.Close()

	var out []Slot
	for rows.Next() {
		var (
			row     Slot
			savedAt string
		)
		if err := rows.Scan(&row.Slot, &row.ID, &row.Stage, &row.Tick, &savedAt); err != nil {
			return nil, fmt.Errorf("failed to read slot: %w", err)
		}
		row.SavedAt, _ = time.Parse(time.RFC3339, savedAt)
		out = append(out, row)
	}
	return out, rows.Err()
}

// Delete empties a slot. Deleting an empty slot reports ErrSlotNotFound.
func (s *Store) Delete(ctx context.Context, slot int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE slot = ?`, slot)
	if err != nil {
		return fmt.Errorf("failed to delete slot %d: %w", slot, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %d", ErrSlotNotFound, slot)
	}
	return nil
}

// RecordRun appends a finished run and returns it with its id set
func (s *Store) RecordRun(ctx context.Context, r Run) (Run, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}
	r.FinishedAt = r.FinishedAt.UTC().Truncate(time.Second)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, stage, seed, outcome, ticks, coins, defeated, finished_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Stage, r.Seed, string(r.Outcome), r.Ticks, r.Coins, r.Defeated, r.FinishedAt.Format(time.RFC3339))
	if err != nil {
		return Run{}, fmt.Errorf("failed to record run: %w", err)
	}
	return r, nil
}

// Runs returns the most recent runs, newest first
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, stage, seed, outcome, ticks, coins, defeated, finished_at FROM runs
		 ORDER BY finished_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r          Run
			outcome    string
			finishedAt string
		)
		if err := rows.Scan(&r.ID, &r.Stage, &r.Seed, &outcome, &r.Ticks, &r.Coins, &r.Defeated, &finishedAt); err != nil {
			return nil, fmt.Errorf("failed to read run: %w", err)
		}
		r.Outcome = Outcome(outcome)
		r.FinishedAt, _ = time.Parse(time.RFC3339, finishedAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

// BestCoins returns the highest coin count of a cleared run on stage
func (s *Store) BestCoins(ctx context.Context, stage string) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(coins) FROM runs WHERE stage = ? AND outcome = ?`, stage, string(OutcomeCleared),
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("failed to query best run: %w", err)
	}
	return int(best.Int64), nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) logf(format string, args ...any) {
	if s.log == nil {
		return
	}
	s.log.Printf(format, args...)
}
