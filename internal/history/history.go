// Package history keeps a SQLite log of training runs and their per-epoch
// statistics.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	// Register the pure-Go "sqlite" driver.
	_ "modernc.org/sqlite"

	"github.com/born-ml/ninja/internal/train"
)

// ErrRunNotFound indicates a run id with no row in the runs table.
var ErrRunNotFound = errors.New("history: run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs(
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at INTEGER NOT NULL,
	layer_sizes TEXT NOT NULL,
	batch_size INTEGER NOT NULL,
	epochs INTEGER NOT NULL,
	learning_rate REAL NOT NULL,
	seed INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS epochs(
	run_id INTEGER NOT NULL REFERENCES runs(id),
	epoch INTEGER NOT NULL,
	examples INTEGER NOT NULL,
	batches INTEGER NOT NULL,
	loss REAL NOT NULL,
	seconds REAL NOT NULL,
	PRIMARY KEY (run_id, epoch)
);`

// RunInfo describes a training run.
type RunInfo struct {
	StartedAt    time.Time
	LayerSizes   []int
	BatchSize    int
	Epochs       int
	LearningRate float64
	Seed         int64
}

// Run is a stored run.
type Run struct {
	ID int64
	RunInfo
}

// EpochRecord is one stored epoch.
type EpochRecord struct {
	Epoch    int
	Examples int
	Batches  int
	Loss     float64
	Duration time.Duration
}

// Store is a run history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at dsn, a file path
// or ":memory:".
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", dsn, err)
	}
	// Every ":memory:" connection is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// StartRun inserts a run and returns its id.
func (s *Store) StartRun(ctx context.Context, info RunInfo) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs(started_at, layer_sizes, batch_size, epochs, learning_rate, seed) VALUES(?,?,?,?,?,?)`,
		info.StartedAt.UnixNano(), formatSizes(info.LayerSizes), info.BatchSize, info.Epochs,
		info.LearningRate, info.Seed)
	if err != nil {
		return 0, fmt.Errorf("history: start run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history: start run: %w", err)
	}
	return id, nil
}

// Run returns the run with the given id.
func (s *Store) Run(ctx context.Context, id int64) (Run, error) {
	var (
		r       = Run{ID: id}
		started int64
		sizes   string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT started_at, layer_sizes, batch_size, epochs, learning_rate, seed FROM runs WHERE id = ?`, id).
		Scan(&started, &sizes, &r.BatchSize, &r.Epochs, &r.LearningRate, &r.Seed)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("history: run %d: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("history: run %d: %w", id, err)
	}
	r.StartedAt = time.Unix(0, started).UTC()
	if r.LayerSizes, err = parseSizes(sizes); err != nil {
		return Run{}, fmt.Errorf("history: run %d: %w", id, err)
	}
	return r, nil
}

// RecordEpoch stores one epoch of run runID. Recording an epoch twice
// replaces the earlier row.
func (s *Store) RecordEpoch(ctx context.Context, runID int64, rec EpochRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO epochs(run_id, epoch, examples, batches, loss, seconds) VALUES(?,?,?,?,?,?)`,
		runID, rec.Epoch, rec.Examples, rec.Batches, rec.Loss, rec.Duration.Seconds())
	if err != nil {
		return fmt.Errorf("history: record epoch %d of run %d: %w", rec.Epoch, runID, err)
	}
	return nil
}

// Epochs returns the stored epochs of run runID in epoch order.
func (s *Store) Epochs(ctx context.Context, runID int64) ([]EpochRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT epoch, examples, batches, loss, seconds FROM epochs WHERE run_id = ? ORDER BY epoch`, runID)
	if err != nil {
		return nil, fmt.Errorf("history: epochs of run %d: %w", runID, err)
	}
	defer rows.Close()

	var out []EpochRecord
	for rows.Next() {
		var (
			rec     EpochRecord
			seconds float64
		)
		if err := rows.Scan(&rec.Epoch, &rec.Examples, &rec.Batches, &rec.Loss, &seconds); err != nil {
			return nil, fmt.Errorf("history: epochs of run %d: %w", runID, err)
		}
		rec.Duration = time.Duration(seconds * float64(time.Second))
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: epochs of run %d: %w", runID, err)
	}
	return out, nil
}

// Recorder returns a train.Recorder storing epochs under runID.
func (s *Store) Recorder(runID int64) train.Recorder {
	return train.RecorderFunc(func(ctx context.Context, st train.EpochStats) error {
		return s.RecordEpoch(ctx, runID, EpochRecord{
			Epoch:    st.Epoch,
			Examples: st.Examples,
			Batches:  st.Batches,
			Loss:     st.Loss,
			Duration: st.Duration,
		})
	})
}

func formatSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, " ")
}

func parseSizes(text string) ([]int, error) {
	fields := strings.Fields(text)
	sizes := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("layer sizes %q: %w", text, err)
		}
		sizes[i] = n
	}
	return sizes, nil
}
