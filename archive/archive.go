// Package archive persists run history to SQLite: one row per run plus one
// row per generation best. A Store implements the engine's Sink, so wiring
// it in is the only step needed to make runs durable; the engine itself
// never reads the archive back.
package archive

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tliron/commonlog"
	_ "modernc.org/sqlite"

	"github.com/Hoffee-Toffee/Progeny/block"
	"github.com/Hoffee-Toffee/Progeny/evo"
)

var log = commonlog.GetLogger("progeny.archive")

// ErrRunNotFound indicates the requested run doesn't exist.
var ErrRunNotFound = errors.New("run not found")

// Store handles SQLite storage for run history.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// RunRecord is one archived run.
type RunRecord struct {
	RunID       string
	Problem     string
	StartedAt   time.Time
	BestFitness float64
	Finished    bool
}

// Open opens (or creates) the archive database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		problem TEXT NOT NULL,
		started_at TEXT NOT NULL,
		best_fitness REAL NOT NULL DEFAULT 0,
		best_program JSON,
		finished INTEGER NOT NULL DEFAULT 0
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating runs table: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS generations (
		run_id TEXT NOT NULL,
		trial INTEGER NOT NULL,
		generation INTEGER NOT NULL,
		best_fitness REAL NOT NULL,
		mean_fitness REAL NOT NULL,
		best_program JSON NOT NULL,
		PRIMARY KEY (run_id, trial, generation)
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating generations table: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ---------------------------------------------------------------------------
// Sink implementation
// ---------------------------------------------------------------------------

// Started records a new run row. Sink calls can't surface errors to the
// engine; failures are logged and the run simply goes unarchived.
func (s *Store) Started(run evo.RunInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO runs (id, problem, started_at) VALUES (?, ?, ?)",
		run.RunID, run.Problem, run.StartedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		log.Errorf("recording run %s: %v", run.RunID, err)
	}
}

// Generation records one generation's best program.
func (s *Store) Generation(stats evo.GenerationStats) {
	data, err := block.MarshalProgram(stats.Best)
	if err != nil {
		log.Errorf("serializing generation best: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO generations
		 (run_id, trial, generation, best_fitness, mean_fitness, best_program)
		 VALUES (?, ?, ?, ?, ?, json(?))`,
		stats.RunID, stats.Trial, stats.Generation,
		stats.BestFitness, stats.MeanFitness, string(data),
	)
	if err != nil {
		log.Errorf("recording generation %d/%d: %v", stats.Trial, stats.Generation, err)
	}
}

// Finished marks the run complete and stores its overall best program.
func (s *Store) Finished(result *evo.Result) {
	data, err := block.MarshalProgram(result.Best)
	if err != nil {
		log.Errorf("serializing run best: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(
		"UPDATE runs SET best_fitness = ?, best_program = json(?), finished = 1 WHERE id = ?",
		result.BestFitness, string(data), result.RunID,
	)
	if err != nil {
		log.Errorf("finishing run %s: %v", result.RunID, err)
	}
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// Runs lists archived runs, most recent first.
func (s *Store) Runs() ([]RunRecord, error) {
	rows, err := s.db.Query(
		"SELECT id, problem, started_at, best_fitness, finished FROM runs ORDER BY started_at DESC")
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var started string
		var finished int
		if err := rows.Scan(&r.RunID, &r.Problem, &started, &r.BestFitness, &finished); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parsing run timestamp: %w", err)
		}
		r.Finished = finished != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// BestProgram loads a finished run's overall best program and its fitness.
func (s *Store) BestProgram(runID string) (*block.Program, float64, error) {
	var data sql.NullString
	var fitness float64
	err := s.db.QueryRow(
		"SELECT best_program, best_fitness FROM runs WHERE id = ?", runID,
	).Scan(&data, &fitness)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrRunNotFound
		}
		return nil, 0, fmt.Errorf("querying run: %w", err)
	}
	if !data.Valid {
		return nil, 0, fmt.Errorf("run %s has no archived best program", runID)
	}
	p, err := block.UnmarshalProgram([]byte(data.String))
	if err != nil {
		return nil, 0, fmt.Errorf("decoding best program: %w", err)
	}
	return p, fitness, nil
}

// GenerationBests loads the per-generation best fitness curve for one trial
// of a run, in generation order.
func (s *Store) GenerationBests(runID string, trial int) ([]float64, error) {
	rows, err := s.db.Query(
		`SELECT best_fitness FROM generations
		 WHERE run_id = ? AND trial = ? ORDER BY generation`,
		runID, trial)
	if err != nil {
		return nil, fmt.Errorf("querying generations: %w", err)
	}
	defer rows.Close()

	var curve []float64
	for rows.Next() {
		var f float64
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("scanning generation: %w", err)
		}
		curve = append(curve, f)
	}
	return curve, rows.Err()
}
