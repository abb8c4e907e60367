package output

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/classroomsim/internal/sim"
)

// Store wraps a SQLite connection holding batch metadata, run outcomes, and
// snapshot rows. Tasks write concurrently; WAL mode plus a busy timeout keep
// them from tripping over each other.
type Store struct {
	conn *sqlx.DB
}

// OpenStore opens or creates the results database at the given path.
func OpenStore(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS batches (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		seed INTEGER NOT NULL,
		half_class INTEGER NOT NULL,
		simulations INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		batch_id TEXT NOT NULL,
		zero_patient INTEGER NOT NULL,
		rep INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		roster TEXT NOT NULL,
		snapshots INTEGER NOT NULL,
		finished_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS snapshots (
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		t_seconds INTEGER NOT NULL,
		statuses TEXT NOT NULL,
		PRIMARY KEY (run_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_batch ON runs(batch_id);
	CREATE INDEX IF NOT EXISTS idx_runs_zero_patient ON runs(zero_patient);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// BatchMeta describes one batch for the store.
type BatchMeta struct {
	ID          string
	Seed        int64
	HalfClass   bool
	Simulations int
}

// CreateBatch records a batch before its tasks are dispatched.
func (s *Store) CreateBatch(b BatchMeta) error {
	half := 0
	if b.HalfClass {
		half = 1
	}
	_, err := s.conn.Exec(
		"INSERT INTO batches (id, started_at, seed, half_class, simulations) VALUES (?, ?, ?, ?, ?)",
		b.ID, time.Now().UTC().Format(time.RFC3339), b.Seed, half, b.Simulations,
	)
	if err != nil {
		return fmt.Errorf("insert batch %s: %w", b.ID, err)
	}
	return nil
}

// RunSink buffers one run's snapshot stream and flushes it to the store in a
// single transaction when the run finishes. Buffering keeps the per-second
// simulation loop free of database round trips.
type RunSink struct {
	store *Store
	runID string

	roster []int
	rows   []snapshotRow
}

type snapshotRow struct {
	seq      int
	tSeconds int
	statuses string
}

// NewRunSink creates a sink for one run.
func (s *Store) NewRunSink(runID string) *RunSink {
	return &RunSink{store: s, runID: runID}
}

// WriteHeader records the participating occupant indices.
func (rs *RunSink) WriteHeader(roster []int) error {
	rs.roster = append(rs.roster[:0], roster...)
	return nil
}

// WriteSnapshot buffers one snapshot row.
func (rs *RunSink) WriteSnapshot(tSeconds int, statuses []sim.Status) error {
	rs.rows = append(rs.rows, snapshotRow{
		seq:      len(rs.rows),
		tSeconds: tSeconds,
		statuses: joinStatuses(statuses),
	})
	return nil
}

// Snapshots returns how many snapshots the run emitted so far.
func (rs *RunSink) Snapshots() int {
	return len(rs.rows)
}

// RunResult identifies a finished run and its outcome.
type RunResult struct {
	RunID       string
	BatchID     string
	ZeroPatient int
	Rep         int
	Seed        int64
	Outcome     sim.Outcome
}

// Flush writes the run record and its buffered snapshots in one transaction.
func (rs *RunSink) Flush(res RunResult) error {
	tx, err := rs.store.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, batch_id, zero_patient, rep, seed, outcome, roster, snapshots, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.RunID, res.BatchID, res.ZeroPatient, res.Rep, res.Seed,
		res.Outcome.String(), joinInts(rs.roster), len(rs.rows),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", res.RunID, err)
	}

	stmt, err := tx.Preparex(
		"INSERT INTO snapshots (run_id, seq, t_seconds, statuses) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rs.rows {
		if _, err := stmt.Exec(res.RunID, row.seq, row.tSeconds, row.statuses); err != nil {
			return fmt.Errorf("insert snapshot %d of run %s: %w", row.seq, res.RunID, err)
		}
	}

	return tx.Commit()
}

// RunCount returns how many runs a batch has recorded.
func (s *Store) RunCount(batchID string) (int, error) {
	var n int
	err := s.conn.Get(&n, "SELECT COUNT(*) FROM runs WHERE batch_id = ?", batchID)
	return n, err
}

func joinStatuses(statuses []sim.Status) string {
	parts := make([]string, len(statuses))
	for i, st := range statuses {
		parts[i] = strconv.Itoa(int(st))
	}
	return strings.Join(parts, ",")
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}
