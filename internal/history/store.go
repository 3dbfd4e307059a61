package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"ytharvest/internal/config"
)

// ErrNotFound is returned when a run id matches nothing.
var ErrNotFound = errors.New("run not found")

// ErrAmbiguous is returned when a run id prefix matches several runs.
var ErrAmbiguous = errors.New("run id prefix is ambiguous")

// Store manages run history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open initializes or connects to the history database for cfg.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.HistoryPath())
}

// OpenPath opens the database at dbPath, creating the schema when new.
func OpenPath(dbPath string) (*Store, error) {
	// Pragmas ride on the DSN so every pooled connection gets them.
	pragmas := []string{
		"journal_mode(WAL)",
		"foreign_keys(1)",
		"busy_timeout(5000)",
	}
	dsn := dbPath + "?_pragma=" + strings.Join(pragmas, "&_pragma=")
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect sqlite db: %w", err)
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Record stores run and its outcomes in one transaction.
func (s *Store) Record(ctx context.Context, run Run) error {
	if strings.TrimSpace(run.ID) == "" {
		return errors.New("run id required")
	}
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin record tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO runs (run_id, mode, format, output_dir, started_at, finished_at, total, succeeded, failed)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			string(run.Mode),
			run.Format,
			nullableString(run.OutputDir),
			formatTime(run.StartedAt),
			nullableTime(run.FinishedAt),
			run.Total,
			run.Succeeded,
			run.Failed,
		); err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		for _, o := range run.Outcomes {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO outcomes (run_id, position, input, video_id, status, output_path, reason, message, partial, roots, replies, elapsed_ms)
                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				run.ID,
				o.Position,
				o.Input,
				nullableString(o.VideoID),
				o.Status,
				nullableString(o.OutputPath),
				nullableString(o.Reason),
				nullableString(o.Message),
				boolToInt(o.Partial),
				o.Roots,
				o.Replies,
				o.Elapsed.Milliseconds(),
			); err != nil {
				return fmt.Errorf("insert outcome %d: %w", o.Position, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit run: %w", err)
		}
		return nil
	})
}

const runColumns = "run_id, mode, format, output_dir, started_at, finished_at, total, succeeded, failed"

// List returns the most recent runs, newest first, without outcomes. A
// limit <= 0 returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, run_id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Get returns the run whose id equals or starts with idOrPrefix, with its
// outcomes in input order.
func (s *Store) Get(ctx context.Context, idOrPrefix string) (*Run, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return nil, ErrNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE run_id = ? OR run_id LIKE ? ESCAPE '\' ORDER BY run_id LIMIT 2`,
		idOrPrefix, escapeLike(idOrPrefix)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan run: %w", err)
		}
		matches = append(matches, run)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch {
	case len(matches) == 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	case len(matches) > 1 && matches[0].ID != idOrPrefix:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguous, idOrPrefix)
	}
	run := matches[0]
	outcomes, err := s.outcomes(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	run.Outcomes = outcomes
	return &run, nil
}

func (s *Store) outcomes(ctx context.Context, runID string) ([]Outcome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT position, input, video_id, status, output_path, reason, message, partial, roots, replies, elapsed_ms
         FROM outcomes WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []Outcome
	for rows.Next() {
		var (
			o          Outcome
			videoID    sql.NullString
			outputPath sql.NullString
			reason     sql.NullString
			message    sql.NullString
			partial    int
			elapsedMS  int64
		)
		if err := rows.Scan(&o.Position, &o.Input, &videoID, &o.Status, &outputPath, &reason, &message, &partial, &o.Roots, &o.Replies, &elapsedMS); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		o.VideoID = videoID.String
		o.OutputPath = outputPath.String
		o.Reason = reason.String
		o.Message = message.String
		o.Partial = partial != 0
		o.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

// Prune deletes all but the newest keep runs and returns how many were
// removed. keep <= 0 removes everything.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.execWithRetry(ctx,
		`DELETE FROM runs WHERE run_id NOT IN (SELECT run_id FROM runs ORDER BY started_at DESC, run_id LIMIT ?)`,
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return res.RowsAffected()
}
