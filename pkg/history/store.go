// Package history keeps finished runs and their results in SQLite so they
// can be listed and inspected after the process is gone.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/orgrun/pkg/errors"
	"github.com/arthur-debert/orgrun/pkg/logging"
	"github.com/arthur-debert/orgrun/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Store is a SQLite-backed run history.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// Open creates or opens the database at path, creating parent directories.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrHistoryStore, "failed to create history directory for %s", path)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrHistoryStore, "failed to open history database")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, errors.ErrHistoryStore, "failed to connect to history database")
	}

	// one writer avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, errors.Wrapf(err, errors.ErrHistoryStore, "failed to execute %q", pragma)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, errors.ErrHistoryStore, "failed to apply history schema")
	}

	logger := logging.GetLogger("history")
	logger.Debug().Str("path", path).Msg("History store opened")
	return &Store{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores a run and its results in one transaction.
func (s *Store) Record(ctx context.Context, rec types.RunRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrHistoryStore, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, simulate, command, success, exit_code, message, killed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.StartedAt.UnixMilli(), rec.FinishedAt.UnixMilli(), rec.Simulate,
		rec.Command, rec.Success, rec.ExitCode, rec.Message, rec.Killed)
	if err != nil {
		return errors.Wrapf(err, errors.ErrHistoryStore, "failed to insert run %s", rec.ID)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO results (run_id, seq, source, destination, status, rule)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, errors.ErrHistoryStore, "failed to prepare result insert")
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range rec.Results {
		if _, err := stmt.ExecContext(ctx, rec.ID, i, r.Source, r.Destination, string(r.Status), r.Rule); err != nil {
			return errors.Wrapf(err, errors.ErrHistoryStore, "failed to insert result %d of run %s", i, rec.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.ErrHistoryStore, "failed to commit run")
	}
	s.logger.Debug().Str("runID", rec.ID).Int("results", len(rec.Results)).Msg("Run recorded")
	return nil
}

const runColumns = `r.id, r.started_at, r.finished_at, r.simulate, r.command, r.success, r.exit_code, r.message, r.killed`

// List returns the most recent runs first, without their results.
// A limit of zero or less returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+`, (SELECT COUNT(*) FROM results WHERE run_id = r.id)
		FROM runs r
		ORDER BY r.started_at DESC, r.id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrHistoryStore, "failed to list runs")
	}
	defer func() { _ = rows.Close() }()

	var out []types.RunRecord
	for rows.Next() {
		var rec types.RunRecord
		if err := scanRun(rows, &rec, &rec.ResultCount); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrHistoryStore, "failed to read runs")
	}
	return out, nil
}

// Get returns one run with its results in stream order.
func (s *Store) Get(ctx context.Context, id string) (types.RunRecord, error) {
	var rec types.RunRecord
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs r WHERE r.id = ?`, id)
	if err := scanRun(row, &rec); err != nil {
		if errors.IsErrorCode(err, errors.ErrNotFound) {
			return rec, errors.Newf(errors.ErrNotFound, "run %s not found", id).WithDetail("id", id)
		}
		return rec, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT source, destination, status, rule FROM results
		WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return rec, errors.Wrapf(err, errors.ErrHistoryStore, "failed to load results of run %s", id)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var r types.Result
		var status string
		if err := rows.Scan(&r.Source, &r.Destination, &status, &r.Rule); err != nil {
			return rec, errors.Wrap(err, errors.ErrHistoryStore, "failed to scan result")
		}
		r.Status = types.Status(status)
		rec.Results = append(rec.Results, r)
	}
	if err := rows.Err(); err != nil {
		return rec, errors.Wrap(err, errors.ErrHistoryStore, "failed to read results")
	}
	rec.ResultCount = len(rec.Results)
	return rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner, rec *types.RunRecord, extra ...any) error {
	var started, finished int64
	dest := append([]any{
		&rec.ID, &started, &finished, &rec.Simulate, &rec.Command,
		&rec.Success, &rec.ExitCode, &rec.Message, &rec.Killed,
	}, extra...)
	if err := sc.Scan(dest...); err != nil {
		if err == sql.ErrNoRows {
			return errors.New(errors.ErrNotFound, "run not found")
		}
		return errors.Wrap(err, errors.ErrHistoryStore, "failed to scan run")
	}
	rec.StartedAt = time.UnixMilli(started)
	rec.FinishedAt = time.UnixMilli(finished)
	return nil
}
