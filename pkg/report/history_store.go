package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"digital.vasic.conformance/pkg/runner"
)

// HistoryStore keeps fixture run history in a SQLite database,
// so pass rates can be tracked across runs without parsing log
// files.
type HistoryStore struct {
	db *sql.DB
}

const historySchema = `
CREATE TABLE IF NOT EXISTS fixture_runs (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp    TEXT NOT NULL,
	fixture      TEXT NOT NULL,
	engine       TEXT NOT NULL,
	status       TEXT NOT NULL,
	duration_ms  INTEGER NOT NULL,
	tests_passed INTEGER NOT NULL,
	tests_total  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_fixture_runs_fixture
	ON fixture_runs(fixture);
`

// OpenHistoryStore opens (and if needed creates) a history
// database at path. Use ":memory:" for an ephemeral store.
func OpenHistoryStore(path string) (*HistoryStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to open history database: %w", err,
		)
	}

	if _, err := db.Exec(historySchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf(
			"failed to initialize history schema: %w", err,
		)
	}

	return &HistoryStore{db: db}, nil
}

// Record inserts a fixture result into the history.
func (s *HistoryStore) Record(
	ctx context.Context,
	result *runner.Result,
) error {
	entry := historicalEntry(result)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO fixture_runs
			(timestamp, fixture, engine, status,
			 duration_ms, tests_passed, tests_total)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.Timestamp.UTC().Format(time.RFC3339Nano),
		entry.Fixture,
		entry.Engine,
		entry.Status,
		result.Duration.Milliseconds(),
		entry.TestsPassed,
		entry.TestsTotal,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to record fixture run: %w", err,
		)
	}
	return nil
}

// Recent returns the most recent entries for a fixture, newest
// first.
func (s *HistoryStore) Recent(
	ctx context.Context,
	fixtureName string,
	limit int,
) ([]HistoricalEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT timestamp, fixture, engine, status,
			duration_ms, tests_passed, tests_total
		 FROM fixture_runs
		 WHERE fixture = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		fixtureName, limit,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to query fixture history: %w", err,
		)
	}
	defer func() { _ = rows.Close() }()

	var entries []HistoricalEntry
	for rows.Next() {
		var (
			entry      HistoricalEntry
			ts         string
			durationMS int64
		)
		if err := rows.Scan(
			&ts, &entry.Fixture, &entry.Engine, &entry.Status,
			&durationMS, &entry.TestsPassed, &entry.TestsTotal,
		); err != nil {
			return nil, fmt.Errorf(
				"failed to scan history row: %w", err,
			)
		}
		entry.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		entry.Duration = (time.Duration(durationMS) *
			time.Millisecond).String()
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// PassRate returns the fraction of recorded runs of a fixture
// with the given status "passed", over all its recorded runs.
func (s *HistoryStore) PassRate(
	ctx context.Context,
	fixtureName string,
) (float64, error) {
	var total, passed int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'passed'
				THEN 1 ELSE 0 END), 0)
		 FROM fixture_runs
		 WHERE fixture = ?`,
		fixtureName,
	).Scan(&total, &passed)
	if err != nil {
		return 0, fmt.Errorf(
			"failed to compute pass rate: %w", err,
		)
	}
	if total == 0 {
		return 0, nil
	}
	return float64(passed) / float64(total), nil
}

// Close closes the underlying database.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}
