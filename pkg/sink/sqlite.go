package sink

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"veridian-hq/verdict/pkg/rules"
)

// SQLiteSink persists violations to a rule_violations table, the embedded
// analog of a warehouse violation log. Each row gets a generated
// violation_id; the evaluation core never assigns persistence identifiers.
type SQLiteSink struct {
	db     *sql.DB
	logger *slog.Logger
}

// SQLiteSinkConfig configures the SQLite violation sink.
type SQLiteSinkConfig struct {
	// Path is the database file path.
	Path string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds.
	BusyTimeout time.Duration
}

const violationsSchema = `
CREATE TABLE IF NOT EXISTS rule_violations (
	violation_id      TEXT PRIMARY KEY,
	rule_id           TEXT NOT NULL,
	rule_description  TEXT NOT NULL DEFAULT '',
	record_snapshot   TEXT NOT NULL,
	detected_at       TEXT NOT NULL,
	inserted_at       INTEGER NOT NULL DEFAULT (unixepoch()),
	seq               INTEGER
);
CREATE INDEX IF NOT EXISTS idx_rule_violations_rule_id ON rule_violations(rule_id);
`

// NewSQLiteSink opens the database and ensures the schema exists.
func NewSQLiteSink(cfg SQLiteSinkConfig, logger *slog.Logger) (*SQLiteSink, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("violation database path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	// modernc.org/sqlite applies pragmas via _pragma=name(value) query
	// parameters, one per pragma.
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)",
		cfg.Path, cfg.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open violation database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(violationsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize violation schema: %w", err)
	}

	return &SQLiteSink{db: db, logger: logger.With("component", "sink.sqlite")}, nil
}

// Write inserts all violations in one transaction, preserving order through
// a per-batch sequence column.
func (s *SQLiteSink) Write(ctx context.Context, violations []rules.Violation) error {
	if len(violations) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO rule_violations
			(violation_id, rule_id, rule_description, record_snapshot, detected_at, seq)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, v := range violations {
		_, err := stmt.ExecContext(ctx,
			uuid.NewString(),
			v.RuleID,
			v.RuleDescription,
			string(v.RecordSnapshot),
			v.DetectedAt.UTC().Format(time.RFC3339Nano),
			i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert violation for rule %q: %w", v.RuleID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit violations: %w", err)
	}

	s.logger.Info("persisted violations", "count", len(violations))
	return nil
}

// Count returns the number of stored violations, optionally filtered by rule.
func (s *SQLiteSink) Count(ctx context.Context, ruleID string) (int64, error) {
	var n int64
	var err error
	if ruleID == "" {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rule_violations`).Scan(&n)
	} else {
		err = s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM rule_violations WHERE rule_id = ?`, ruleID).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count violations: %w", err)
	}
	return n, nil
}

// Close releases the database handle.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
