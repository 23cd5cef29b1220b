package source

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"veridian-hq/verdict/pkg/rules"
)

// SQLiteSource loads rule definitions from a SQLite rules_definition table,
// the embedded analog of a warehouse-hosted rule catalog.
type SQLiteSource struct {
	db     *sql.DB
	logger *slog.Logger
}

// SQLiteSourceConfig configures the SQLite rule source.
type SQLiteSourceConfig struct {
	// Path is the database file path.
	Path string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds.
	BusyTimeout time.Duration
}

const rulesSchema = `
CREATE TABLE IF NOT EXISTS rules_definition (
	rule_id          TEXT PRIMARY KEY,
	rule_description TEXT NOT NULL DEFAULT '',
	rule_condition   TEXT NOT NULL,
	created_at       INTEGER NOT NULL DEFAULT (unixepoch())
);
`

// NewSQLiteSource opens the database and ensures the schema exists.
func NewSQLiteSource(cfg SQLiteSourceConfig, logger *slog.Logger) (*SQLiteSource, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("rule database path cannot be empty")
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
		return nil, fmt.Errorf("failed to open rule database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(rulesSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize rule schema: %w", err)
	}

	return &SQLiteSource{db: db, logger: logger.With("component", "rules.source.sqlite")}, nil
}

// LoadRules fetches all definitions ordered by rule id.
func (s *SQLiteSource) LoadRules(ctx context.Context) ([]rules.Definition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT rule_id, rule_description, rule_condition
		FROM rules_definition
		ORDER BY rule_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer rows.Close()

	var defs []rules.Definition
	for rows.Next() {
		var def rules.Definition
		if err := rows.Scan(&def.ID, &def.Description, &def.Condition); err != nil {
			return nil, fmt.Errorf("failed to scan rule row: %w", err)
		}
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rule rows: %w", err)
	}

	s.logger.Debug("loaded rule definitions", "rule_count", len(defs))
	return defs, nil
}

// Put inserts or replaces a rule definition.
func (s *SQLiteSource) Put(ctx context.Context, def rules.Definition) error {
	if def.ID == "" {
		return fmt.Errorf("rule id cannot be empty")
	}
	if def.Condition == "" {
		return fmt.Errorf("rule %q: condition cannot be empty", def.ID)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rules_definition (rule_id, rule_description, rule_condition)
		VALUES (?, ?, ?)
		ON CONFLICT(rule_id) DO UPDATE SET
			rule_description = excluded.rule_description,
			rule_condition = excluded.rule_condition`,
		def.ID, def.Description, def.Condition)
	if err != nil {
		return fmt.Errorf("failed to store rule %q: %w", def.ID, err)
	}
	return nil
}

// Delete removes a rule definition.
func (s *SQLiteSource) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM rules_definition WHERE rule_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rule %q: %w", id, err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}
