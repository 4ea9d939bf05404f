package sqlstore

import (
	"context"
	"fmt"
)

// schemaStatements mirrors db/migrations for drivers that bootstrap in
// process (SQLite).
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS rosters (
    user_id TEXT NOT NULL,
    username TEXT NOT NULL DEFAULT '',
    phase_key TEXT NOT NULL,
    phase TEXT NOT NULL,
    lead TEXT NOT NULL DEFAULT '',
    side1 TEXT NOT NULL DEFAULT '',
    side2 TEXT NOT NULL DEFAULT '',
    updated_at TIMESTAMP NOT NULL,
    PRIMARY KEY (user_id, phase_key)
)`,
	`CREATE TABLE IF NOT EXISTS cooldowns (
    user_id TEXT NOT NULL,
    bucket TEXT NOT NULL,
    last_used_at TIMESTAMP NOT NULL,
    PRIMARY KEY (user_id, bucket)
)`,
	`CREATE TABLE IF NOT EXISTS phase_assignments (
    week_id TEXT PRIMARY KEY,
    phase1 TEXT NOT NULL,
    phase2 TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS scores (
    user_id TEXT NOT NULL,
    username TEXT NOT NULL DEFAULT '',
    week_id TEXT NOT NULL,
    phase1 BIGINT NOT NULL DEFAULT 0,
    phase2 BIGINT NOT NULL DEFAULT 0,
    total BIGINT NOT NULL DEFAULT 0,
    updated_at TIMESTAMP NOT NULL,
    PRIMARY KEY (user_id, week_id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_scores_week_total ON scores (week_id, total DESC)`,
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	for i, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
