package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jebstuart/TimeoutOverride/internal/logging"
)

// migrations are applied in order; user_version tracks the last applied one.
var migrations = []string{
	`CREATE TABLE wake_sessions (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at  INTEGER NOT NULL,
		ended_at    INTEGER,
		reason      TEXT,
		reset_count INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX idx_wake_sessions_started_at ON wake_sessions(started_at DESC)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	log := logging.FromContext(ctx)

	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		// PRAGMA does not accept bind parameters.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: bump version: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		log.Debug().Int("version", i+1).Msg("applied schema migration")
	}
	return nil
}
