package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_classification_events",
		SQL: `CREATE TABLE IF NOT EXISTS classification_events (
  id           UUID        PRIMARY KEY,
  request_id   TEXT        NOT NULL DEFAULT '',
  category     TEXT        NOT NULL CHECK (category IN ('Productive', 'Unproductive')),
  source       TEXT        NOT NULL,
  matched_rule TEXT        NOT NULL DEFAULT '',
  matched_term TEXT        NOT NULL DEFAULT '',
  input_kind   TEXT        NOT NULL,
  encoding     TEXT        NOT NULL DEFAULT '',
  char_count   INTEGER     NOT NULL CHECK (char_count >= 0),
  reply_source TEXT        NOT NULL,
  duration_ms  BIGINT      NOT NULL CHECK (duration_ms >= 0),
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_classification_events_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_classification_events_created_at ON classification_events (created_at);`,
	},
	{
		Name: "create_index_classification_events_category_source",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_classification_events_category_source ON classification_events (category, source);`,
	},
}

// EnsureMigrated creates the audit schema unless the classification_events table already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, log zerolog.Logger, dbHost string) error {
	start := time.Now()
	log = log.With().Str("component", "database").Str("db_host", dbHost).Logger()

	log.Info().Str("event", "db_migration_check").Str("status", "starting").Send()

	var exists bool
	query := "SELECT to_regclass('public.classification_events') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error().
			Str("event", "db_migration_failed").
			Str("status", "error").
			Err(err).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info().
			Str("event", "db_migration_skip").
			Str("status", "success").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("schema already exists, skipping migration")
		return nil
	}

	log.Info().Str("event", "db_migration_start").Str("status", "in_progress").Send()

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error().
				Str("event", "db_migration_failed").
				Str("status", "error").
				Str("migration_step", step.Name).
				Err(err).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
				Send()
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info().
			Str("event", "db_migration_step").
			Str("status", "success").
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Send()
	}

	log.Info().
		Str("event", "db_migration_success").
		Str("status", "success").
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Send()

	return nil
}
