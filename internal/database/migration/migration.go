package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_donation_points",
		SQL: `CREATE TABLE IF NOT EXISTS donation_points (
  id                   UUID             PRIMARY KEY,
  name                 TEXT             NOT NULL,
  description          TEXT,
  address              TEXT             NOT NULL,
  postal_code          TEXT             NOT NULL,
  city                 TEXT             NOT NULL,
  province             TEXT             NOT NULL,
  autonomous_community TEXT             NOT NULL,
  latitude             DOUBLE PRECISION NOT NULL CHECK (latitude BETWEEN -90 AND 90),
  longitude            DOUBLE PRECISION NOT NULL CHECK (longitude BETWEEN -180 AND 180),
  google_maps_url      TEXT,
  phone                TEXT,
  email                TEXT,
  website              TEXT,
  schedule             TEXT,
  accepted_items       TEXT[]           NOT NULL DEFAULT '{}',
  is_active            BOOLEAN          NOT NULL DEFAULT TRUE,
  last_verification    TIMESTAMPTZ      NOT NULL DEFAULT now(),
  verified_at          TIMESTAMPTZ,
  created_at           TIMESTAMPTZ      NOT NULL DEFAULT now(),
  updated_at           TIMESTAMPTZ      NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_donation_points_coordinates",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_donation_points_coordinates ON donation_points (latitude, longitude);`,
	},
	{
		Name: "create_index_donation_points_region",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_donation_points_region ON donation_points (autonomous_community, province, city);`,
	},
	{
		Name: "create_index_donation_points_accepted_items",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_donation_points_accepted_items ON donation_points USING GIN (accepted_items);`,
	},
	{
		Name: "create_index_donation_points_active_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_donation_points_active_created_at ON donation_points (created_at DESC) WHERE is_active;`,
	},
}

// EnsureMigrated creates the donation_points schema unless the table already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *slog.Logger, dbHost string) error {
	start := time.Now()
	log = log.With("component", "database", "db_host", dbHost)

	log.Info("db_migration_check", "status", "starting")

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass('public.donation_points') IS NOT NULL").Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			"status", "error",
			"error_message", fmt.Sprintf("failed to check sentinel table: %v", err),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			"status", "success",
			"reason", "schema already exists",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	log.Info("db_migration_start", "status", "in_progress", "steps", len(steps))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				"status", "error",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			"status", "success",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.Info("db_migration_success",
		"status", "success",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
