package postgres

import (
	"context"
	"fmt"
)

// schemaStatements are idempotent and run in order at startup
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS health_samples (
		id         UUID PRIMARY KEY,
		user_id    UUID NOT NULL,
		metric     TEXT NOT NULL,
		sampled_at TIMESTAMPTZ NOT NULL,
		value      NUMERIC NOT NULL,
		source     TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS health_samples_user_metric_date_idx
		ON health_samples (user_id, metric, sampled_at)`,
	`CREATE TABLE IF NOT EXISTS blood_readings (
		id          UUID PRIMARY KEY,
		user_id     UUID NOT NULL,
		marker      TEXT NOT NULL,
		marker_key  TEXT NOT NULL,
		measured_at TIMESTAMPTZ NOT NULL,
		value       NUMERIC NOT NULL,
		unit        TEXT NOT NULL DEFAULT '',
		ref_min     NUMERIC,
		ref_max     NUMERIC
	)`,
	`CREATE INDEX IF NOT EXISTS blood_readings_user_marker_date_idx
		ON blood_readings (user_id, marker_key, measured_at)`,
}

// EnsureSchema creates the tables and indexes the repositories rely on
func EnsureSchema(ctx context.Context, db *DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
