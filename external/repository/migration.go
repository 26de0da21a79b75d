package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrationStatements = []string{
	`DO $$ BEGIN CREATE TYPE artifact_status AS ENUM ('written', 'cached', 'failed'); EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`CREATE TABLE IF NOT EXISTS summary_artifacts (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		video_id TEXT NOT NULL,
		suffix TEXT NOT NULL,
		service TEXT NOT NULL,
		model TEXT NOT NULL DEFAULT '',
		path TEXT NOT NULL DEFAULT '',
		status artifact_status NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_summary_artifacts_video ON summary_artifacts (video_id, suffix, created_at)`,
}

func RunMigration(ctx context.Context, pool *pgxpool.Pool) error {
	for _, s := range migrationStatements {
		stmt := strings.TrimSpace(s)
		if stmt == "" {
			continue
		}
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
