package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

type migration struct {
	name string
	sql  string
}

var migrations = []migration{
	{
		name: "create leaderboard table",
		sql: `
			CREATE TABLE IF NOT EXISTS leaderboard (
				user_id VARCHAR(255) PRIMARY KEY,
				username VARCHAR(255) NOT NULL,
				points BIGINT NOT NULL DEFAULT 0,
				points_per_category JSONB NOT NULL DEFAULT '{}'::jsonb,
				words TEXT[] NOT NULL DEFAULT ARRAY[]::TEXT[],
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`,
	},
	{
		name: "create leaderboard points index",
		sql:  `CREATE INDEX IF NOT EXISTS idx_leaderboard_points ON leaderboard(points DESC)`,
	},
	{
		name: "create word_meanings table",
		sql: `
			CREATE TABLE IF NOT EXISTS word_meanings (
				word VARCHAR(255) PRIMARY KEY,
				meaning TEXT NOT NULL,
				added_by VARCHAR(255),
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`,
	},
}

// Migrate creates the leaderboard and word_meanings tables if needed.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, m := range migrations {
		if _, err := pool.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("failed to %s: %w", m.name, err)
		}
		log.Info().Str("migration", m.name).Msg("Migration applied")
	}
	return nil
}
