package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/MuizKmz/discord-bot-app/internal/config"
	"github.com/MuizKmz/discord-bot-app/internal/pkg/db"
	"github.com/MuizKmz/discord-bot-app/internal/repository"
)

// backend bundles the stores chosen at startup.
type backend struct {
	Leaderboard repository.LeaderboardStore
	Meanings    repository.MeaningStore
	pool        *db.Pool
}

// Health reports database reachability; the file backend is always healthy.
func (b *backend) Health(ctx context.Context) error {
	if b.pool == nil {
		return nil
	}
	return b.pool.HealthCheck(ctx)
}

// Close releases the database pool, if any.
func (b *backend) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
}

// openBackend selects the leaderboard backend once at startup. Postgres is
// used when configured and reachable; any failure falls back to the file
// backend so the games can still run.
func openBackend(ctx context.Context, cfg *config.Config) *backend {
	lb := cfg.Leaderboard
	wantPostgres := lb.Backend == config.BackendPostgres ||
		(lb.Backend == config.BackendAuto && cfg.Database.Configured())

	if wantPostgres {
		pool, err := connectAndMigrate(ctx, cfg)
		if err == nil {
			log.Info().Str("backend", config.BackendPostgres).Msg("Leaderboard backend selected")
			return &backend{
				Leaderboard: repository.NewPostgresStore(pool.Pool),
				Meanings:    repository.NewMeaningRepository(pool.Pool),
				pool:        pool,
			}
		}
		log.Error().Err(err).Msg("Postgres unavailable, falling back to file backend")
	}

	log.Info().Str("backend", config.BackendFile).Str("path", lb.Path).Msg("Leaderboard backend selected")
	return &backend{
		Leaderboard: repository.NewFileStore(repository.FileStoreConfig{
			Path:            lb.Path,
			BackupDir:       lb.BackupDir,
			BackupRetention: lb.BackupRetention,
		}),
		Meanings: repository.NewMemoryMeaningStore(),
	}
}

func connectAndMigrate(ctx context.Context, cfg *config.Config) (*db.Pool, error) {
	// Initialize database connection pool
	pool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}
	// Run database migrations
	if err := repository.Migrate(ctx, pool.Pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pool, err := connectAndMigrate(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	pool.Close()
	log.Info().Msg("All migrations completed successfully")
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Database.Configured() {
		return errors.New("import-json needs a database; set database.url or DATABASE_URL")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer f.Close()

	pool, err := connectAndMigrate(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	n, err := repository.Import(cmd.Context(), f, repository.NewPostgresStore(pool.Pool))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d leaderboard entries from %s\n", n, args[0])
	return nil
}
