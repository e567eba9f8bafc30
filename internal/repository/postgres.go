package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MuizKmz/discord-bot-app/internal/model"
)

// PostgresStore keeps one leaderboard row per user. Every read goes to the
// database, so TopN always reflects the latest committed state.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore instance.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Name implements LeaderboardStore.
func (s *PostgresStore) Name() string { return "postgres" }

// Load implements LeaderboardStore.
func (s *PostgresStore) Load(ctx context.Context) (map[string]*model.Entry, error) {
	const query = `
		SELECT user_id, username, points, points_per_category, words
		FROM leaderboard
		ORDER BY created_at, user_id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]*model.Entry)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		entries[e.UserID] = e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard: %w", err)
	}
	return entries, nil
}

// Save upserts every entry in one transaction. Rows for users missing from
// the mapping are left alone.
func (s *PostgresStore) Save(ctx context.Context, entries map[string]*model.Entry) error {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		for id, e := range withoutNil(entries) {
			row := e.Clone()
			row.UserID = id
			if err := upsertEntry(ctx, tx, row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save leaderboard: %w", err)
	}
	return nil
}

// UpsertOne implements LeaderboardStore.
func (s *PostgresStore) UpsertOne(ctx context.Context, entry *model.Entry) error {
	if entry == nil {
		return ErrNilEntry
	}
	if err := upsertEntry(ctx, s.pool, entry); err != nil {
		return fmt.Errorf("failed to upsert entry: %w", err)
	}
	return nil
}

// Increment reads the user's row and writes it back in one transaction.
func (s *PostgresStore) Increment(ctx context.Context, award model.Award) (*model.Entry, error) {
	const query = `
		SELECT user_id, username, points, points_per_category, words
		FROM leaderboard
		WHERE user_id = $1
		FOR UPDATE
	`

	var updated *model.Entry
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		entry, err := scanEntry(tx.QueryRow(ctx, query, award.UserID))
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return err
			}
			entry = model.NewEntry(award.UserID, award.DisplayName)
		}
		entry.Apply(award)
		if err := upsertEntry(ctx, tx, entry); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to increment points: %w", err)
	}
	return updated, nil
}

// TopN implements LeaderboardStore. Ties are broken by first appearance.
func (s *PostgresStore) TopN(ctx context.Context, n int) ([]*model.Entry, error) {
	const query = `
		SELECT user_id, username, points, points_per_category, words
		FROM leaderboard
		ORDER BY points DESC, created_at ASC, user_id ASC
		LIMIT $1
	`

	if n < 0 {
		n = 0
	}
	rows, err := s.pool.Query(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query top players: %w", err)
	}
	defer rows.Close()

	var entries []*model.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard: %w", err)
	}
	return entries, nil
}

// GetByID implements LeaderboardStore.
// Returns ErrEntryNotFound if the user has never scored.
func (s *PostgresStore) GetByID(ctx context.Context, userID string) (*model.Entry, error) {
	const query = `
		SELECT user_id, username, points, points_per_category, words
		FROM leaderboard
		WHERE user_id = $1
	`

	e, err := scanEntry(s.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return e, nil
}

// ResetAll implements LeaderboardStore.
func (s *PostgresStore) ResetAll(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `TRUNCATE TABLE leaderboard`); err != nil {
		return fmt.Errorf("failed to reset leaderboard: %w", err)
	}
	return nil
}

// Flush is a no-op; every write is already committed.
func (s *PostgresStore) Flush(_ context.Context) error { return nil }

func upsertEntry(ctx context.Context, db execer, e *model.Entry) error {
	const query = `
		INSERT INTO leaderboard (user_id, username, points, points_per_category, words, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			username = EXCLUDED.username,
			points = EXCLUDED.points,
			points_per_category = EXCLUDED.points_per_category,
			words = EXCLUDED.words,
			updated_at = NOW()
	`

	perCategory := e.PointsPerCategory
	if perCategory == nil {
		perCategory = map[string]int64{}
	}
	words := e.GuessedWords
	if words == nil {
		words = []string{}
	}
	_, err := db.Exec(ctx, query, e.UserID, e.DisplayName, e.TotalPoints, perCategory, words)
	return err
}

func scanEntry(row pgx.Row) (*model.Entry, error) {
	var e model.Entry
	if err := row.Scan(
		&e.UserID,
		&e.DisplayName,
		&e.TotalPoints,
		&e.PointsPerCategory,
		&e.GuessedWords,
	); err != nil {
		return nil, err
	}
	if e.PointsPerCategory == nil {
		e.PointsPerCategory = map[string]int64{}
	}
	if e.GuessedWords == nil {
		e.GuessedWords = []string{}
	}
	return &e, nil
}
