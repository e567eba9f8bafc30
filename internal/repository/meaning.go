package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MuizKmz/discord-bot-app/internal/model"
)

// MeaningRepository stores admin-set word meanings in PostgreSQL.
type MeaningRepository struct {
	pool *pgxpool.Pool
}

// NewMeaningRepository creates a new MeaningRepository instance.
func NewMeaningRepository(pool *pgxpool.Pool) *MeaningRepository {
	return &MeaningRepository{pool: pool}
}

// Get returns the meaning for a word.
// Returns ErrMeaningNotFound if no admin has set one.
func (r *MeaningRepository) Get(ctx context.Context, word string) (*model.WordMeaning, error) {
	const query = `
		SELECT word, meaning, COALESCE(added_by, ''), created_at, updated_at
		FROM word_meanings
		WHERE word = $1
	`

	var m model.WordMeaning
	err := r.pool.QueryRow(ctx, query, normalizeWord(word)).Scan(
		&m.Word,
		&m.Meaning,
		&m.AddedBy,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMeaningNotFound
		}
		return nil, fmt.Errorf("failed to get word meaning: %w", err)
	}
	return &m, nil
}

// Set inserts or replaces the meaning for a word.
func (r *MeaningRepository) Set(ctx context.Context, word, meaning, addedBy string) error {
	const query = `
		INSERT INTO word_meanings (word, meaning, added_by, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (word) DO UPDATE SET
			meaning = EXCLUDED.meaning,
			added_by = EXCLUDED.added_by,
			updated_at = NOW()
	`

	if _, err := r.pool.Exec(ctx, query, normalizeWord(word), meaning, addedBy); err != nil {
		return fmt.Errorf("failed to set word meaning: %w", err)
	}
	return nil
}

// Delete removes the meaning for a word.
// Returns ErrMeaningNotFound if there was nothing to delete.
func (r *MeaningRepository) Delete(ctx context.Context, word string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM word_meanings WHERE word = $1`, normalizeWord(word))
	if err != nil {
		return fmt.Errorf("failed to delete word meaning: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMeaningNotFound
	}
	return nil
}

// Count returns the number of stored meanings.
func (r *MeaningRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM word_meanings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count word meanings: %w", err)
	}
	return n, nil
}

// MemoryMeaningStore keeps meanings in process memory. It backs the meaning
// commands when the bot runs on the file leaderboard.
type MemoryMeaningStore struct {
	mu       sync.RWMutex
	meanings map[string]model.WordMeaning
}

// NewMemoryMeaningStore creates an empty in-memory meaning store.
func NewMemoryMeaningStore() *MemoryMeaningStore {
	return &MemoryMeaningStore{meanings: make(map[string]model.WordMeaning)}
}

// Get implements MeaningStore.
func (s *MemoryMeaningStore) Get(_ context.Context, word string) (*model.WordMeaning, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.meanings[normalizeWord(word)]
	if !ok {
		return nil, ErrMeaningNotFound
	}
	return &m, nil
}

// Set implements MeaningStore.
func (s *MemoryMeaningStore) Set(_ context.Context, word, meaning, addedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeWord(word)
	now := time.Now()
	m, ok := s.meanings[key]
	if !ok {
		m = model.WordMeaning{Word: key, CreatedAt: now}
	}
	m.Meaning = meaning
	m.AddedBy = addedBy
	m.UpdatedAt = now
	s.meanings[key] = m
	return nil
}

// Delete implements MeaningStore.
func (s *MemoryMeaningStore) Delete(_ context.Context, word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeWord(word)
	if _, ok := s.meanings[key]; !ok {
		return ErrMeaningNotFound
	}
	delete(s.meanings, key)
	return nil
}

// Count implements MeaningStore.
func (s *MemoryMeaningStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.meanings), nil
}

func normalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
