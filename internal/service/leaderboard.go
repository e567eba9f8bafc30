// Package service provides business logic implementations.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/MuizKmz/discord-bot-app/internal/metrics"
	"github.com/MuizKmz/discord-bot-app/internal/model"
	"github.com/MuizKmz/discord-bot-app/internal/pkg/lock"
	"github.com/MuizKmz/discord-bot-app/internal/repository"
)

// DefaultTopLimit is the leaderboard size shown when none is configured.
const DefaultTopLimit = 10

// LeaderboardService scores both games against one LeaderboardStore. It
// does not know which backend is active. Awards for the same player are
// serialized so both games can score concurrently.
type LeaderboardService struct {
	store    repository.LeaderboardStore
	metrics  *metrics.Metrics
	locks    *lock.KeyLock
	topLimit int
}

// NewLeaderboardService creates a new LeaderboardService instance.
func NewLeaderboardService(store repository.LeaderboardStore, m *metrics.Metrics, topLimit int) *LeaderboardService {
	if topLimit <= 0 {
		topLimit = DefaultTopLimit
	}
	return &LeaderboardService{store: store, metrics: m, locks: lock.NewKeyLock(), topLimit: topLimit}
}

// Backend names the active store.
func (s *LeaderboardService) Backend() string {
	return s.store.Name()
}

// TopLimit returns the configured leaderboard size.
func (s *LeaderboardService) TopLimit() int {
	return s.topLimit
}

// Load reads the persisted board once at startup and returns the number of
// entries. A partial load still returns the entries that were recovered.
func (s *LeaderboardService) Load(ctx context.Context) (int, error) {
	entries, err := s.store.Load(ctx)
	if err != nil {
		s.storeError("load")
		return len(entries), fmt.Errorf("failed to load leaderboard: %w", err)
	}
	log.Info().Str("backend", s.store.Name()).Int("entries", len(entries)).Msg("Leaderboard loaded")
	return len(entries), nil
}

// Award credits points to a player. It never fails: storage errors are
// logged and the game carries on with the in-memory result.
func (s *LeaderboardService) Award(ctx context.Context, award model.Award) *model.Entry {
	if award.Category == "" {
		award.Category = model.CategoryWord
	}

	var entry *model.Entry
	err := s.locks.WithLock(award.UserID, func() error {
		var incErr error
		entry, incErr = s.store.Increment(ctx, award)
		return incErr
	})
	if err != nil {
		s.storeError("increment")
		log.Error().
			Err(err).
			Str("backend", s.store.Name()).
			Str("user_id", award.UserID).
			Str("category", award.Category).
			Msg("Failed to persist award")
	}
	if entry == nil {
		entry = model.NewEntry(award.UserID, award.DisplayName)
		entry.Apply(award)
	}

	if s.metrics != nil {
		s.metrics.Awards.WithLabelValues(award.Category).Add(float64(award.Points))
	}
	log.Debug().
		Str("user_id", award.UserID).
		Str("category", award.Category).
		Int64("total_points", entry.TotalPoints).
		Msg("Points awarded")
	return entry
}

// TopPlayers returns up to n entries, highest total first. A non-positive
// n uses the configured limit.
func (s *LeaderboardService) TopPlayers(ctx context.Context, n int) ([]*model.Entry, error) {
	if n <= 0 {
		n = s.topLimit
	}
	entries, err := s.store.TopN(ctx, n)
	if err != nil {
		s.storeError("top_n")
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}
	return entries, nil
}

// PlayerScore returns one player's entry. Players who have not scored
// yield repository.ErrEntryNotFound.
func (s *LeaderboardService) PlayerScore(ctx context.Context, userID string) (*model.Entry, error) {
	entry, err := s.store.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrEntryNotFound) {
		return nil, err
	}
	if err != nil {
		s.storeError("get")
		return nil, fmt.Errorf("failed to read player score: %w", err)
	}
	return entry, nil
}

// ResetAll clears the board. Only a new word round triggers this.
func (s *LeaderboardService) ResetAll(ctx context.Context) error {
	if err := s.store.ResetAll(ctx); err != nil {
		s.storeError("reset")
		return fmt.Errorf("failed to reset leaderboard: %w", err)
	}
	log.Info().Str("backend", s.store.Name()).Msg("Leaderboard reset")
	return nil
}

// Flush forces buffered state to storage. Called once on shutdown.
func (s *LeaderboardService) Flush(ctx context.Context) error {
	if err := s.store.Flush(ctx); err != nil {
		s.storeError("flush")
		return fmt.Errorf("failed to flush leaderboard: %w", err)
	}
	return nil
}

func (s *LeaderboardService) storeError(op string) {
	if s.metrics != nil {
		s.metrics.StoreErrors.WithLabelValues(s.store.Name(), op).Inc()
	}
}
