// Package repository provides data access layer implementations.
//
// Two leaderboard backends share the LeaderboardStore contract: FileStore
// keeps the whole board in one JSON file with rolling backups, PostgresStore
// keeps one row per user.
package repository

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks github.com/MuizKmz/discord-bot-app/internal/repository LeaderboardStore,MeaningStore

import (
	"context"
	"errors"
	"sort"

	"github.com/MuizKmz/discord-bot-app/internal/model"
)

// Common errors for repository operations.
var (
	ErrEntryNotFound   = errors.New("leaderboard entry not found")
	ErrMeaningNotFound = errors.New("word meaning not found")
	ErrNoBackup        = errors.New("no leaderboard backup available")
	ErrNilEntry        = errors.New("nil leaderboard entry")
)

// LeaderboardStore is the persistence contract behind the scoring service.
type LeaderboardStore interface {
	// Name identifies the backend in logs.
	Name() string
	// Load returns every entry keyed by user id.
	Load(ctx context.Context) (map[string]*model.Entry, error)
	// Save writes the whole mapping. Nil entries are skipped.
	Save(ctx context.Context, entries map[string]*model.Entry) error
	// UpsertOne inserts or replaces a single user's entry.
	UpsertOne(ctx context.Context, entry *model.Entry) error
	// Increment applies an award to the user's entry, creating it when
	// absent, and returns the updated entry.
	Increment(ctx context.Context, award model.Award) (*model.Entry, error)
	// GetByID returns one user's entry, or ErrEntryNotFound.
	GetByID(ctx context.Context, userID string) (*model.Entry, error)
	// TopN returns up to n entries by total points, descending.
	TopN(ctx context.Context, n int) ([]*model.Entry, error)
	// ResetAll clears every entry.
	ResetAll(ctx context.Context) error
	// Flush forces any buffered state to durable storage.
	Flush(ctx context.Context) error
}

// MeaningStore persists admin-supplied word meanings.
type MeaningStore interface {
	Get(ctx context.Context, word string) (*model.WordMeaning, error)
	Set(ctx context.Context, word, meaning, addedBy string) error
	Delete(ctx context.Context, word string) error
	Count(ctx context.Context) (int, error)
}

// withoutNil drops nil values so a partially built mapping never reaches
// the encoder.
func withoutNil(entries map[string]*model.Entry) map[string]*model.Entry {
	out := make(map[string]*model.Entry, len(entries))
	for id, e := range entries {
		if e != nil {
			out[id] = e
		}
	}
	return out
}

// rankEntries sorts entries by total points descending. The sort is stable,
// so callers control tie order through the input order.
func rankEntries(entries []*model.Entry, n int) []*model.Entry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
