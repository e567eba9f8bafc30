package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/MuizKmz/discord-bot-app/internal/model"
)

// importRecord accepts both the current file layout and the legacy one
// with username/points/points_huruf/points_no/words.
type importRecord struct {
	DisplayName       string           `json:"display_name"`
	TotalPoints       int64            `json:"total_points"`
	PointsPerCategory map[string]int64 `json:"points_per_category"`
	GuessedWords      []string         `json:"guessed_words"`

	model.LegacyEntry
}

func (r importRecord) toEntry(userID string) *model.Entry {
	if r.PointsPerCategory == nil && r.DisplayName == "" {
		return r.LegacyEntry.ToEntry(userID)
	}
	e := model.NewEntry(userID, r.DisplayName)
	for cat, pts := range r.PointsPerCategory {
		e.PointsPerCategory[cat] = pts
	}
	e.TotalPoints = e.CategorySum()
	if r.GuessedWords != nil {
		e.GuessedWords = append(e.GuessedWords, r.GuessedWords...)
	}
	return e
}

// DecodeImport parses a leaderboard JSON object in either layout.
// Totals are recomputed from the category subtotals.
func DecodeImport(r io.Reader) (map[string]*model.Entry, error) {
	var raw map[string]importRecord
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard json: %w", err)
	}
	entries := make(map[string]*model.Entry, len(raw))
	for id, rec := range raw {
		entries[id] = rec.toEntry(id)
	}
	return entries, nil
}

// Import loads a leaderboard JSON document into store via Save.
// It returns the number of entries written.
func Import(ctx context.Context, r io.Reader, store LeaderboardStore) (int, error) {
	entries, err := DecodeImport(r)
	if err != nil {
		return 0, err
	}
	if err := store.Save(ctx, entries); err != nil {
		return 0, fmt.Errorf("failed to import leaderboard: %w", err)
	}
	log.Info().Str("backend", store.Name()).Int("entries", len(entries)).Msg("Leaderboard imported")
	return len(entries), nil
}
