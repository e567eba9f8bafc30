// Package model defines the data models for the guessing-game bot.
package model

import "time"

// Scoring categories. The word game and the number game share one leaderboard
// but keep separate subtotals.
const (
	CategoryWord   = "huruf"
	CategoryNumber = "no"
)

// Entry is one user's leaderboard record.
// TotalPoints always equals the sum of PointsPerCategory.
type Entry struct {
	UserID            string           `json:"-"`
	DisplayName       string           `json:"display_name"`
	TotalPoints       int64            `json:"total_points"`
	PointsPerCategory map[string]int64 `json:"points_per_category"`
	GuessedWords      []string         `json:"guessed_words"`
}

// NewEntry returns a zero-initialised entry for a user.
func NewEntry(userID, displayName string) *Entry {
	return &Entry{
		UserID:      userID,
		DisplayName: displayName,
		PointsPerCategory: map[string]int64{
			CategoryWord:   0,
			CategoryNumber: 0,
		},
		GuessedWords: []string{},
	}
}

// Apply adds an award to the entry in place.
func (e *Entry) Apply(a Award) {
	if e.PointsPerCategory == nil {
		e.PointsPerCategory = make(map[string]int64)
	}
	if e.GuessedWords == nil {
		e.GuessedWords = []string{}
	}
	if a.DisplayName != "" {
		e.DisplayName = a.DisplayName
	}
	e.TotalPoints += a.Points
	e.PointsPerCategory[a.Category] += a.Points
	if a.Item != "" {
		e.GuessedWords = append(e.GuessedWords, a.Item)
	}
}

// CategorySum returns the sum of all category subtotals.
func (e *Entry) CategorySum() int64 {
	var sum int64
	for _, p := range e.PointsPerCategory {
		sum += p
	}
	return sum
}

// Clone returns a deep copy so callers can't mutate store-owned state.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	c := &Entry{
		UserID:            e.UserID,
		DisplayName:       e.DisplayName,
		TotalPoints:       e.TotalPoints,
		PointsPerCategory: make(map[string]int64, len(e.PointsPerCategory)),
		GuessedWords:      make([]string, len(e.GuessedWords)),
	}
	for k, v := range e.PointsPerCategory {
		c.PointsPerCategory[k] = v
	}
	copy(c.GuessedWords, e.GuessedWords)
	return c
}

// Award is a single scoring event.
type Award struct {
	UserID      string
	DisplayName string
	Points      int64
	// Item is appended to the user's guess log when non-empty
	// (the solved word, or "teka-no-<secret>" for a number win).
	Item     string
	Category string
}

// WordMeaning is an admin-supplied meaning for a vocabulary word.
type WordMeaning struct {
	Word      string    `db:"word"`
	Meaning   string    `db:"meaning"`
	AddedBy   string    `db:"added_by"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// LegacyEntry is the leaderboard.json layout written by the first version of
// the bot. It is only read by the import command.
type LegacyEntry struct {
	Username    string   `json:"username"`
	Points      int64    `json:"points"`
	PointsHuruf int64    `json:"points_huruf"`
	PointsNo    int64    `json:"points_no"`
	Words       []string `json:"words"`
}

// ToEntry converts a legacy record. Files that predate the per-category
// columns count every point as a word-game point.
func (l LegacyEntry) ToEntry(userID string) *Entry {
	e := NewEntry(userID, l.Username)
	huruf, no := l.PointsHuruf, l.PointsNo
	if huruf == 0 && no == 0 && l.Points > 0 {
		huruf = l.Points
	}
	e.PointsPerCategory[CategoryWord] = huruf
	e.PointsPerCategory[CategoryNumber] = no
	e.TotalPoints = huruf + no
	if l.Words != nil {
		e.GuessedWords = append(e.GuessedWords, l.Words...)
	}
	return e
}
