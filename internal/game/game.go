// Package game defines the shared contract for the guessing games, the
// router that hands free-text guesses to whichever game is live, and the
// timing helpers (cooldown and generation-keyed scheduler) the rounds use.
package game

import (
	"context"
	"errors"

	"github.com/MuizKmz/discord-bot-app/internal/model"
)

// Errors shared by every round.
var (
	ErrAlreadyActive = errors.New("round already active")
	ErrNotActive     = errors.New("no active round")
	ErrInvalidInput  = errors.New("invalid input")
	ErrOutOfScope    = errors.New("guess outside the round's channel")
	ErrNotAuthorized = errors.New("not authorized")
	ErrNoActiveGame  = errors.New("no game accepts this guess")
)

// Guess is one chat message offered to the games.
type Guess struct {
	UserID      string
	DisplayName string
	// Scope is the channel the message arrived in.
	Scope string
	Text  string
}

// Game is a round that can claim free-text guesses while it is live.
type Game interface {
	// Name returns the game's display name.
	Name() string

	// Command returns the command that starts this game (e.g. "teka").
	Command() string

	// Description returns a brief description of the game.
	Description() string

	// Active reports whether a round is live.
	Active() bool

	// Accepts reports whether the game wants to resolve this guess.
	// It must not mutate state.
	Accepts(g Guess) bool
}

// Scorer records a scoring event. Implementations never fail the caller;
// storage errors are logged and the updated entry is returned when known.
type Scorer interface {
	Award(ctx context.Context, award model.Award) *model.Entry
}

// ScorerFunc adapts a function to Scorer.
type ScorerFunc func(ctx context.Context, award model.Award) *model.Entry

// Award implements Scorer.
func (f ScorerFunc) Award(ctx context.Context, award model.Award) *model.Entry {
	return f(ctx, award)
}
