// Package number implements the number-range guessing game.
//
// A round binds to the channel it was started in. Every in-scope guess
// counts as an attempt; an exact match awards a point and immediately
// draws a new secret, so the round keeps running until it is stopped.
package number

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MuizKmz/discord-bot-app/internal/game"
	"github.com/MuizKmz/discord-bot-app/internal/model"
)

const (
	// DefaultMin and DefaultMax bound the secret when none are configured.
	DefaultMin int64 = 1
	DefaultMax int64 = 100_000_000
	// PointsPerWin is awarded for every exact guess.
	PointsPerWin = 1
)

// ErrRangeTooWide marks a range whose size does not fit in an int64.
var ErrRangeTooWide = errors.New("range too wide")

// CheckRange validates [min, max]. Both failures wrap game.ErrInvalidInput.
func CheckRange(min, max int64) error {
	if min > max {
		return fmt.Errorf("%w: min %d exceeds max %d", game.ErrInvalidInput, min, max)
	}
	// max-min+1 must be a positive int64 for the draw.
	if uint64(max)-uint64(min) >= math.MaxInt64 {
		return fmt.Errorf("%w: %w: [%d, %d]", game.ErrInvalidInput, ErrRangeTooWide, min, max)
	}
	return nil
}

// Config holds number game configuration.
type Config struct {
	Min int64
	Max int64
	// Seed fixes the secret sequence; zero seeds from the clock.
	Seed int64
}

// Round is the number game state machine.
type Round struct {
	mu     sync.Mutex
	cfg    Config
	scorer game.Scorer
	rng    *rand.Rand

	active    bool
	min, max  int64
	secret    int64
	attempts  int
	startedBy string
	scope     string
}

// New creates a number round.
func New(cfg *Config, scorer game.Scorer) *Round {
	c := Config{Min: DefaultMin, Max: DefaultMax}
	if cfg != nil {
		c = *cfg
		if c.Min == 0 && c.Max == 0 {
			c.Min, c.Max = DefaultMin, DefaultMax
		}
	}
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Round{
		cfg:    c,
		scorer: scorer,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Name returns the game's display name.
func (r *Round) Name() string { return "Teka Nombor" }

// Command returns the command that starts this game.
func (r *Round) Command() string { return "teka-no" }

// Description returns a brief description of the game.
func (r *Round) Description() string {
	return fmt.Sprintf("Teka nombor rahsia antara %d dan %d.", r.cfg.Min, r.cfg.Max)
}

// Active reports whether a round is live.
func (r *Round) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Accepts claims every message in the round's channel.
func (r *Round) Accepts(g game.Guess) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active && g.Scope == r.scope && strings.TrimSpace(g.Text) != ""
}

// Bounds returns the configured range.
func (r *Round) Bounds() (int64, int64) {
	return r.cfg.Min, r.cfg.Max
}

// Start draws a secret in [min, max] and binds the round to scope.
func (r *Round) Start(min, max int64, starterID, scope string) error {
	if err := CheckRange(min, max); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active {
		return game.ErrAlreadyActive
	}
	r.min, r.max = min, max
	r.secret = r.drawLocked()
	r.attempts = 0
	r.startedBy = starterID
	r.scope = scope
	r.active = true

	log.Info().
		Str("user_id", starterID).
		Str("channel_id", scope).
		Int64("min", min).
		Int64("max", max).
		Msg("Number round started")
	return nil
}

// Guess resolves one guess. Guesses from another channel return
// ErrOutOfScope and change nothing; non-integers return ErrInvalidInput.
func (r *Round) Guess(ctx context.Context, userID, displayName, raw, scope string) (*Result, error) {
	r.mu.Lock()
	if !r.active {
		r.mu.Unlock()
		return nil, game.ErrNotActive
	}
	if scope != r.scope {
		r.mu.Unlock()
		return nil, game.ErrOutOfScope
	}
	guess, err := ParseGuess(raw)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}

	r.attempts++
	res := &Result{Guess: guess, Attempts: r.attempts}

	if guess != r.secret {
		res.Tier = Classify(guess, r.secret)
		res.Direction = DirectionOf(guess, r.secret)
		res.Message = pickMessage(r.rng, res.Tier, res.Direction)
		r.mu.Unlock()
		return res, nil
	}

	res.Won = true
	res.Secret = r.secret
	r.secret = r.drawLocked()
	r.attempts = 0
	r.mu.Unlock()

	log.Info().
		Str("user_id", userID).
		Int64("secret", res.Secret).
		Int("attempts", res.Attempts).
		Msg("Number guessed")

	if r.scorer != nil {
		res.Entry = r.scorer.Award(ctx, model.Award{
			UserID:      userID,
			DisplayName: displayName,
			Points:      PointsPerWin,
			Item:        fmt.Sprintf("teka-no-%d", res.Secret),
			Category:    model.CategoryNumber,
		})
	}
	return res, nil
}

// Stop ends the round and discloses the secret.
func (r *Round) Stop(userID string) (*Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active {
		return nil, game.ErrNotActive
	}
	r.active = false

	log.Info().Str("user_id", userID).Int64("secret", r.secret).Msg("Number round stopped")
	return &Summary{Secret: r.secret, Attempts: r.attempts, StartedBy: r.startedBy, Scope: r.scope}, nil
}

// Reveal lets an admin peek at the secret without changing the round.
func (r *Round) Reveal(userID string, admins []string) (*Summary, error) {
	if !slices.Contains(admins, userID) {
		return nil, game.ErrNotAuthorized
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active {
		return nil, game.ErrNotActive
	}
	return &Summary{Secret: r.secret, Attempts: r.attempts, StartedBy: r.startedBy, Scope: r.scope}, nil
}

// Snapshot returns the round state. Intended for tests and status views.
func (r *Round) Snapshot() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Summary{Secret: r.secret, Attempts: r.attempts, StartedBy: r.startedBy, Scope: r.scope, Active: r.active}
}

func (r *Round) drawLocked() int64 {
	return r.min + r.rng.Int63n(r.max-r.min+1)
}

// ParseGuess reads an integer, allowing thousands separators.
func ParseGuess(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	s = strings.NewReplacer(",", "", "_", "").Replace(s)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", game.ErrInvalidInput, raw)
	}
	return n, nil
}

// Result is returned for every in-scope guess.
type Result struct {
	Guess    int64
	Attempts int
	Won      bool
	// Secret is the number that was guessed, set only on a win.
	Secret    int64
	Tier      Tier
	Direction Direction
	Message   string
	Entry     *model.Entry
}

// Summary describes a round for stop and reveal.
type Summary struct {
	Secret    int64
	Attempts  int
	StartedBy string
	Scope     string
	Active    bool
}
