// Package word implements the letter-reveal word game.
//
// One round is live at a time. Players reveal letters of the current word
// or guess it whole; solving a word awards a point and moves on to the
// next word in the shuffled pool. When the pool runs out it is reshuffled
// and play continues.
package word

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MuizKmz/discord-bot-app/internal/game"
	"github.com/MuizKmz/discord-bot-app/internal/model"
)

const (
	// DefaultCooldown is the per-user window between accepted guesses.
	DefaultCooldown = 3 * time.Second
	// PointsPerWord is awarded for every solved word.
	PointsPerWord = 1
)

// Source supplies the vocabulary at the moment the pool is shuffled.
type Source interface {
	All() []string
	IsExclusive(w string) bool
}

// Config holds word game configuration.
type Config struct {
	Cooldown time.Duration
	// Seed fixes the shuffle order; zero seeds from the clock.
	Seed int64
}

// Round is the word game state machine.
type Round struct {
	mu        sync.Mutex
	source    Source
	scorer    game.Scorer
	scheduler *game.Scheduler
	cooldown  *game.Cooldown
	rng       *rand.Rand

	active    bool
	pool      []string
	index     int
	current   string
	revealed  map[rune]bool
	completed []string
}

// New creates a word round. The scheduler's generation is bumped on every
// start, stop and reshuffle so delayed announcements from an earlier
// state are dropped.
func New(cfg *Config, source Source, scorer game.Scorer, scheduler *game.Scheduler) *Round {
	if cfg == nil {
		cfg = &Config{Cooldown: DefaultCooldown}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if scheduler == nil {
		scheduler = game.NewScheduler()
	}
	return &Round{
		source:    source,
		scorer:    scorer,
		scheduler: scheduler,
		cooldown:  game.NewCooldown(cfg.Cooldown),
		rng:       rand.New(rand.NewSource(seed)),
		revealed:  make(map[rune]bool),
	}
}

// Name returns the game's display name.
func (r *Round) Name() string { return "Teka Huruf" }

// Command returns the command that starts this game.
func (r *Round) Command() string { return "teka" }

// Description returns a brief description of the game.
func (r *Round) Description() string {
	return "Teka huruf atau perkataan penuh untuk mendapat mata."
}

// Active reports whether a round is live.
func (r *Round) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Accepts claims single letters and alphabetic tokens as long as the
// current word. Digits are left for the number game.
func (r *Round) Accepts(g game.Guess) bool {
	token := normalize(g.Text)

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active || !isAlpha(token) {
		return false
	}
	return len(token) == 1 || len(token) == len(r.current)
}

// Scheduler returns the scheduler tied to this round's generations.
func (r *Round) Scheduler() *game.Scheduler { return r.scheduler }

// Start shuffles the full vocabulary and shows the first word.
func (r *Round) Start(_ context.Context) (*Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active {
		return nil, game.ErrAlreadyActive
	}
	if err := r.reshuffleLocked(); err != nil {
		return nil, err
	}
	r.active = true
	r.cooldown.Reset()

	board := r.boardLocked()
	board.Generation = r.scheduler.Bump()

	log.Info().Int("pool_size", len(r.pool)).Msg("Word round started")
	return &board, nil
}

// Stop ends the round. Pending announcements are cancelled.
func (r *Round) Stop(_ context.Context) (*Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active {
		return nil, game.ErrNotActive
	}
	summary := &Summary{
		Word:      r.current,
		Completed: len(r.completed),
		PoolSize:  len(r.pool),
	}
	r.active = false
	r.scheduler.Bump()

	log.Info().Str("word", r.current).Int("completed", summary.Completed).Msg("Word round stopped")
	return summary, nil
}

// Board returns the current board.
func (r *Round) Board() (*Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active {
		return nil, game.ErrNotActive
	}
	board := r.boardLocked()
	board.Generation = r.scheduler.Generation()
	return &board, nil
}

// Status reports round progress without requiring an active round.
func (r *Round) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Status{Active: r.active, Completed: len(r.completed), PoolSize: len(r.pool)}
}

// Guess routes a raw token: a token as long as the current word is a whole
// word guess, a single letter is a letter guess, anything else is ignored.
func (r *Round) Guess(ctx context.Context, userID, displayName, token string) (*Result, error) {
	token = normalize(token)

	r.mu.Lock()
	active, length := r.active, len(r.current)
	r.mu.Unlock()

	if !active {
		return nil, game.ErrNotActive
	}
	switch {
	case len(token) == length:
		return r.GuessWord(ctx, userID, displayName, token)
	case isLetter(token):
		return r.GuessLetter(ctx, userID, displayName, []rune(token)[0])
	default:
		return &Result{Outcome: OutcomeIgnored}, nil
	}
}

// GuessLetter reveals a letter. Revealing the last hidden letter solves the
// word.
func (r *Round) GuessLetter(ctx context.Context, userID, displayName string, ch rune) (*Result, error) {
	ch = []rune(strings.ToLower(string(ch)))[0]
	if ch < 'a' || ch > 'z' {
		return nil, fmt.Errorf("%w: %q is not a letter", game.ErrInvalidInput, ch)
	}

	r.mu.Lock()
	if !r.active {
		r.mu.Unlock()
		return nil, game.ErrNotActive
	}
	if r.revealed[ch] {
		board := r.boardLocked()
		r.mu.Unlock()
		return &Result{Outcome: OutcomeAlreadyGuessed, Letter: ch, Board: board}, nil
	}
	if !r.cooldown.Ready(userID) {
		r.mu.Unlock()
		return &Result{Outcome: OutcomeSlowDown, Letter: ch}, nil
	}

	r.cooldown.Mark(userID)
	r.revealed[ch] = true
	present := strings.ContainsRune(r.current, ch)

	if !r.solvedLocked() {
		res := &Result{Outcome: OutcomeAbsent, Letter: ch, Board: r.boardLocked()}
		if present {
			res.Outcome = OutcomePresent
		}
		res.Generation = r.scheduler.Generation()
		r.mu.Unlock()
		return res, nil
	}

	res := r.solveLocked()
	res.Letter = ch
	r.mu.Unlock()

	r.award(ctx, res, userID, displayName)
	return res, nil
}

// GuessWord solves the word when token matches it. Wrong guesses of the
// right length are ignored without feedback.
func (r *Round) GuessWord(ctx context.Context, userID, displayName, token string) (*Result, error) {
	token = normalize(token)

	r.mu.Lock()
	if !r.active {
		r.mu.Unlock()
		return nil, game.ErrNotActive
	}
	if len(token) != len(r.current) {
		r.mu.Unlock()
		return &Result{Outcome: OutcomeIgnored}, nil
	}
	if !r.cooldown.Ready(userID) {
		r.mu.Unlock()
		return &Result{Outcome: OutcomeSlowDown}, nil
	}
	if token != r.current {
		r.mu.Unlock()
		return &Result{Outcome: OutcomeIgnored}, nil
	}

	r.cooldown.Mark(userID)
	for _, c := range r.current {
		r.revealed[c] = true
	}
	res := r.solveLocked()
	r.mu.Unlock()

	r.award(ctx, res, userID, displayName)
	return res, nil
}

// solveLocked records the solved word and moves to the next one,
// reshuffling when the pool is exhausted.
func (r *Round) solveLocked() *Result {
	res := &Result{
		Outcome:   OutcomeSolved,
		Word:      r.current,
		Exclusive: r.source.IsExclusive(r.current),
		Board:     r.boardLocked(),
	}

	r.completed = append(r.completed, r.current)
	r.index++

	if r.index >= len(r.pool) {
		res.PoolCompleted = true
		res.PoolSize = len(r.pool)
		if err := r.reshuffleLocked(); err != nil {
			// Vocabulary emptied by an admin mid-round.
			log.Error().Err(err).Msg("Failed to reshuffle word pool, stopping round")
			r.active = false
			res.Generation = r.scheduler.Bump()
			return res
		}
		res.Generation = r.scheduler.Bump()
	} else {
		r.current = r.pool[r.index]
		r.revealed = make(map[rune]bool)
		res.Generation = r.scheduler.Generation()
	}

	next := r.boardLocked()
	next.Generation = res.Generation
	res.Next = &next
	return res
}

func (r *Round) reshuffleLocked() error {
	pool := r.source.All()
	if len(pool) == 0 {
		return fmt.Errorf("%w: vocabulary is empty", game.ErrInvalidInput)
	}
	r.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	r.pool = pool
	r.index = 0
	r.current = pool[0]
	r.revealed = make(map[rune]bool)
	r.completed = nil
	return nil
}

func (r *Round) solvedLocked() bool {
	for _, c := range r.current {
		if !r.revealed[c] {
			return false
		}
	}
	return true
}

func (r *Round) boardLocked() Board {
	cells := make([]Cell, 0, len(r.current))
	for _, c := range r.current {
		cells = append(cells, Cell{Letter: c, Revealed: r.revealed[c]})
	}
	return Board{
		Cells:     cells,
		Completed: append([]string(nil), r.completed...),
		Index:     r.index,
		PoolSize:  len(r.pool),
		Exclusive: r.source.IsExclusive(r.current),
	}
}

func (r *Round) award(ctx context.Context, res *Result, userID, displayName string) {
	log.Info().
		Str("user_id", userID).
		Str("word", res.Word).
		Bool("pool_completed", res.PoolCompleted).
		Msg("Word solved")

	if r.scorer == nil {
		return
	}
	res.Entry = r.scorer.Award(ctx, model.Award{
		UserID:      userID,
		DisplayName: displayName,
		Points:      PointsPerWord,
		Item:        res.Word,
		Category:    model.CategoryWord,
	})
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

func isLetter(s string) bool {
	return len(s) == 1 && s[0] >= 'a' && s[0] <= 'z'
}
