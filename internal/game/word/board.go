package word

import (
	"strings"

	"github.com/MuizKmz/discord-bot-app/internal/model"
)

// Outcome classifies what a guess did.
type Outcome int

const (
	// OutcomeIgnored means the token was not a usable guess, or was a
	// wrong whole-word guess.
	OutcomeIgnored Outcome = iota
	// OutcomeSlowDown means the user is still inside their cooldown.
	OutcomeSlowDown
	// OutcomeAlreadyGuessed means the letter was revealed earlier.
	OutcomeAlreadyGuessed
	// OutcomePresent means a new letter that occurs in the word.
	OutcomePresent
	// OutcomeAbsent means a new letter that does not occur in the word.
	OutcomeAbsent
	// OutcomeSolved means the guess completed the word.
	OutcomeSolved
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSlowDown:
		return "slow_down"
	case OutcomeAlreadyGuessed:
		return "already_guessed"
	case OutcomePresent:
		return "present"
	case OutcomeAbsent:
		return "absent"
	case OutcomeSolved:
		return "solved"
	default:
		return "ignored"
	}
}

// Cell is one letter position on the board.
type Cell struct {
	Letter   rune
	Revealed bool
}

// Board is a render request for the presentation layer.
type Board struct {
	Cells     []Cell
	Completed []string
	// Index is the position of the current word in the pool.
	Index      int
	PoolSize   int
	Exclusive  bool
	Generation uint64
}

// Masked returns the word with hidden letters as underscores, e.g. "s _ r _".
func (b Board) Masked() string {
	parts := make([]string, len(b.Cells))
	for i, c := range b.Cells {
		if c.Revealed {
			parts[i] = string(c.Letter)
		} else {
			parts[i] = "_"
		}
	}
	return strings.Join(parts, " ")
}

// Solved reports whether every letter is revealed.
func (b Board) Solved() bool {
	for _, c := range b.Cells {
		if !c.Revealed {
			return false
		}
	}
	return len(b.Cells) > 0
}

// Result is returned for every resolved guess.
type Result struct {
	Outcome Outcome
	Letter  rune
	// Word is the solved word when Outcome is OutcomeSolved.
	Word      string
	Exclusive bool
	// Board is the board after the guess; for a solve it shows the solved word.
	Board Board
	// Next is the board of the following word after a solve.
	Next *Board
	// PoolCompleted is set when the solve exhausted the pool and it was
	// reshuffled.
	PoolCompleted bool
	PoolSize      int
	Generation    uint64
	// Entry is the guesser's leaderboard entry after the award, if known.
	Entry *model.Entry
}

// Summary is returned when a round stops.
type Summary struct {
	Word      string
	Completed int
	PoolSize  int
}

// Status is a snapshot of round progress.
type Status struct {
	Active    bool
	Completed int
	PoolSize  int
}
