package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MuizKmz/discord-bot-app/internal/game"
	"github.com/MuizKmz/discord-bot-app/internal/game/word"
	"github.com/MuizKmz/discord-bot-app/internal/metrics"
	"github.com/MuizKmz/discord-bot-app/internal/service"
)

// Pacing spaces out the announcements that follow a solved word. The round
// itself has already moved on; only the messages wait.
type Pacing struct {
	// Announce is the wait after the solve message.
	Announce time.Duration
	// Next is the extra wait before the next board.
	Next time.Duration
	// Restart is the extra wait before a reshuffled pool's first board.
	Restart time.Duration
}

// DefaultPacing matches the chat rhythm players are used to.
var DefaultPacing = Pacing{Announce: time.Second, Next: time.Second, Restart: 3 * time.Second}

// WordHandler handles the letter-reveal game.
type WordHandler struct {
	round       *word.Round
	leaderboard *service.LeaderboardService
	meanings    *service.MeaningService
	metrics     *metrics.Metrics
	pacing      Pacing
}

// NewWordHandler creates a new WordHandler. meanings and m may be nil.
func NewWordHandler(
	round *word.Round,
	leaderboard *service.LeaderboardService,
	meanings *service.MeaningService,
	m *metrics.Metrics,
	pacing Pacing,
) *WordHandler {
	return &WordHandler{
		round:       round,
		leaderboard: leaderboard,
		meanings:    meanings,
		metrics:     m,
		pacing:      pacing,
	}
}

// HandleStart handles !teka. A session that actually starts clears the
// leaderboard; a running round ignores the command.
func (h *WordHandler) HandleStart(c Context) error {
	if h.round.Active() {
		return nil
	}

	board, err := h.round.Start(c.Ctx())
	if errors.Is(err, game.ErrAlreadyActive) {
		return nil
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to start word round")
		return c.Reply("❌ Tiada perkataan dalam senarai. Tambah perkataan dengan `!addword`.")
	}

	if err := h.leaderboard.ResetAll(c.Ctx()); err != nil {
		log.Error().Err(err).Msg("Failed to reset leaderboard for new word round")
	}

	if h.metrics != nil {
		h.metrics.RoundsStarted.WithLabelValues("word").Inc()
	}
	return sendLong(c, RenderBoard(*board, true, false))
}

// HandleStop handles !henti and !resetteka. Stopping does not touch the
// leaderboard.
func (h *WordHandler) HandleStop(c Context) error {
	summary, err := h.round.Stop(c.Ctx())
	if errors.Is(err, game.ErrNotActive) {
		return nil
	}
	if err != nil {
		return err
	}
	return c.Send(fmt.Sprintf("%s\n\n⛔ **Permainan teka huruf dihentikan!**\n\nPerkataan terakhir: **%s**\n-# Perkataan selesai: %d/%d\n\n%s",
		divider, summary.Word, summary.Completed, summary.PoolSize, divider))
}

// HandleGuess resolves free text claimed by the word round.
func (h *WordHandler) HandleGuess(c Context) error {
	user := c.Sender()
	res, err := h.round.Guess(c.Ctx(), user.ID, user.Name, c.Text())
	if errors.Is(err, game.ErrNotActive) || errors.Is(err, game.ErrInvalidInput) {
		return nil
	}
	if err != nil {
		return err
	}

	if h.metrics != nil && res.Outcome != word.OutcomeIgnored {
		h.metrics.Guesses.WithLabelValues("word", res.Outcome.String()).Inc()
	}

	switch res.Outcome {
	case word.OutcomeSlowDown:
		return c.Reply("**SABAR JANGAN SPAM** ✋")
	case word.OutcomeAlreadyGuessed:
		return c.Reply(RenderAlreadyGuessed(res.Letter))
	case word.OutcomePresent, word.OutcomeAbsent:
		return c.Reply(RenderLetterFeedback(res))
	case word.OutcomeSolved:
		return h.announceSolve(c, res)
	default:
		return nil
	}
}

// announceSolve posts the solve message now and the follow-up boards
// later. Follow-ups are keyed to the generation in the result, so a stop
// or restart in between drops them.
func (h *WordHandler) announceSolve(c Context, res *word.Result) error {
	meaning := ""
	if h.meanings != nil {
		meaning = h.meanings.Lookup(c.Ctx(), res.Word).Text
	}
	if err := sendLong(c, RenderSolved(res, c.Sender().ID, meaning)); err != nil {
		return err
	}

	sched := h.round.Scheduler()
	switch {
	case res.Next == nil:
		// The pool could not be refilled and the round ended.
		return c.Send("⛔ Senarai perkataan kosong. Permainan dihentikan.")
	case res.PoolCompleted:
		sched.After(h.pacing.Announce, res.Generation, func() {
			sendLater(c, RenderPoolComplete(res.PoolSize))
		})
		sched.After(h.pacing.Announce+h.pacing.Restart, res.Generation, func() {
			h.sendCurrentBoard(c, true, false)
		})
	default:
		sched.After(h.pacing.Announce+h.pacing.Next, res.Generation, func() {
			h.sendCurrentBoard(c, false, true)
		})
	}
	return nil
}

// sendCurrentBoard shows the live board, including letters revealed while
// the announcement was pending.
func (h *WordHandler) sendCurrentBoard(c Context, header, next bool) {
	board, err := h.round.Board()
	if err != nil {
		return
	}
	sendLater(c, RenderBoard(*board, header, next))
}
