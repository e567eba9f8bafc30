package handler

import (
	"errors"
	"fmt"

	"github.com/MuizKmz/discord-bot-app/internal/config"
	"github.com/MuizKmz/discord-bot-app/internal/game"
	"github.com/MuizKmz/discord-bot-app/internal/game/number"
	"github.com/MuizKmz/discord-bot-app/internal/metrics"
)

const msgNoNumberGame = "❌ Tiada permainan aktif! Taip `!teka-no` untuk mula."

// NumberHandler handles the number-range game.
type NumberHandler struct {
	round   *number.Round
	cfg     *config.Config
	metrics *metrics.Metrics
}

// NewNumberHandler creates a new NumberHandler.
func NewNumberHandler(round *number.Round, cfg *config.Config, m *metrics.Metrics) *NumberHandler {
	return &NumberHandler{round: round, cfg: cfg, metrics: m}
}

// HandleStart handles !teka-no [min max]. The round binds to this channel.
func (h *NumberHandler) HandleStart(c Context) error {
	lo, hi := h.round.Bounds()
	args := c.Args()
	if len(args) == 1 || len(args) > 2 {
		return c.Reply("❌ Format: `!teka-no` atau `!teka-no <min> <max>`")
	}
	if len(args) == 2 {
		var err1, err2 error
		lo, err1 = number.ParseGuess(args[0])
		hi, err2 = number.ParseGuess(args[1])
		if err1 != nil || err2 != nil {
			return c.Reply("❌ Format: `!teka-no <min> <max>` dengan nombor yang sah")
		}
	}

	err := h.round.Start(lo, hi, c.Sender().ID, c.ChannelID())
	switch {
	case errors.Is(err, game.ErrAlreadyActive):
		return c.Reply("⚠️ Permainan sedang berjalan! Selesaikan dulu atau taip `!henti-no` untuk hentikan.")
	case errors.Is(err, number.ErrRangeTooWide):
		return c.Reply("❌ Julat tidak sah: julat terlalu besar")
	case errors.Is(err, game.ErrInvalidInput):
		return c.Reply(fmt.Sprintf("❌ Julat tidak sah: %s lebih besar daripada %s", FormatNumber(lo), FormatNumber(hi)))
	case err != nil:
		return err
	}

	if h.metrics != nil {
		h.metrics.RoundsStarted.WithLabelValues("number").Inc()
	}
	return c.Send(RenderNumberStart(lo, hi))
}

// HandleStop handles !henti-no and discloses the secret.
func (h *NumberHandler) HandleStop(c Context) error {
	summary, err := h.round.Stop(c.Sender().ID)
	if errors.Is(err, game.ErrNotActive) {
		return c.Reply(msgNoNumberGame)
	}
	if err != nil {
		return err
	}
	return c.Send(RenderNumberStop(summary))
}

// HandleReveal handles !jawapan-no, an admin-only peek at the secret.
func (h *NumberHandler) HandleReveal(c Context) error {
	summary, err := h.round.Reveal(c.Sender().ID, h.cfg.Admin.IDs)
	switch {
	case errors.Is(err, game.ErrNotAuthorized):
		return c.Reply(msgAdminOnly)
	case errors.Is(err, game.ErrNotActive):
		return c.Reply(msgNoNumberGame)
	case err != nil:
		return err
	}
	return c.Reply(RenderNumberReveal(summary))
}

// HandleGuess resolves free text in the round's channel.
func (h *NumberHandler) HandleGuess(c Context) error {
	user := c.Sender()
	res, err := h.round.Guess(c.Ctx(), user.ID, user.Name, c.Text(), c.ChannelID())
	switch {
	case errors.Is(err, game.ErrNotActive), errors.Is(err, game.ErrOutOfScope):
		return nil
	case errors.Is(err, game.ErrInvalidInput):
		return c.Reply("❌ Sila taip nombor yang sah!")
	case err != nil:
		return err
	}

	if res.Won {
		if h.metrics != nil {
			h.metrics.Guesses.WithLabelValues("number", "won").Inc()
		}
		return c.Send(RenderNumberWin(res, user.ID))
	}
	if h.metrics != nil {
		h.metrics.Guesses.WithLabelValues("number", res.Tier.String()).Inc()
	}
	return c.Reply(RenderNumberHint(res))
}
