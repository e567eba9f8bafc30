package handler

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/MuizKmz/discord-bot-app/internal/repository"
	"github.com/MuizKmz/discord-bot-app/internal/service"
)

// LeaderboardHandler handles leaderboard commands.
type LeaderboardHandler struct {
	leaderboard *service.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(leaderboard *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

// HandleTop handles !skor and !leaderboard.
func (h *LeaderboardHandler) HandleTop(c Context) error {
	entries, err := h.leaderboard.TopPlayers(c.Ctx(), 0)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read leaderboard")
		return c.Reply("❌ Gagal mendapatkan papan skor. Cuba lagi nanti.")
	}
	return sendLong(c, RenderLeaderboard(entries))
}

// HandleMine handles !mata, showing the sender's own points.
func (h *LeaderboardHandler) HandleMine(c Context) error {
	entry, err := h.leaderboard.PlayerScore(c.Ctx(), c.Sender().ID)
	if errors.Is(err, repository.ErrEntryNotFound) {
		return c.Reply("Anda belum mempunyai mata. Teka perkataan atau nombor untuk bermula!")
	}
	if err != nil {
		log.Error().Err(err).Str("user_id", c.Sender().ID).Msg("Failed to read player score")
		return c.Reply("❌ Gagal mendapatkan mata anda. Cuba lagi nanti.")
	}
	return sendLong(c, RenderPlayerScore(entry))
}
