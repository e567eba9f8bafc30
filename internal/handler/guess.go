package handler

import (
	"errors"

	"github.com/MuizKmz/discord-bot-app/internal/game"
)

// GuessHandler routes non-command messages to whichever game claims them.
type GuessHandler struct {
	registry *game.Registry
	handlers map[string]HandlerFunc
}

// NewGuessHandler creates a GuessHandler. handlers maps a game's start
// command to the function that resolves its guesses.
func NewGuessHandler(registry *game.Registry, handlers map[string]HandlerFunc) *GuessHandler {
	return &GuessHandler{registry: registry, handlers: handlers}
}

// HandleText handles free text.
func (h *GuessHandler) HandleText(c Context) error {
	user := c.Sender()
	g, err := h.registry.Route(game.Guess{
		UserID:      user.ID,
		DisplayName: user.Name,
		Scope:       c.ChannelID(),
		Text:        c.Text(),
	})
	if errors.Is(err, game.ErrNoActiveGame) {
		return nil
	}
	if err != nil {
		return err
	}

	fn, ok := h.handlers[g.Command()]
	if !ok {
		return nil
	}
	return fn(c)
}
