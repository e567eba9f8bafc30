package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MuizKmz/discord-bot-app/internal/repository"
	"github.com/MuizKmz/discord-bot-app/internal/service"
	"github.com/MuizKmz/discord-bot-app/internal/words"
)

// MeaningHandler handles word meaning commands.
type MeaningHandler struct {
	meanings *service.MeaningService
}

// NewMeaningHandler creates a new MeaningHandler.
func NewMeaningHandler(meanings *service.MeaningService) *MeaningHandler {
	return &MeaningHandler{meanings: meanings}
}

// HandleLookup handles !makna <word>.
func (h *MeaningHandler) HandleLookup(c Context) error {
	args := c.Args()
	if len(args) < 1 {
		return c.Reply("❌ Format: `!makna <perkataan>`")
	}
	m := h.meanings.Lookup(c.Ctx(), args[0])
	return c.Reply(fmt.Sprintf("📖 **%s**\n%s", m.Word, m.Text))
}

// HandleSet handles !setmakna <word> <meaning...>. Admin only.
func (h *MeaningHandler) HandleSet(c Context) error {
	args := c.Args()
	if len(args) < 2 {
		return c.Reply("❌ Format: `!setmakna <perkataan> <maksud>`")
	}
	w := words.Normalize(args[0])
	meaning := strings.Join(args[1:], " ")

	if err := h.meanings.Set(c.Ctx(), w, meaning, c.Sender().ID); err != nil {
		if errors.Is(err, service.ErrEmptyMeaning) {
			return c.Reply("❌ Format: `!setmakna <perkataan> <maksud>`")
		}
		return err
	}
	return c.Reply(fmt.Sprintf("✅ Maksud **%s** berjaya disimpan!", w))
}

// HandleDelete handles !padammakna <word>. Admin only.
func (h *MeaningHandler) HandleDelete(c Context) error {
	args := c.Args()
	if len(args) < 1 {
		return c.Reply("❌ Format: `!padammakna <perkataan>`")
	}
	w := words.Normalize(args[0])

	err := h.meanings.Delete(c.Ctx(), w)
	if errors.Is(err, repository.ErrMeaningNotFound) {
		return c.Reply(fmt.Sprintf("❌ Tiada maksud tersimpan untuk **%s**", w))
	}
	if err != nil {
		return err
	}
	return c.Reply(fmt.Sprintf("✅ Maksud **%s** berjaya dipadam!", w))
}
