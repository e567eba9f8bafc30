package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/MuizKmz/discord-bot-app/internal/game/word"
	"github.com/MuizKmz/discord-bot-app/internal/words"
)

const msgAdminOnly = "❌ Arahan ini hanya untuk admin!"

// AdminHandler handles vocabulary management. Callers gate it behind the
// admin middleware.
type AdminHandler struct {
	vocab *words.Vocabulary
	round *word.Round
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(vocab *words.Vocabulary, round *word.Round) *AdminHandler {
	return &AdminHandler{vocab: vocab, round: round}
}

// HandleListWords handles !listwords.
func (h *AdminHandler) HandleListWords(c Context) error {
	pages := RenderWordList(h.vocab.Normal(), "Perkataan Biasa", false)
	pages = append(pages, RenderWordList(h.vocab.Exclusive(), "Perkataan Eksklusif", true)...)
	for _, page := range pages {
		if err := sendLong(c, page); err != nil {
			return err
		}
	}
	return nil
}

// HandleAddWord handles !addword <word> [exclusive].
func (h *AdminHandler) HandleAddWord(c Context) error {
	args := c.Args()
	if len(args) < 1 {
		return c.Reply("❌ Format: `!addword <perkataan>` atau `!addword <perkataan> exclusive`")
	}
	w := words.Normalize(args[0])
	exclusive := len(args) > 1 && strings.EqualFold(args[1], "exclusive")

	err := h.vocab.Add(w, exclusive)
	switch {
	case errors.Is(err, words.ErrWordExists):
		return c.Reply(fmt.Sprintf("❌ Perkataan **%s** sudah wujud!", w))
	case errors.Is(err, words.ErrInvalidWord):
		return c.Reply("❌ Perkataan hanya boleh mengandungi huruf a-z.")
	case err != nil:
		return err
	}

	log.Info().Str("user_id", c.Sender().ID).Str("word", w).Bool("exclusive", exclusive).Str("op", "add_word").Msg("Admin operation executed")

	st := h.vocab.Stats()
	if exclusive {
		return c.Reply(fmt.Sprintf("✅ %s Perkataan **%s** berjaya ditambah ke senarai eksklusif!\n-# Total perkataan eksklusif: %d", diamondExclusive, w, st.Exclusive))
	}
	return c.Reply(fmt.Sprintf("✅ %s Perkataan **%s** berjaya ditambah ke senarai biasa!\n-# Total perkataan biasa: %d", diamondNormal, w, st.Normal))
}

// HandleDeleteWord handles !deleteword <word>.
func (h *AdminHandler) HandleDeleteWord(c Context) error {
	args := c.Args()
	if len(args) < 1 {
		return c.Reply("❌ Format: `!deleteword <perkataan>`")
	}
	w := words.Normalize(args[0])

	exclusive, err := h.vocab.Remove(w)
	if errors.Is(err, words.ErrWordNotFound) {
		return c.Reply(fmt.Sprintf("❌ Perkataan **%s** tidak dijumpai!", w))
	}
	if err != nil {
		return err
	}

	log.Info().Str("user_id", c.Sender().ID).Str("word", w).Str("op", "delete_word").Msg("Admin operation executed")

	st := h.vocab.Stats()
	if exclusive {
		return c.Reply(fmt.Sprintf("✅ Perkataan **%s** berjaya dipadam dari senarai eksklusif!\n-# Total perkataan eksklusif: %d", w, st.Exclusive))
	}
	return c.Reply(fmt.Sprintf("✅ Perkataan **%s** berjaya dipadam dari senarai biasa!\n-# Total perkataan biasa: %d", w, st.Normal))
}

// HandleEditWord handles !editword <old> <new>.
func (h *AdminHandler) HandleEditWord(c Context) error {
	args := c.Args()
	if len(args) < 2 {
		return c.Reply("❌ Format: `!editword <perkataan_lama> <perkataan_baru>`")
	}
	oldWord, newWord := words.Normalize(args[0]), words.Normalize(args[1])

	exclusive, err := h.vocab.Rename(oldWord, newWord)
	switch {
	case errors.Is(err, words.ErrWordExists):
		return c.Reply(fmt.Sprintf("❌ Perkataan baru **%s** sudah wujud!", newWord))
	case errors.Is(err, words.ErrWordNotFound):
		return c.Reply(fmt.Sprintf("❌ Perkataan lama **%s** tidak dijumpai!", oldWord))
	case errors.Is(err, words.ErrInvalidWord):
		return c.Reply("❌ Perkataan hanya boleh mengandungi huruf a-z.")
	case err != nil:
		return err
	}

	log.Info().Str("user_id", c.Sender().ID).Str("word", oldWord).Str("new_word", newWord).Str("op", "edit_word").Msg("Admin operation executed")

	if exclusive {
		return c.Reply(fmt.Sprintf("✅ %s Perkataan **%s** berjaya ditukar kepada **%s** (eksklusif)", diamondExclusive, oldWord, newWord))
	}
	return c.Reply(fmt.Sprintf("✅ Perkataan **%s** berjaya ditukar kepada **%s** (biasa)", oldWord, newWord))
}

// HandleSearchWord handles !searchword <term>.
func (h *AdminHandler) HandleSearchWord(c Context) error {
	args := c.Args()
	if len(args) < 1 {
		return c.Reply("❌ Format: `!searchword <kata>`")
	}
	term := words.Normalize(args[0])
	normal, exclusive := h.vocab.Search(term)
	return sendLong(c, RenderSearch(term, normal, exclusive))
}

// HandleWordStats handles !wordstats.
func (h *AdminHandler) HandleWordStats(c Context) error {
	return c.Send(RenderStats(h.vocab.Stats(), h.round.Status()))
}

// HandleAdminHelp handles !adminhelp.
func (h *AdminHandler) HandleAdminHelp(c Context) error {
	return c.Send(divider + "\n\n## 🛠️ Arahan Admin\n\n" +
		"**📋 Lihat Perkataan**\n" +
		"`!listwords` atau `!lihat` - Papar semua perkataan\n\n" +
		"**➕ Tambah Perkataan**\n" +
		"`!addword <perkataan>` - Tambah perkataan biasa\n" +
		"`!addword <perkataan> exclusive` - Tambah perkataan eksklusif\n\n" +
		"**✏️ Edit Perkataan**\n" +
		"`!editword <lama> <baru>` - Tukar perkataan\n\n" +
		"**🗑️ Padam Perkataan**\n" +
		"`!deleteword <perkataan>` - Padam perkataan\n\n" +
		"**🔍 Cari Perkataan**\n" +
		"`!searchword <kata>` - Cari perkataan mengandungi kata\n\n" +
		"**📊 Statistik**\n" +
		"`!wordstats` - Papar statistik perkataan\n\n" +
		"**📖 Maksud Perkataan**\n" +
		"`!setmakna <perkataan> <maksud>` - Tetapkan maksud\n" +
		"`!padammakna <perkataan>` - Padam maksud\n\n" +
		"**🔢 Teka Nombor**\n" +
		"`!jawapan-no` - Intai jawapan semasa\n\n" +
		divider)
}
