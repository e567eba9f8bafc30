package handler

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/MuizKmz/discord-bot-app/internal/game/number"
	"github.com/MuizKmz/discord-bot-app/internal/game/word"
	"github.com/MuizKmz/discord-bot-app/internal/model"
	"github.com/MuizKmz/discord-bot-app/internal/words"
)

const (
	divider          = "━━━━━━━━━━━━━━━"
	diamondExclusive = "💎"
	diamondNormal    = "🔹"
	instructions     = "-# *Arahan - Taip huruf atau perkataan untuk diteka*"
	wordsPerPage     = 60
	wordColumns      = 3
)

var medals = []string{"🥇", "🥈", "🥉"}

// SplitMessage breaks text into chunks of at most limit bytes, cutting on
// line boundaries. A single line longer than limit is cut hard.
func SplitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var cur strings.Builder
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			chunks = append(chunks, s)
		}
		cur.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		for len(line) > limit {
			flush()
			cut := limit
			for cut > 0 && !utf8Start(line[cut]) {
				cut--
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}
		if cur.Len()+len(line)+1 > limit {
			flush()
		}
		cur.WriteString(line)
		cur.WriteByte('\n')
	}
	flush()
	return chunks
}

func utf8Start(b byte) bool {
	return b&0xC0 != 0x80
}

func diamond(exclusive bool) string {
	if exclusive {
		return diamondExclusive
	}
	return diamondNormal
}

// maskedWord renders a board as `S` `_` `R` `_`.
func maskedWord(b word.Board) string {
	parts := make([]string, 0, len(b.Cells))
	for _, cell := range b.Cells {
		if cell.Revealed {
			parts = append(parts, "`"+string(unicode.ToUpper(cell.Letter))+"`")
		} else {
			parts = append(parts, "`_`")
		}
	}
	return strings.Join(parts, " ")
}

// struckWord renders a solved word as ~~**S**~~ ~~**E**~~.
func struckWord(w string) string {
	parts := make([]string, 0, len(w))
	for _, r := range w {
		parts = append(parts, "~~**"+string(unicode.ToUpper(r))+"**~~")
	}
	return strings.Join(parts, " ")
}

// RenderBoard draws the word board. header marks a fresh round, next a
// freshly advanced word.
func RenderBoard(b word.Board, header, next bool) string {
	var sb strings.Builder
	sb.WriteString(divider + "\n\n")
	if header {
		sb.WriteString("**Game Teka Perkataan**\n\n")
	}
	if next {
		sb.WriteString("## Perkataan Seterusnya\n\n")
	}
	sb.WriteString(instructions + "\n\n")

	sb.WriteString("Perkataan: " + maskedWord(b))
	if b.Solved() {
		sb.WriteString(" " + diamond(b.Exclusive))
	}
	sb.WriteString("\n\n")
	if b.PoolSize > 0 {
		fmt.Fprintf(&sb, "-# Perkataan %d/%d\n\n", b.Index+1, b.PoolSize)
	}
	sb.WriteString(divider)
	return sb.String()
}

// RenderSolved announces a solved word with its meaning.
func RenderSolved(res *word.Result, userID, meaning string) string {
	var sb strings.Builder
	sb.WriteString(divider + "\n\n")
	sb.WriteString(instructions + "\n\n")
	fmt.Fprintf(&sb, "Perkataan: %s %s\n\n", struckWord(res.Word), diamond(res.Exclusive))
	fmt.Fprintf(&sb, "🎉 Tahniah <@%s> berjaya meneka! Perkataan itu ialah **%s**", userID, res.Word)
	if meaning != "" {
		fmt.Fprintf(&sb, "\n-# Maksud: %s", meaning)
	}
	return sb.String()
}

// RenderPoolComplete announces that every word in the pool was solved.
func RenderPoolComplete(poolSize int) string {
	return fmt.Sprintf("🎊 **Tahniah! Anda telah berjaya menyiapkan semua %d perkataan!**\n\n-# Permainan akan bermula semula...", poolSize)
}

// RenderLetterFeedback answers a letter guess that did not solve the word.
func RenderLetterFeedback(res *word.Result) string {
	feedback := "[ ❌ ] **Huruf tidak ada dalam perkataan. Cuba lagi!**"
	if res.Outcome == word.OutcomePresent {
		feedback = fmt.Sprintf("[ ✅ ] **`%c` ada dalam perkataan. Teruskan!**", res.Letter)
	}
	return feedback + "\n\n" + RenderBoard(res.Board, false, false)
}

// RenderAlreadyGuessed answers a letter that is already on the board.
func RenderAlreadyGuessed(letter rune) string {
	return fmt.Sprintf("Huruf **`%c`** sudah diteka. Cari yang lain!", letter)
}

// RenderLeaderboard lists the top players with their solved words.
func RenderLeaderboard(entries []*model.Entry) string {
	if len(entries) == 0 {
		return "Tiada data papan skor lagi. Mula bermain untuk mendapat mata!"
	}

	var sb strings.Builder
	sb.WriteString(divider + "\n\n## ⭐ Papan Skor Teratas\n\n")
	for i, e := range entries {
		rank := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		guessed := "tiada"
		if len(e.GuessedWords) > 0 {
			guessed = strings.Join(e.GuessedWords, ", ")
		}
		fmt.Fprintf(&sb, "%s **%s** - %d mata\n", rank, e.DisplayName, e.TotalPoints)
		fmt.Fprintf(&sb, "-# Huruf: %d | Nombor: %d\n",
			e.PointsPerCategory[model.CategoryWord], e.PointsPerCategory[model.CategoryNumber])
		fmt.Fprintf(&sb, "-# Perkataan: %s\n\n", guessed)
	}
	sb.WriteString(divider)
	return sb.String()
}

// RenderPlayerScore shows one player's points and guessed words.
func RenderPlayerScore(e *model.Entry) string {
	guessed := "tiada"
	if len(e.GuessedWords) > 0 {
		guessed = strings.Join(e.GuessedWords, ", ")
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** - %d mata\n", e.DisplayName, e.TotalPoints)
	fmt.Fprintf(&sb, "-# Huruf: %d | Nombor: %d\n",
		e.PointsPerCategory[model.CategoryWord], e.PointsPerCategory[model.CategoryNumber])
	fmt.Fprintf(&sb, "-# Perkataan: %s", guessed)
	return sb.String()
}

// RenderWordList pages a sorted word list in three columns.
func RenderWordList(list []string, title string, exclusive bool) []string {
	sorted := append([]string(nil), list...)
	sort.Strings(sorted)

	pages := (len(sorted) + wordsPerPage - 1) / wordsPerPage
	if pages == 0 {
		pages = 1
	}
	out := make([]string, 0, pages)
	for p := 0; p < pages; p++ {
		start := p * wordsPerPage
		end := min(start+wordsPerPage, len(sorted))

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s\n\n## %s %s", divider, diamond(exclusive), title)
		if pages > 1 {
			fmt.Fprintf(&sb, " - 📄 Halaman %d/%d", p+1, pages)
		}
		fmt.Fprintf(&sb, "\n\n-# Total: **%d** perkataan", len(list))
		if pages > 1 {
			fmt.Fprintf(&sb, " | Paparan: %d-%d", start+1, end)
		}
		sb.WriteString("\n\n")

		for i := start; i < end; i += wordColumns {
			row := make([]string, 0, wordColumns)
			for j := i; j < min(i+wordColumns, end); j++ {
				row = append(row, fmt.Sprintf("`%d.` %s", j+1, sorted[j]))
			}
			sb.WriteString(strings.Join(row, "  |  ") + "\n")
		}
		sb.WriteString("\n" + divider)
		out = append(out, sb.String())
	}
	return out
}

// RenderSearch lists the words containing term.
func RenderSearch(term string, normal, exclusive []string) string {
	if len(normal) == 0 && len(exclusive) == 0 {
		return fmt.Sprintf("❌ Tiada perkataan yang mengandungi **\"%s\"**", term)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n## 🔍 Keputusan Carian: \"%s\"\n\n", divider, term)
	if len(normal) > 0 {
		fmt.Fprintf(&sb, "**Perkataan Biasa (%d):**\n• %s\n\n", len(normal), strings.Join(normal, "\n• "))
	}
	if len(exclusive) > 0 {
		fmt.Fprintf(&sb, "**Perkataan Eksklusif (%d):** %s\n• %s\n\n", len(exclusive), diamondExclusive, strings.Join(exclusive, "\n• "))
	}
	sb.WriteString(divider)
	return sb.String()
}

// RenderStats shows vocabulary counts and word round progress.
func RenderStats(st words.Stats, status word.Status) string {
	active := "Tidak ❌"
	if status.Active {
		active = "Ya ✅"
	}
	return fmt.Sprintf("%s\n\n## 📊 Statistik Perkataan\n\n"+
		"**Total Perkataan:** %d\n"+
		"├─ %s Perkataan Biasa: %d\n"+
		"└─ %s Perkataan Eksklusif: %d\n\n"+
		"**Status Permainan:**\n"+
		"├─ Aktif: %s\n"+
		"└─ Perkataan Selesai: %d\n\n%s",
		divider, st.Total, diamondNormal, st.Normal, diamondExclusive, st.Exclusive, active, status.Completed, divider)
}

// RenderNumberStart opens a number round.
func RenderNumberStart(min, max int64) string {
	return fmt.Sprintf("%s\n\n## %s __**Game Teka Nombor**__\n\n"+
		"-# Teka nombor antara %s dan %s (contoh: 5000000)\n"+
		"-# Atau taip !henti-no untuk hentikan permainan\n\n%s",
		divider, diamondNormal, FormatNumber(min), FormatNumber(max), divider)
}

// RenderNumberHint answers a wrong number guess.
func RenderNumberHint(res *number.Result) string {
	return fmt.Sprintf("%s\n\n%s\n\n%s **Tekaan:** %s\n-# 🔢 **Percubaan:** %d\n\n%s",
		divider, res.Message, hintEmoji(res.Tier, res.Direction), FormatNumber(res.Guess), res.Attempts, divider)
}

// RenderNumberWin congratulates the winner and opens the next number.
func RenderNumberWin(res *number.Result, userID string) string {
	return fmt.Sprintf("%s\n\n🐰 **BETUL, ANAK MURID!**\n***Cikgu bangga dengan awak*** 🎉\n\n"+
		"**Jawapan yang betul ialah %s**\n\n"+
		"📊 **Statistik:**\n"+
		"├─ Percubaan: **%d** kali\n"+
		"├─ Pemenang: <@%s>\n"+
		"└─ Mata: **+%d mata**\n\n"+
		"*Sila ambil bintang ni ⭐ dan duduk.*\n\n%s\n\n"+
		"## 🔥 Nombor Seterusnya Jommm!\n\n"+
		"-# Taip nombor baharu untuk meneka\n"+
		"-# Cuba teka nombor seterusnya!\n\n%s",
		divider, FormatNumber(res.Secret), res.Attempts, userID, number.PointsPerWin, divider, divider)
}

// RenderNumberStop discloses the secret when a round is stopped.
func RenderNumberStop(s *number.Summary) string {
	return fmt.Sprintf("%s\n\n⛔ **Permainan dihentikan!**\n\n🔢 **Jawapan sebenar:** %s\n📊 **Percubaan:** %d\n\n%s",
		divider, FormatNumber(s.Secret), s.Attempts, divider)
}

// RenderNumberReveal shows the secret to an admin behind a spoiler.
func RenderNumberReveal(s *number.Summary) string {
	return fmt.Sprintf("%s\n\n🔍 **Admin Preview**\n\n🔢 **Jawapan:** ||%s||\n📊 **Percubaan semasa:** %d\n\n-# Hanya admin boleh nampak mesej ini\n\n%s",
		divider, FormatNumber(s.Secret), s.Attempts, divider)
}

func hintEmoji(t number.Tier, d number.Direction) string {
	high := d == number.TooHigh
	switch t {
	case number.TierExtreme:
		if high {
			return "📉"
		}
		return "📈"
	case number.TierFar:
		if high {
			return "🔥"
		}
		return "❄️"
	case number.TierClose:
		if high {
			return "🔥🔥"
		}
		return "❄️❄️"
	default:
		if high {
			return "🔥🔥🔥"
		}
		return "❄️❄️❄️"
	}
}

// FormatNumber groups digits in thousands: 5000000 -> 5,000,000.
func FormatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	var sb strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	return sign + sb.String()
}
