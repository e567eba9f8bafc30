package handler

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuizKmz/discord-bot-app/internal/config"
	"github.com/MuizKmz/discord-bot-app/internal/game"
	"github.com/MuizKmz/discord-bot-app/internal/game/number"
	"github.com/MuizKmz/discord-bot-app/internal/game/word"
	"github.com/MuizKmz/discord-bot-app/internal/model"
	"github.com/MuizKmz/discord-bot-app/internal/repository"
	"github.com/MuizKmz/discord-bot-app/internal/service"
	"github.com/MuizKmz/discord-bot-app/internal/words"
)

type fakeContext struct {
	mu      sync.Mutex
	user    User
	channel string
	text    string
	args    []string
	replies []string
	sent    []string
}

func newFakeContext(userID, channel, text string) *fakeContext {
	fields := strings.Fields(text)
	var args []string
	if len(fields) > 1 {
		args = fields[1:]
	}
	return &fakeContext{
		user:    User{ID: userID, Name: "name-" + userID},
		channel: channel,
		text:    text,
		args:    args,
	}
}

func (f *fakeContext) Ctx() context.Context { return context.Background() }
func (f *fakeContext) Sender() User         { return f.user }
func (f *fakeContext) ChannelID() string    { return f.channel }
func (f *fakeContext) GuildID() string      { return "guild-1" }
func (f *fakeContext) Text() string         { return f.text }
func (f *fakeContext) Args() []string       { return f.args }

func (f *fakeContext) Reply(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies = append(f.replies, text)
	return nil
}

func (f *fakeContext) Send(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeContext) lastReply() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.replies) == 0 {
		return ""
	}
	return f.replies[len(f.replies)-1]
}

func (f *fakeContext) sentContaining(s string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, m := range f.sent {
		if strings.Contains(m, s) {
			n++
		}
	}
	return n
}

type fixture struct {
	vocab       *words.Vocabulary
	store       *repository.FileStore
	leaderboard *service.LeaderboardService
	round       *word.Round
	words       *WordHandler
	numberRound *number.Round
	numbers     *NumberHandler
}

func newFixture(t *testing.T, vocab []string, cooldown time.Duration, pacing Pacing) *fixture {
	t.Helper()
	v, err := words.New(vocab, nil)
	require.NoError(t, err)

	store := repository.NewFileStore(repository.FileStoreConfig{
		Path:      t.TempDir() + "/leaderboard.json",
		BackupDir: t.TempDir(),
	})
	lb := service.NewLeaderboardService(store, nil, 10)
	meanings := service.NewMeaningService(repository.NewMemoryMeaningStore(), nil,
		service.NewDictionarySource(words.Dictionary{"seri": "Gelaran kehormatan"}))

	round := word.New(&word.Config{Cooldown: cooldown, Seed: 7}, v, lb, nil)
	nr := number.New(&number.Config{Min: 1, Max: 100, Seed: 7}, lb)
	cfg := &config.Config{Admin: config.AdminConfig{IDs: []string{"admin"}}}

	return &fixture{
		vocab:       v,
		store:       store,
		leaderboard: lb,
		round:       round,
		words:       NewWordHandler(round, lb, meanings, nil, pacing),
		numberRound: nr,
		numbers:     NewNumberHandler(nr, cfg, nil),
	}
}

func currentWord(t *testing.T, r *word.Round) string {
	t.Helper()
	b, err := r.Board()
	require.NoError(t, err)
	var sb strings.Builder
	for _, c := range b.Cells {
		sb.WriteRune(c.Letter)
	}
	return sb.String()
}

var fastPacing = Pacing{Announce: 5 * time.Millisecond, Next: 5 * time.Millisecond, Restart: 5 * time.Millisecond}

func TestWordHandler_StartResetsLeaderboard(t *testing.T) {
	f := newFixture(t, []string{"seri"}, 0, fastPacing)
	f.leaderboard.Award(context.Background(), model.Award{UserID: "old", DisplayName: "Old", Points: 5, Category: model.CategoryNumber})

	c := newFakeContext("u1", "c1", "!teka")
	require.NoError(t, f.words.HandleStart(c))

	top, err := f.leaderboard.TopPlayers(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, top)
	assert.Equal(t, 1, c.sentContaining("Game Teka Perkataan"))

	require.NoError(t, f.words.HandleStart(c), "second start is ignored")
	assert.Equal(t, 1, c.sentContaining("Game Teka Perkataan"))
}

func TestWordHandler_EmptyVocabularyKeepsLeaderboard(t *testing.T) {
	f := newFixture(t, nil, 0, fastPacing)
	f.leaderboard.Award(context.Background(), model.Award{UserID: "old", DisplayName: "Old", Points: 5, Category: model.CategoryNumber})

	c := newFakeContext("u1", "c1", "!teka")
	require.NoError(t, f.words.HandleStart(c))
	assert.Contains(t, c.lastReply(), "Tiada perkataan")
	assert.False(t, f.round.Active())

	top, err := f.leaderboard.TopPlayers(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, int64(5), top[0].TotalPoints)
}

func TestLeaderboardHandler_Mine(t *testing.T) {
	f := newFixture(t, []string{"seri"}, 0, fastPacing)
	h := NewLeaderboardHandler(f.leaderboard)

	c := newFakeContext("u1", "c1", "!mata")
	require.NoError(t, h.HandleMine(c))
	assert.Contains(t, c.lastReply(), "belum mempunyai mata")

	ctx := context.Background()
	f.leaderboard.Award(ctx, model.Award{UserID: "u1", DisplayName: "Ali", Points: 1, Item: "seri", Category: model.CategoryWord})
	f.leaderboard.Award(ctx, model.Award{UserID: "u1", DisplayName: "Ali", Points: 1, Item: "teka-no-9", Category: model.CategoryNumber})

	c = newFakeContext("u1", "c1", "!mata")
	require.NoError(t, h.HandleMine(c))
	require.Len(t, c.sent, 1)
	assert.Contains(t, c.sent[0], "**Ali** - 2 mata")
	assert.Contains(t, c.sent[0], "-# Huruf: 1 | Nombor: 1")
	assert.Contains(t, c.sent[0], "seri, teka-no-9")
}

func TestWordHandler_LetterFlowAndPoolRestart(t *testing.T) {
	f := newFixture(t, []string{"seri"}, 0, fastPacing)
	require.NoError(t, f.words.HandleStart(newFakeContext("u1", "c1", "!teka")))

	c := newFakeContext("u1", "c1", "s")
	require.NoError(t, f.words.HandleGuess(c))
	assert.Contains(t, c.lastReply(), "`s` ada dalam perkataan")

	require.NoError(t, f.words.HandleGuess(c))
	assert.Contains(t, c.lastReply(), "sudah diteka")

	c = newFakeContext("u1", "c1", "x")
	require.NoError(t, f.words.HandleGuess(c))
	assert.Contains(t, c.lastReply(), "Huruf tidak ada dalam perkataan")

	var last *fakeContext
	for _, l := range []string{"e", "r", "i"} {
		last = newFakeContext("u1", "c1", l)
		require.NoError(t, f.words.HandleGuess(last))
	}
	assert.Equal(t, 1, last.sentContaining("Tahniah <@u1> berjaya meneka"))
	assert.Equal(t, 1, last.sentContaining("Maksud: Gelaran kehormatan"))

	assert.Eventually(t, func() bool {
		return last.sentContaining("menyiapkan semua 1 perkataan") == 1 &&
			last.sentContaining("Game Teka Perkataan") == 1
	}, time.Second, 5*time.Millisecond)

	top, err := f.leaderboard.TopPlayers(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, int64(1), top[0].PointsPerCategory[model.CategoryWord])
	assert.Equal(t, []string{"seri"}, top[0].GuessedWords)
}

func TestWordHandler_StopDropsPendingBoards(t *testing.T) {
	f := newFixture(t, []string{"seri", "raja"}, 0, Pacing{Announce: 50 * time.Millisecond, Next: 50 * time.Millisecond})
	require.NoError(t, f.words.HandleStart(newFakeContext("u1", "c1", "!teka")))

	c := newFakeContext("u1", "c1", currentWord(t, f.round))
	require.NoError(t, f.words.HandleGuess(c))
	assert.Equal(t, 1, c.sentContaining("berjaya meneka"))

	stop := newFakeContext("u1", "c1", "!henti")
	require.NoError(t, f.words.HandleStop(stop))
	assert.Equal(t, 1, stop.sentContaining("dihentikan"))

	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, c.sentContaining("Perkataan Seterusnya"))
	assert.Zero(t, f.round.Scheduler().Pending())

	require.NoError(t, f.words.HandleStop(stop), "stopping twice is silent")
}

func TestWordHandler_NextBoard(t *testing.T) {
	f := newFixture(t, []string{"seri", "raja"}, 0, fastPacing)
	require.NoError(t, f.words.HandleStart(newFakeContext("u1", "c1", "!teka")))

	c := newFakeContext("u1", "c1", currentWord(t, f.round))
	require.NoError(t, f.words.HandleGuess(c))

	assert.Eventually(t, func() bool {
		return c.sentContaining("Perkataan Seterusnya") == 1
	}, time.Second, 5*time.Millisecond)
}

func TestWordHandler_SlowDown(t *testing.T) {
	f := newFixture(t, []string{"istana"}, time.Hour, fastPacing)
	require.NoError(t, f.words.HandleStart(newFakeContext("u1", "c1", "!teka")))

	c := newFakeContext("u1", "c1", "i")
	require.NoError(t, f.words.HandleGuess(c))
	c = newFakeContext("u1", "c1", "s")
	require.NoError(t, f.words.HandleGuess(c))
	assert.Contains(t, c.lastReply(), "SABAR JANGAN SPAM")

	other := newFakeContext("u2", "c1", "s")
	require.NoError(t, f.words.HandleGuess(other))
	assert.Contains(t, other.lastReply(), "ada dalam perkataan")
}

func TestNumberHandler_Flow(t *testing.T) {
	f := newFixture(t, []string{"seri"}, 0, fastPacing)

	start := newFakeContext("u1", "c1", "!teka-no 5 5")
	require.NoError(t, f.numbers.HandleStart(start))
	assert.Equal(t, 1, start.sentContaining("Game Teka Nombor"))

	require.NoError(t, f.numbers.HandleStart(start))
	assert.Contains(t, start.lastReply(), "Permainan sedang berjalan")

	c := newFakeContext("u2", "c1", "lima")
	require.NoError(t, f.numbers.HandleGuess(c))
	assert.Contains(t, c.lastReply(), "Sila taip nombor yang sah")

	c = newFakeContext("u2", "c2", "5")
	require.NoError(t, f.numbers.HandleGuess(c))
	assert.Empty(t, c.replies)
	assert.Empty(t, c.sent)

	reveal := newFakeContext("u2", "c1", "!jawapan-no")
	require.NoError(t, f.numbers.HandleReveal(reveal))
	assert.Equal(t, msgAdminOnly, reveal.lastReply())

	reveal = newFakeContext("admin", "c1", "!jawapan-no")
	require.NoError(t, f.numbers.HandleReveal(reveal))
	assert.Contains(t, reveal.lastReply(), "||5||")

	c = newFakeContext("u2", "c1", "5")
	require.NoError(t, f.numbers.HandleGuess(c))
	assert.Equal(t, 1, c.sentContaining("+1 mata"))
	assert.Equal(t, 1, c.sentContaining("<@u2>"))

	stop := newFakeContext("u1", "c1", "!henti-no")
	require.NoError(t, f.numbers.HandleStop(stop))
	assert.Equal(t, 1, stop.sentContaining("Jawapan sebenar:** 5"))

	require.NoError(t, f.numbers.HandleStop(stop))
	assert.Contains(t, stop.lastReply(), "Tiada permainan aktif")
}

func TestNumberHandler_HintAndBadRange(t *testing.T) {
	f := newFixture(t, []string{"seri"}, 0, fastPacing)

	bad := newFakeContext("u1", "c1", "!teka-no 10 1")
	require.NoError(t, f.numbers.HandleStart(bad))
	assert.Contains(t, bad.lastReply(), "Julat tidak sah")

	require.NoError(t, f.numbers.HandleStart(newFakeContext("u1", "c1", "!teka-no 1 2")))
	c := newFakeContext("u1", "c1", "3")
	require.NoError(t, f.numbers.HandleGuess(c))
	assert.Contains(t, c.lastReply(), "**Tekaan:** 3")
	assert.Contains(t, c.lastReply(), "**Percubaan:** 1")
	assert.Contains(t, c.lastReply(), "🔥🔥🔥")
}

func TestNumberHandler_RangeTooWide(t *testing.T) {
	f := newFixture(t, []string{"seri"}, 0, fastPacing)

	c := newFakeContext("u1", "c1", "!teka-no 0 9223372036854775807")
	require.NoError(t, f.numbers.HandleStart(c))
	assert.Contains(t, c.lastReply(), "julat terlalu besar")
	assert.False(t, f.numberRound.Active())
}

func TestGuessHandler_Routing(t *testing.T) {
	f := newFixture(t, []string{"seri"}, 0, fastPacing)
	registry := game.NewRegistry()
	require.NoError(t, registry.Register(f.round))
	require.NoError(t, registry.Register(f.numberRound))

	var routed []string
	h := NewGuessHandler(registry, map[string]HandlerFunc{
		"teka":    func(c Context) error { routed = append(routed, "word:"+c.Text()); return nil },
		"teka-no": func(c Context) error { routed = append(routed, "number:"+c.Text()); return nil },
	})

	require.NoError(t, h.HandleText(newFakeContext("u1", "c1", "s")))
	assert.Empty(t, routed, "nothing is active")

	require.NoError(t, f.words.HandleStart(newFakeContext("u1", "c1", "!teka")))
	require.NoError(t, f.numbers.HandleStart(newFakeContext("u1", "c1", "!teka-no")))

	for _, text := range []string{"s", "1234", "seri", "hello world"} {
		require.NoError(t, h.HandleText(newFakeContext("u1", "c1", text)))
	}
	require.NoError(t, h.HandleText(newFakeContext("u1", "c2", "1234")))

	assert.Equal(t, []string{"word:s", "number:1234", "word:seri", "number:hello world"}, routed)
}

func TestAdminHandler_Vocabulary(t *testing.T) {
	f := newFixture(t, []string{"seri"}, 0, fastPacing)
	h := NewAdminHandler(f.vocab, f.round)

	c := newFakeContext("admin", "c1", "!addword Istana exclusive")
	require.NoError(t, h.HandleAddWord(c))
	assert.Contains(t, c.lastReply(), "senarai eksklusif")
	assert.True(t, f.vocab.IsExclusive("istana"))

	require.NoError(t, h.HandleAddWord(c))
	assert.Contains(t, c.lastReply(), "sudah wujud")

	c = newFakeContext("admin", "c1", "!editword istana balai")
	require.NoError(t, h.HandleEditWord(c))
	assert.Contains(t, c.lastReply(), "(eksklusif)")

	c = newFakeContext("admin", "c1", "!searchword al")
	require.NoError(t, h.HandleSearchWord(c))
	assert.Equal(t, 1, c.sentContaining("• balai"))

	c = newFakeContext("admin", "c1", "!deleteword balai")
	require.NoError(t, h.HandleDeleteWord(c))
	assert.Contains(t, c.lastReply(), "dipadam dari senarai eksklusif")

	require.NoError(t, h.HandleDeleteWord(c))
	assert.Contains(t, c.lastReply(), "tidak dijumpai")

	c = newFakeContext("admin", "c1", "!wordstats")
	require.NoError(t, h.HandleWordStats(c))
	assert.Equal(t, 1, c.sentContaining("**Total Perkataan:** 1"))
}

func TestMeaningHandler(t *testing.T) {
	svc := service.NewMeaningService(repository.NewMemoryMeaningStore(), nil)
	h := NewMeaningHandler(svc)

	c := newFakeContext("admin", "c1", "!setmakna seri Gelaran untuk raja")
	require.NoError(t, h.HandleSet(c))
	assert.Contains(t, c.lastReply(), "berjaya disimpan")

	c = newFakeContext("u1", "c1", "!makna SERI")
	require.NoError(t, h.HandleLookup(c))
	assert.Contains(t, c.lastReply(), "Gelaran untuk raja")

	c = newFakeContext("admin", "c1", "!padammakna seri")
	require.NoError(t, h.HandleDelete(c))
	require.NoError(t, h.HandleDelete(c))
	assert.Contains(t, c.lastReply(), "Tiada maksud tersimpan")

	c = newFakeContext("u1", "c1", "!makna seri")
	require.NoError(t, h.HandleLookup(c))
	assert.Contains(t, c.lastReply(), service.FallbackMeaning)
}
