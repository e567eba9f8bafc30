// Package bot connects the game handlers to Discord.
package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/MuizKmz/discord-bot-app/internal/config"
	"github.com/MuizKmz/discord-bot-app/internal/handler"
	"github.com/MuizKmz/discord-bot-app/internal/metrics"
)

// Bot wraps the discordgo session with application dependencies.
type Bot struct {
	session *discordgo.Session
	cfg     *config.Config
	router  *Router
	ctx     context.Context
	cancel  context.CancelFunc
}

// Dependencies holds all the dependencies needed by the bot handlers.
type Dependencies struct {
	Config  *config.Config
	Metrics *metrics.Metrics

	Word        *handler.WordHandler
	Number      *handler.NumberHandler
	Leaderboard *handler.LeaderboardHandler
	Admin       *handler.AdminHandler
	Meaning     *handler.MeaningHandler
	Guess       *handler.GuessHandler
}

// New creates a new Bot instance with the given dependencies.
func New(deps *Dependencies) (*Bot, error) {
	if deps == nil || deps.Config == nil {
		return nil, errors.New("config cannot be nil")
	}
	if deps.Config.Bot.Token == "" {
		return nil, errors.New("bot token is required")
	}

	session, err := discordgo.New("Bot " + deps.Config.Bot.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent

	ctx, cancel := context.WithCancel(context.Background())
	b := &Bot{
		session: session,
		cfg:     deps.Config,
		router:  NewRouter(deps),
		ctx:     ctx,
		cancel:  cancel,
	}

	session.AddHandler(b.onReady)
	session.AddHandler(b.onMessageCreate)
	return b, nil
}

// NewRouter registers every command against deps.
func NewRouter(deps *Dependencies) *Router {
	cfg := deps.Config
	r := newRouter(deps.Metrics,
		RecoveryMiddleware(),
		AllowlistMiddleware(cfg),
		LoggingMiddleware(),
	)
	admin := AdminMiddleware(cfg)

	if deps.Word != nil {
		r.Handle([]string{"!teka"}, deps.Word.HandleStart)
		r.Handle([]string{"!henti", "!resetteka"}, deps.Word.HandleStop)
	}
	if deps.Number != nil {
		r.Handle([]string{"!teka-no"}, deps.Number.HandleStart)
		r.Handle([]string{"!henti-no"}, deps.Number.HandleStop)
		r.Handle([]string{"!jawapan-no"}, deps.Number.HandleReveal)
	}
	if deps.Leaderboard != nil {
		r.Handle([]string{"!skor", "!leaderboard"}, deps.Leaderboard.HandleTop)
		r.Handle([]string{"!mata"}, deps.Leaderboard.HandleMine)
	}
	if deps.Admin != nil {
		r.Handle([]string{"!listwords", "!lihat"}, deps.Admin.HandleListWords, admin)
		r.Handle([]string{"!addword", "!tambah"}, deps.Admin.HandleAddWord, admin)
		r.Handle([]string{"!deleteword", "!padam"}, deps.Admin.HandleDeleteWord, admin)
		r.Handle([]string{"!editword", "!edit"}, deps.Admin.HandleEditWord, admin)
		r.Handle([]string{"!searchword", "!cari"}, deps.Admin.HandleSearchWord, admin)
		r.Handle([]string{"!wordstats", "!stats"}, deps.Admin.HandleWordStats, admin)
		r.Handle([]string{"!adminhelp", "!bantuan"}, deps.Admin.HandleAdminHelp, admin)
	}
	if deps.Meaning != nil {
		r.Handle([]string{"!makna"}, deps.Meaning.HandleLookup)
		r.Handle([]string{"!setmakna"}, deps.Meaning.HandleSet, admin)
		r.Handle([]string{"!padammakna"}, deps.Meaning.HandleDelete, admin)
	}
	if deps.Guess != nil {
		r.Fallback(deps.Guess.HandleText)
	}
	return r
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	log.Info().
		Str("user", r.User.Username).
		Int("guilds", len(r.Guilds)).
		Int("admins", len(b.cfg.Admin.IDs)).
		Msg("Bot logged in")
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	c := newMessageContext(b.ctx, s, m.Message)
	if err := b.router.Dispatch(c); err != nil {
		log.Error().
			Err(err).
			Str("user_id", m.Author.ID).
			Str("channel_id", m.ChannelID).
			Msg("Handler failed")
	}
}

// Start opens the gateway connection.
func (b *Bot) Start() error {
	log.Info().Msg("Starting bot...")
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	return nil
}

// Stop closes the gateway connection and cancels in-flight handlers.
func (b *Bot) Stop() error {
	log.Info().Msg("Stopping bot...")
	b.cancel()
	return b.session.Close()
}
