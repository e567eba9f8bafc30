package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/MuizKmz/discord-bot-app/internal/bot"
	"github.com/MuizKmz/discord-bot-app/internal/config"
	"github.com/MuizKmz/discord-bot-app/internal/game"
	"github.com/MuizKmz/discord-bot-app/internal/game/number"
	"github.com/MuizKmz/discord-bot-app/internal/game/word"
	"github.com/MuizKmz/discord-bot-app/internal/handler"
	"github.com/MuizKmz/discord-bot-app/internal/metrics"
	"github.com/MuizKmz/discord-bot-app/internal/service"
	"github.com/MuizKmz/discord-bot-app/internal/words"
)

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New()

	// Initialize leaderboard and meaning storage
	backend := openBackend(ctx, cfg)
	defer backend.Close()

	leaderboard := service.NewLeaderboardService(backend.Leaderboard, m, cfg.Leaderboard.TopLimit)
	if n, err := leaderboard.Load(ctx); err != nil {
		log.Error().Err(err).Int("entries", n).Msg("Starting with a partial leaderboard")
	}

	// Initialize vocabulary and dictionary
	vocab, err := loadVocabulary(cfg)
	if err != nil {
		return err
	}
	dict, err := words.DefaultDictionary()
	if err != nil {
		return err
	}

	sources := []service.MeaningSource{service.NewDictionarySource(dict)}
	if cfg.Dictionary.Enabled && cfg.Dictionary.URL != "" {
		sources = append(sources, service.NewKategloSource(cfg.Dictionary.URL, cfg.Dictionary.Timeout))
	}
	meanings := service.NewMeaningService(backend.Meanings, m, sources...)

	// Initialize games and register them in routing order
	scheduler := game.NewScheduler()
	m.ObservePendingAnnouncements(scheduler.Pending)
	wordRound := word.New(&word.Config{
		Cooldown: cfg.Games.Word.Cooldown,
		Seed:     cfg.Games.Word.Seed,
	}, vocab, leaderboard, scheduler)
	numberRound := number.New(&number.Config{
		Min:  cfg.Games.Number.Min,
		Max:  cfg.Games.Number.Max,
		Seed: cfg.Games.Number.Seed,
	}, leaderboard)

	registry := game.NewRegistry()
	for _, g := range []game.Game{wordRound, numberRound} {
		if err := registry.Register(g); err != nil {
			return err
		}
	}
	log.Info().
		Int("game_count", registry.Count()).
		Strs("games", registry.Commands()).
		Str("backend", leaderboard.Backend()).
		Int("vocabulary", vocab.Stats().Total).
		Msg("Games registered")

	// Initialize handlers
	wordHandler := handler.NewWordHandler(wordRound, leaderboard, meanings, m, handler.Pacing{
		Announce: cfg.Games.Word.AnnounceDelay,
		Next:     cfg.Games.Word.NextWordDelay,
		Restart:  cfg.Games.Word.RestartDelay,
	})
	numberHandler := handler.NewNumberHandler(numberRound, cfg, m)

	deps := &bot.Dependencies{
		Config:      cfg,
		Metrics:     m,
		Word:        wordHandler,
		Number:      numberHandler,
		Leaderboard: handler.NewLeaderboardHandler(leaderboard),
		Admin:       handler.NewAdminHandler(vocab, wordRound),
		Meaning:     handler.NewMeaningHandler(meanings),
		Guess: handler.NewGuessHandler(registry, map[string]handler.HandlerFunc{
			wordRound.Command():   wordHandler.HandleGuess,
			numberRound.Command(): numberHandler.HandleGuess,
		}),
	}

	// Initialize bot
	discordBot, err := bot.New(deps)
	if err != nil {
		return err
	}
	if err := discordBot.Start(); err != nil {
		return err
	}

	var opsServer *metrics.Server
	if cfg.Metrics.Addr != "" {
		opsServer = metrics.NewServer(cfg.Metrics.Addr, m, backend.Health)
		opsServer.Start()
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	// Graceful shutdown
	if err := discordBot.Stop(); err != nil {
		log.Error().Err(err).Msg("Failed to close Discord session")
	}
	wordRound.Scheduler().Bump()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := leaderboard.Flush(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to flush leaderboard")
	}
	if opsServer != nil {
		if err := opsServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Failed to stop metrics server")
		}
	}
	log.Info().Msg("Bot stopped gracefully")
	return nil
}

// loadVocabulary uses the configured word lists, or the built-in ones when
// none are configured.
func loadVocabulary(cfg *config.Config) (*words.Vocabulary, error) {
	if len(cfg.Games.Word.Vocabulary) > 0 || len(cfg.Games.Word.ExclusiveWords) > 0 {
		return words.New(cfg.Games.Word.Vocabulary, cfg.Games.Word.ExclusiveWords)
	}
	return words.Default()
}
