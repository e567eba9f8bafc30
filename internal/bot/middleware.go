package bot

import (
	"github.com/rs/zerolog/log"

	"github.com/MuizKmz/discord-bot-app/internal/config"
	"github.com/MuizKmz/discord-bot-app/internal/handler"
)

// Middleware wraps a handler.
type Middleware func(next handler.HandlerFunc) handler.HandlerFunc

// AllowlistMiddleware drops messages from guilds or channels outside the
// configured allowlists. An empty list allows everything.
func AllowlistMiddleware(cfg *config.Config) Middleware {
	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(c handler.Context) error {
			if !cfg.IsGuildAllowed(c.GuildID()) {
				log.Debug().Str("guild_id", c.GuildID()).Msg("Ignoring message from non-allowed guild")
				return nil
			}
			if !cfg.IsChannelAllowed(c.ChannelID()) {
				log.Debug().Str("channel_id", c.ChannelID()).Msg("Ignoring message from non-allowed channel")
				return nil
			}
			return next(c)
		}
	}
}

// AdminMiddleware rejects non-admins with a reply.
func AdminMiddleware(cfg *config.Config) Middleware {
	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(c handler.Context) error {
			if !cfg.IsAdmin(c.Sender().ID) {
				log.Warn().
					Str("user_id", c.Sender().ID).
					Str("command", c.Text()).
					Msg("Non-admin attempted admin command")
				return c.Reply("❌ Arahan ini hanya untuk admin!")
			}
			return next(c)
		}
	}
}

// LoggingMiddleware logs every message it passes on.
func LoggingMiddleware() Middleware {
	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(c handler.Context) error {
			log.Debug().
				Str("user_id", c.Sender().ID).
				Str("username", c.Sender().Name).
				Str("guild_id", c.GuildID()).
				Str("channel_id", c.ChannelID()).
				Str("text", c.Text()).
				Msg("Received message")
			return next(c)
		}
	}
}

// RecoveryMiddleware turns a handler panic into a logged error and a
// generic reply.
func RecoveryMiddleware() Middleware {
	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(c handler.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error().
						Interface("panic", r).
						Str("text", c.Text()).
						Msg("Recovered from panic in handler")
					err = c.Reply("❌ Ralat dalaman berlaku, sila cuba lagi.")
				}
			}()
			return next(c)
		}
	}
}

// chain applies middleware so the first one listed runs outermost.
func chain(fn handler.HandlerFunc, mws ...Middleware) handler.HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		fn = mws[i](fn)
	}
	return fn
}
