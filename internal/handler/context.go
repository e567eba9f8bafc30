// Package handler provides chat command handlers for both games.
//
// Handlers depend only on the Context interface; the bot package adapts a
// discordgo message to it.
package handler

import (
	"context"

	"github.com/rs/zerolog/log"
)

// MaxMessageLength keeps replies under Discord's 2000 character limit.
const MaxMessageLength = 1900

// User identifies the author of a message.
type User struct {
	ID   string
	Name string
}

// Context is the per-message view a handler works with.
type Context interface {
	// Ctx returns the request context.
	Ctx() context.Context
	Sender() User
	ChannelID() string
	GuildID() string
	// Text is the full message content.
	Text() string
	// Args are the whitespace-separated words after the command.
	Args() []string
	// Reply answers the message directly.
	Reply(text string) error
	// Send posts to the message's channel. Safe to call after the handler
	// has returned.
	Send(text string) error
}

// HandlerFunc handles one command.
type HandlerFunc func(c Context) error

// sendLong posts text, splitting it on line boundaries when needed.
func sendLong(c Context, text string) error {
	for _, chunk := range SplitMessage(text, MaxMessageLength) {
		if err := c.Send(chunk); err != nil {
			return err
		}
	}
	return nil
}

// sendLater is used from scheduled callbacks, where nobody is left to
// receive an error.
func sendLater(c Context, text string) {
	if err := sendLong(c, text); err != nil {
		log.Error().Err(err).Str("channel_id", c.ChannelID()).Msg("Failed to send scheduled message")
	}
}
