package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/MuizKmz/discord-bot-app/internal/handler"
)

// messenger is the slice of *discordgo.Session a message context needs.
type messenger interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendReply(channelID string, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// messageContext adapts a discordgo message to handler.Context.
type messageContext struct {
	ctx  context.Context
	s    messenger
	m    *discordgo.Message
	args []string
}

var _ handler.Context = (*messageContext)(nil)

func newMessageContext(ctx context.Context, s messenger, m *discordgo.Message) *messageContext {
	_, args := ParseCommand(m.Content)
	return &messageContext{ctx: ctx, s: s, m: m, args: args}
}

func (c *messageContext) Ctx() context.Context { return c.ctx }

// Sender prefers the guild nickname, then the global display name.
func (c *messageContext) Sender() handler.User {
	u := handler.User{ID: c.m.Author.ID, Name: c.m.Author.Username}
	switch {
	case c.m.Member != nil && c.m.Member.Nick != "":
		u.Name = c.m.Member.Nick
	case c.m.Author.GlobalName != "":
		u.Name = c.m.Author.GlobalName
	}
	return u
}

func (c *messageContext) ChannelID() string { return c.m.ChannelID }
func (c *messageContext) GuildID() string   { return c.m.GuildID }
func (c *messageContext) Text() string      { return c.m.Content }
func (c *messageContext) Args() []string    { return c.args }

func (c *messageContext) Reply(text string) error {
	_, err := c.s.ChannelMessageSendReply(c.m.ChannelID, text, c.m.Reference())
	return err
}

func (c *messageContext) Send(text string) error {
	_, err := c.s.ChannelMessageSend(c.m.ChannelID, text)
	return err
}
