package discord

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Client posts summaries to a Discord channel over a bot session held open
// for the process lifetime.
type Client struct {
	log     *slog.Logger
	session *discordgo.Session
}

func New(log *slog.Logger, botToken string) (*Client, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages
	if err := session.Open(); err != nil {
		return nil, err
	}
	log.Info("discord session opened")
	return &Client{log: log, session: session}, nil
}

func (c *Client) PostMessage(ctx context.Context, channelID, text string) error {
	_, err := c.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
	return err
}

func (c *Client) Close() error {
	return c.session.Close()
}
