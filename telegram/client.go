// Copyright (c) 2025 BVK Chaitanya

// Package telegram sends run notifications to a configured chat.
package telegram

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
)

type Client struct {
	bot *bot.Bot

	secrets *Secrets

	self string
}

// New validates the token against the Telegram API and returns a notifier
// bound to the configured chat.
func New(ctx context.Context, secrets *Secrets) (*Client, error) {
	if err := secrets.Check(); err != nil {
		return nil, err
	}

	b, err := bot.New(secrets.BotToken, bot.WithSkipGetMe())
	if err != nil {
		return nil, err
	}
	self, err := b.GetMe(ctx)
	if err != nil {
		return nil, err
	}

	c := &Client{
		bot:     b,
		secrets: secrets.Clone(),
		self:    self.Username,
	}
	return c, nil
}

func (c *Client) Close() error {
	return nil
}

func (c *Client) BotUserName() string {
	return c.self
}

// SendMessage delivers one timestamped text message to the configured chat.
func (c *Client) SendMessage(ctx context.Context, at time.Time, text string) error {
	msg := at.Format("2006-01-02 15:04:05 MST") + " " + text
	slog.Info("sending notification", "at", at, "message", text)

	p := &bot.SendMessageParams{
		ChatID: c.secrets.ChatID,
		Text:   msg,
	}
	if _, err := c.bot.SendMessage(ctx, p); err != nil {
		return err
	}
	return nil
}
