// internal/telegram/client.go
//
// Telegram transport for the bot.
// Responsibilities:
//   - Long-poll updates and hand private-chat text messages to a handler,
//     one at a time, until the context is cancelled.
//   - Send text and PNG photos (implements bot.Sender).
//   - Publish the command menu.

package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman-bot/internal/bot"
	"github.com/robalobadob/hangman-bot/internal/game"
)

// Handler consumes inbound updates.
type Handler interface {
	Handle(ctx context.Context, u bot.Update)
}

// api is the subset of *tgbotapi.BotAPI the client uses.
type api interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Client wraps the Telegram Bot API.
type Client struct {
	api     api
	timeout time.Duration
}

// New authenticates with token. timeout is the long-poll duration.
func New(token string, timeout time.Duration) (*Client, error) {
	a, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: connect: %w", err)
	}
	log.Info().Str("bot", a.Self.UserName).Msg("telegram authorized")
	return &Client{api: a, timeout: timeout}, nil
}

// SendText implements bot.Sender.
func (c *Client) SendText(_ context.Context, to game.UserID, text string) error {
	if _, err := c.api.Send(tgbotapi.NewMessage(int64(to), text)); err != nil {
		return fmt.Errorf("telegram: send message: %w", err)
	}
	return nil
}

// SendImage implements bot.Sender.
func (c *Client) SendImage(_ context.Context, to game.UserID, png []byte, caption string) error {
	photo := tgbotapi.NewPhoto(int64(to), tgbotapi.FileBytes{Name: "gallows.png", Bytes: png})
	photo.Caption = caption
	if _, err := c.api.Send(photo); err != nil {
		return fmt.Errorf("telegram: send photo: %w", err)
	}
	return nil
}

// SetCommands publishes the command menu.
func (c *Client) SetCommands(defs []bot.Definition) error {
	cmds := make([]tgbotapi.BotCommand, 0, len(defs))
	for _, d := range defs {
		cmds = append(cmds, tgbotapi.BotCommand{Command: d.Name, Description: d.Description})
	}
	if _, err := c.api.Request(tgbotapi.NewSetMyCommands(cmds...)); err != nil {
		return fmt.Errorf("telegram: set commands: %w", err)
	}
	return nil
}

// Run delivers updates to h until ctx is done.
func (c *Client) Run(ctx context.Context, h Handler) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = int(c.timeout / time.Second)
	updates := c.api.GetUpdatesChan(cfg)
	defer c.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			if u, ok := convert(upd); ok {
				h.Handle(ctx, u)
			}
		}
	}
}

// convert keeps text messages from private chats only.
func convert(upd tgbotapi.Update) (bot.Update, bool) {
	m := upd.Message
	if m == nil || m.From == nil || m.Chat == nil || !m.Chat.IsPrivate() || m.Text == "" {
		return bot.Update{}, false
	}
	return bot.Update{
		UserID: game.UserID(m.From.ID),
		Name:   fullName(m.From),
		Text:   m.Text,
	}, true
}

func fullName(u *tgbotapi.User) string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		name = u.UserName
	}
	return name
}
