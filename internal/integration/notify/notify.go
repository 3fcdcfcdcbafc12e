// Package notify pushes messages to cleaners over Telegram.
package notify

import (
	"context"
	"fmt"
	"strconv"

	"azhaboost/pkg/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Notifier interface {
	// Notify sends an HTML formatted message to a chat id or @channel name.
	Notify(ctx context.Context, chatID, html string) error
}

// NewNotifier returns a no-op notifier when no bot token is configured.
func NewNotifier(cfg utils.TelegramConfig, log *zap.Logger) (Notifier, error) {
	if cfg.BotToken == "" {
		log.Warn("Telegram bot not configured, notifications disabled")
		return Noop{}, nil
	}
	return NewTelegramNotifier(cfg.BotToken, tgbotapi.APIEndpoint, log)
}

type TelegramNotifier struct {
	bot *tgbotapi.BotAPI
	log *zap.Logger
}

// NewTelegramNotifier connects to the bot API at endpoint (format "<base>/bot%s/%s").
func NewTelegramNotifier(token, endpoint string, log *zap.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	log = log.With(zap.String("integration", "telegram"))
	log.Info("Telegram bot authorized", zap.String("username", bot.Self.UserName))

	return &TelegramNotifier{bot: bot, log: log}, nil
}

func (n *TelegramNotifier) Notify(_ context.Context, chatID, html string) error {
	var msg tgbotapi.MessageConfig
	if id, err := strconv.ParseInt(chatID, 10, 64); err == nil {
		msg = tgbotapi.NewMessage(id, html)
	} else {
		msg = tgbotapi.NewMessageToChannel(chatID, html)
	}
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := n.bot.Send(msg); err != nil {
		n.log.Error("Failed to send Telegram message", zap.Error(err), zap.String("chat_id", chatID))
		return fmt.Errorf("send telegram message to %s: %w", chatID, err)
	}
	return nil
}

// Noop drops every message.
type Noop struct{}

func (Noop) Notify(context.Context, string, string) error { return nil }
