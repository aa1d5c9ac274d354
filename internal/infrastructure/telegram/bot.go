package telegram

import (
	"fmt"
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"playground-bot/internal/domain/command"
)

// MaxMessageLength is the Telegram limit for one text message, in UTF-16 code units
const MaxMessageLength = 4096

// Bot wraps the Telegram bot API
type Bot struct {
	api         *tgbotapi.BotAPI
	pollTimeout int
	logger      *zap.Logger
}

// NewBot creates a new Telegram bot. Receive errors inside the long poll are
// logged through logger.
func NewBot(token string, debug bool, pollTimeout int, logger *zap.Logger) (*Bot, error) {
	if err := tgbotapi.SetLogger(zap.NewStdLog(logger.Named("telegram"))); err != nil {
		return nil, fmt.Errorf("failed to set bot logger: %w", err)
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	api.Debug = debug
	logger.Info("Authorized on account", zap.String("username", api.Self.UserName))

	return &Bot{api: api, pollTimeout: pollTimeout, logger: logger}, nil
}

// GetUpdatesChan returns a channel for receiving updates
func (b *Bot) GetUpdatesChan() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout
	return b.api.GetUpdatesChan(u)
}

// StopReceivingUpdates stops the long poll and closes the updates channel
func (b *Bot) StopReceivingUpdates() {
	b.api.StopReceivingUpdates()
}

// SendMessage sends a text message, split into several messages when it is
// longer than Telegram allows
func (b *Bot) SendMessage(chatID int64, text string) error {
	for _, part := range SplitMessage(text, MaxMessageLength) {
		msg := tgbotapi.NewMessage(chatID, part)
		if _, err := b.api.Send(msg); err != nil {
			return fmt.Errorf("failed to send message: %w", err)
		}
	}
	return nil
}

// SetupCommands configures the bot commands with BotFather
func (b *Bot) SetupCommands() error {
	var commands []tgbotapi.BotCommand
	for _, d := range command.Descriptions() {
		commands = append(commands, tgbotapi.BotCommand{
			Command:     d.Name,
			Description: d.Text,
		})
	}

	setCommands := tgbotapi.NewSetMyCommands(commands...)
	_, err := b.api.Request(setCommands)
	if err != nil {
		return fmt.Errorf("failed to set bot commands: %w", err)
	}

	b.logger.Info("Bot commands configured successfully", zap.Int("commands", len(commands)))
	return nil
}

// SplitMessage cuts text into parts of at most limit UTF-16 code units, the
// unit Telegram measures message length in, preferring to cut after a
// newline. Empty text yields one empty part.
func SplitMessage(text string, limit int) []string {
	if utf16Len(text) <= limit {
		return []string{text}
	}

	var parts []string
	runes := []rune(text)
	for len(runes) > 0 {
		units, cut, newline := 0, 0, 0
		for cut < len(runes) {
			n := utf16.RuneLen(runes[cut])
			if units+n > limit {
				break
			}
			units += n
			cut++
			if runes[cut-1] == '\n' && units > limit/2 {
				newline = cut
			}
		}
		if cut == len(runes) {
			parts = append(parts, string(runes))
			break
		}
		if newline > 0 {
			cut = newline
		}
		if cut == 0 {
			cut = 1
		}
		parts = append(parts, string(runes[:cut]))
		runes = runes[cut:]
	}
	return parts
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
