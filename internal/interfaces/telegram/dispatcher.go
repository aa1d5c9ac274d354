package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"playground-bot/internal/application/usecases"
	"playground-bot/internal/domain/user"
)

// CommandHandler produces the reply to one text message
type CommandHandler interface {
	Handle(ctx context.Context, userID user.TelegramID, text string) (string, error)
}

// Sender delivers a text reply to a chat
type Sender interface {
	SendMessage(chatID int64, text string) error
}

// Dispatcher handles routing of Telegram updates to the command handler
type Dispatcher interface {
	// Dispatch answers a single update. The returned error is a delivery
	// failure; command failures are answered with an apology instead.
	Dispatch(ctx context.Context, update tgbotapi.Update) error
}

// NewDispatcher creates a new dispatcher instance
func NewDispatcher(handler CommandHandler, sender Sender, logger *zap.Logger) Dispatcher {
	return &defaultDispatcher{
		handler: handler,
		sender:  sender,
		logger:  logger,
	}
}

type defaultDispatcher struct {
	handler CommandHandler
	sender  Sender
	logger  *zap.Logger
}

func (d *defaultDispatcher) Dispatch(ctx context.Context, update tgbotapi.Update) error {
	message := update.Message
	if message == nil || message.From == nil || message.Chat == nil || message.Text == "" {
		return nil
	}

	userID := user.TelegramID(message.From.ID)
	reply, err := d.handler.Handle(ctx, userID, message.Text)
	if err != nil {
		d.logger.Error("Create response error",
			zap.Error(err), zap.Stringer("user", userID), zap.Int("update_id", update.UpdateID))
		reply = usecases.ExecutionFailedText
	}

	if err := d.sender.SendMessage(message.Chat.ID, reply); err != nil {
		return fmt.Errorf("failed to reply to chat %d: %w", message.Chat.ID, err)
	}
	return nil
}
