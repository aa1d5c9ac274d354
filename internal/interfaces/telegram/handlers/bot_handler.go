package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"playground-bot/internal/interfaces/telegram"
)

// UpdateSource is the long-poll side of the bot
type UpdateSource interface {
	GetUpdatesChan() tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// BotHandler handles Telegram bot interactions
type BotHandler struct {
	source     UpdateSource
	dispatcher telegram.Dispatcher
	logger     *zap.Logger
}

// NewBotHandler creates a new bot handler
func NewBotHandler(source UpdateSource, dispatcher telegram.Dispatcher, logger *zap.Logger) *BotHandler {
	return &BotHandler{
		source:     source,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Start consumes updates one at a time, in arrival order, until ctx is
// cancelled or the updates channel is closed
func (h *BotHandler) Start(ctx context.Context) error {
	updates := h.source.GetUpdatesChan()
	defer h.source.StopReceivingUpdates()

	h.logger.Info("Bot started. Waiting for updates...")

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("Bot stopping...")
			return nil
		case update, ok := <-updates:
			if !ok {
				h.logger.Info("Updates channel closed")
				return nil
			}
			// an in-flight playground call finishes even during shutdown
			h.handleUpdate(context.WithoutCancel(ctx), update)
		}
	}
}

// handleUpdate processes one update; failures are logged and never stop the loop
func (h *BotHandler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if err := h.dispatcher.Dispatch(ctx, update); err != nil {
		h.logger.Error("Send message error", zap.Error(err), zap.Int("update_id", update.UpdateID))
	}
}
