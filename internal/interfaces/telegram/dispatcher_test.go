package telegram

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"playground-bot/internal/application/usecases"
	"playground-bot/internal/domain/user"
)

type sentMessage struct {
	chatID int64
	text   string
}

type fakeSender struct {
	sent []sentMessage
	err  error
}

func (f *fakeSender) SendMessage(chatID int64, text string) error {
	f.sent = append(f.sent, sentMessage{chatID, text})
	return f.err
}

type handlerFunc func(ctx context.Context, userID user.TelegramID, text string) (string, error)

func (f handlerFunc) Handle(ctx context.Context, userID user.TelegramID, text string) (string, error) {
	return f(ctx, userID, text)
}

func textUpdate(userID, chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: userID},
			Chat: &tgbotapi.Chat{ID: chatID},
			Text: text,
		},
	}
}

func TestDispatcher_RepliesToChat(t *testing.T) {
	sender := &fakeSender{}
	var gotUser user.TelegramID
	var gotText string
	handler := handlerFunc(func(ctx context.Context, userID user.TelegramID, text string) (string, error) {
		gotUser, gotText = userID, text
		return "pong", nil
	})

	err := NewDispatcher(handler, sender, zap.NewNop()).Dispatch(context.Background(), textUpdate(11, 22, "/ping"))
	require.NoError(t, err)

	assert.Equal(t, user.TelegramID(11), gotUser)
	assert.Equal(t, "/ping", gotText)
	assert.Equal(t, []sentMessage{{22, "pong"}}, sender.sent)
}

func TestDispatcher_HandlerErrorSendsApology(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sender := &fakeSender{}
	handler := handlerFunc(func(ctx context.Context, userID user.TelegramID, text string) (string, error) {
		return "", errors.New("playground down")
	})

	err := NewDispatcher(handler, sender, zap.New(core)).Dispatch(context.Background(), textUpdate(1, 2, "fn main() {}"))
	require.NoError(t, err)

	assert.Equal(t, []sentMessage{{2, usecases.ExecutionFailedText}}, sender.sent)
	assert.Equal(t, 1, logs.FilterMessage("Create response error").Len())
}

func TestDispatcher_SendErrorIsReturned(t *testing.T) {
	sender := &fakeSender{err: errors.New("chat not found")}
	handler := handlerFunc(func(ctx context.Context, userID user.TelegramID, text string) (string, error) {
		return "ok", nil
	})

	err := NewDispatcher(handler, sender, zap.NewNop()).Dispatch(context.Background(), textUpdate(1, 2, "/start"))
	assert.ErrorContains(t, err, "chat not found")
}

func TestDispatcher_IgnoresNonTextUpdates(t *testing.T) {
	sender := &fakeSender{}
	called := false
	handler := handlerFunc(func(ctx context.Context, userID user.TelegramID, text string) (string, error) {
		called = true
		return "", nil
	})
	d := NewDispatcher(handler, sender, zap.NewNop())

	updates := []tgbotapi.Update{
		{UpdateID: 1},
		{UpdateID: 2, Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}, Text: "no sender"}},
		textUpdate(1, 1, ""),
	}
	for _, u := range updates {
		require.NoError(t, d.Dispatch(context.Background(), u))
	}

	assert.False(t, called)
	assert.Empty(t, sender.sent)
}
