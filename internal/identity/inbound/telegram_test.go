package inbound

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shandysiswandi/esign/internal/identity/usecase"
	"github.com/shandysiswandi/esign/internal/pkg/goerror"
	"github.com/shandysiswandi/esign/internal/pkg/goroutine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBot struct {
	mu      sync.Mutex
	updates chan tgbotapi.Update
	sent    []tgbotapi.MessageConfig
	stopped bool
}

func newFakeBot() *fakeBot {
	return &fakeBot{updates: make(chan tgbotapi.Update, 4)}
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

func (b *fakeBot) StopReceivingUpdates() {
	b.mu.Lock()
	b.stopped = true
	b.mu.Unlock()
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		b.sent = append(b.sent, m)
	}
	return tgbotapi.Message{}, nil
}

func (b *fakeBot) messages() []tgbotapi.MessageConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]tgbotapi.MessageConfig(nil), b.sent...)
}

type fakeConfirmer struct {
	got  usecase.ConfirmLinkInput
	out  *usecase.ConfirmLinkOutput
	err  error
	hits int
}

func (f *fakeConfirmer) ConfirmLink(_ context.Context, in usecase.ConfirmLinkInput) (*usecase.ConfirmLinkOutput, error) {
	f.hits++
	f.got = in
	return f.out, f.err
}

func command(chatID int64, text string) tgbotapi.Update {
	length := len(text)
	for i, r := range text {
		if r == ' ' {
			length = i
			break
		}
	}
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: chatID},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}},
	}}
}

func TestTelegramHandle(t *testing.T) {
	ctx := context.Background()
	expiresAt := time.Date(2026, 3, 1, 10, 5, 0, 0, time.UTC)

	t.Run("StartConfirmsAndRepliesWithCode", func(t *testing.T) {
		// Arrange
		bot := newFakeBot()
		uc := &fakeConfirmer{out: &usecase.ConfirmLinkOutput{SessionToken: "jwt", OTPCode: "123456", OTPExpiresAt: expiresAt}}
		h := &TelegramHandler{bot: bot, uc: uc}

		// Act
		h.Handle(ctx, command(77, "/start tok-1"))

		// Assert
		assert.Equal(t, usecase.ConfirmLinkInput{Token: "tok-1", ChatID: 77}, uc.got)
		msgs := bot.messages()
		require.Len(t, msgs, 1)
		assert.Equal(t, int64(77), msgs[0].ChatID)
		assert.Equal(t, "Your verification code is 123456. It expires at 10:05 UTC.", msgs[0].Text)
	})

	t.Run("BusinessErrorIsShown", func(t *testing.T) {
		bot := newFakeBot()
		uc := &fakeConfirmer{err: goerror.NewBusiness("invalid or already confirmed link", goerror.CodeUnauthorized)}
		h := &TelegramHandler{bot: bot, uc: uc}

		h.Handle(ctx, command(5, "/start stale"))

		msgs := bot.messages()
		require.Len(t, msgs, 1)
		assert.Equal(t, "invalid or already confirmed link", msgs[0].Text)
	})

	t.Run("ServerErrorIsHidden", func(t *testing.T) {
		bot := newFakeBot()
		uc := &fakeConfirmer{err: goerror.NewServer(errors.New("db down"))}
		h := &TelegramHandler{bot: bot, uc: uc}

		h.Handle(ctx, command(5, "/start tok"))

		msgs := bot.messages()
		require.Len(t, msgs, 1)
		assert.Equal(t, telegramFailed, msgs[0].Text)
	})

	t.Run("MissingTokenGetsUsage", func(t *testing.T) {
		bot := newFakeBot()
		uc := &fakeConfirmer{}
		h := &TelegramHandler{bot: bot, uc: uc}

		h.Handle(ctx, command(5, "/start"))
		h.Handle(ctx, command(5, "/help"))

		assert.Zero(t, uc.hits)
		msgs := bot.messages()
		require.Len(t, msgs, 2)
		assert.Equal(t, telegramUsage, msgs[0].Text)
		assert.Equal(t, telegramUsage, msgs[1].Text)
	})

	t.Run("PlainTextIgnored", func(t *testing.T) {
		bot := newFakeBot()
		uc := &fakeConfirmer{}
		h := &TelegramHandler{bot: bot, uc: uc}

		h.Handle(ctx, tgbotapi.Update{Message: &tgbotapi.Message{Text: "hello", Chat: &tgbotapi.Chat{ID: 5}}})
		h.Handle(ctx, tgbotapi.Update{})

		assert.Zero(t, uc.hits)
		assert.Empty(t, bot.messages())
	})
}

func TestRegisterTelegramBot(t *testing.T) {
	// Arrange
	bot := newFakeBot()
	uc := &fakeConfirmer{out: &usecase.ConfirmLinkOutput{OTPCode: "654321", OTPExpiresAt: time.Now()}}
	routine := goroutine.NewManager(2)
	ctx, cancel := context.WithCancel(context.Background())

	// Act
	require.NoError(t, RegisterTelegramBot(ctx, routine, bot, 1, nil, uc))
	bot.updates <- command(9, "/start abc")
	require.Eventually(t, func() bool { return len(bot.messages()) == 1 }, time.Second, 10*time.Millisecond)
	cancel()

	// Assert
	require.NoError(t, routine.Wait())
	bot.mu.Lock()
	assert.True(t, bot.stopped)
	bot.mu.Unlock()
}
