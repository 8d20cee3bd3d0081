package inbound

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shandysiswandi/esign/internal/identity/usecase"
	"github.com/shandysiswandi/esign/internal/pkg/goerror"
	"github.com/shandysiswandi/esign/internal/pkg/goroutine"
	"github.com/shandysiswandi/esign/internal/pkg/instrument"
	"github.com/shandysiswandi/esign/internal/pkg/uid"
)

const (
	telegramUsage  = "Open the link you received to connect this chat: it starts with /start <token>."
	telegramFailed = "Something went wrong, please try again later."
)

type botAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type linkConfirmer interface {
	ConfirmLink(ctx context.Context, in usecase.ConfirmLinkInput) (*usecase.ConfirmLinkOutput, error)
}

// TelegramHandler answers bot commands. /start <token> confirms a link and
// sends the fresh OTP back to the chat.
type TelegramHandler struct {
	bot  botAPI
	uc   linkConfirmer
	uuid uid.StringID
}

// RegisterTelegramBot runs the long polling loop on the goroutine manager
// until ctx is done.
func RegisterTelegramBot(ctx context.Context, routine *goroutine.Manager, bot botAPI, pollTimeout int, uuid uid.StringID, uc linkConfirmer) error {
	h := &TelegramHandler{bot: bot, uc: uc, uuid: uuid}

	return routine.Go(ctx, func(ctx context.Context) error {
		h.Run(ctx, pollTimeout)
		return nil
	})
}

// Run consumes updates until ctx is done or the channel closes.
func (h *TelegramHandler) Run(ctx context.Context, pollTimeout int) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeout

	updates := h.bot.GetUpdatesChan(cfg)
	slog.InfoContext(ctx, "telegram bot polling started")

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			slog.InfoContext(ctx, "telegram bot polling stopped")
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			h.Handle(ctx, upd)
		}
	}
}

func (h *TelegramHandler) Handle(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil || msg.Chat == nil || !msg.IsCommand() {
		return
	}

	if h.uuid != nil {
		ctx = instrument.SetCorrelationID(ctx, h.uuid.Generate())
	}

	chatID := msg.Chat.ID
	token := strings.TrimSpace(msg.CommandArguments())
	if msg.Command() != "start" || token == "" {
		h.reply(ctx, chatID, telegramUsage)
		return
	}

	resp, err := h.uc.ConfirmLink(ctx, usecase.ConfirmLinkInput{Token: token, ChatID: chatID})
	if err != nil {
		h.reply(ctx, chatID, replyForError(err))
		return
	}

	h.reply(ctx, chatID, "Your verification code is "+resp.OTPCode+
		". It expires at "+resp.OTPExpiresAt.UTC().Format("15:04 MST")+".")
}

func (h *TelegramHandler) reply(ctx context.Context, chatID int64, text string) {
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		slog.ErrorContext(ctx, "failed to send telegram message", "chat_id", chatID, "error", err)
	}
}

func replyForError(err error) string {
	var gerr *goerror.Error
	if errors.As(err, &gerr) && gerr.Type() == goerror.TypeBusiness {
		return gerr.Msg()
	}
	return telegramFailed
}
