package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/esign/internal/pkg/goerror"
	"github.com/shandysiswandi/esign/internal/pkg/jwt"
)

var (
	errLinkUnknown     = goerror.NewBusiness("invalid or already confirmed link", goerror.CodeUnauthorized)
	errAccountNotFound = goerror.NewBusiness("account not found", goerror.CodeNotFound)
)

type ConfirmLinkInput struct {
	Token  string `validate:"required"`
	ChatID int64  `validate:"required"`
}

type ConfirmLinkOutput struct {
	SessionToken string
	OTPCode      string
	OTPExpiresAt time.Time
}

// ConfirmLink binds the chat to the link and hands back a session token and
// a fresh OTP for the linked account. Each step runs only if the previous one
// succeeded.
func (s *Usecase) ConfirmLink(ctx context.Context, in ConfirmLinkInput) (*ConfirmLinkOutput, error) {
	ctx, span := s.startSpan(ctx, "ConfirmLink")
	defer span.End()

	in.Token = strings.TrimSpace(in.Token)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	tokenDigest, err := s.digest(in.Token)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash link token", "error", err)
		return nil, goerror.NewServer(err)
	}

	link, err := s.repoDB.GetPendingLink(ctx, tokenDigest)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "link token unknown or already confirmed")
		return nil, errLinkUnknown
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get pending link", "error", err)
		return nil, goerror.NewServer(err)
	}

	confirmedAt := s.clock.Now()
	err = s.repoDB.ConfirmLink(ctx, link.ID, in.ChatID, confirmedAt)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "link confirmed by a concurrent request", "link_id", link.ID)
		return nil, errLinkUnknown
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo confirm link", "link_id", link.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	account, err := s.repoDB.GetAccountByEmail(ctx, link.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "linked account not found", "link_id", link.ID, "email", link.Email)
		return nil, errAccountNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", link.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	token, err := s.jwt.Generate(jwt.Subject{UserID: account.ID, Email: account.Email, Role: account.Role.String()})
	if err == nil && token.Value == "" {
		err = jwt.ErrInvalidToken
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate session token", "user_id", account.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	otp, err := s.issueOTP(ctx, account.Email)
	if err != nil {
		return nil, err
	}

	s.publishLinkConfirmed(ctx, LinkConfirmedEvent{
		LinkID:      link.ID,
		UserID:      account.ID,
		Email:       account.Email,
		ChatID:      in.ChatID,
		ConfirmedAt: confirmedAt,
	})

	return &ConfirmLinkOutput{
		SessionToken: token.Value,
		OTPCode:      otp.Code,
		OTPExpiresAt: otp.ExpiresAt,
	}, nil
}

func (s *Usecase) publishLinkConfirmed(ctx context.Context, ev LinkConfirmedEvent) {
	ctx = context.WithoutCancel(ctx)
	publish := func(ctx context.Context) error {
		if err := s.repoMessaging.PublishLinkConfirmed(ctx, ev); err != nil {
			slog.ErrorContext(ctx, "failed to publish link confirmed", "link_id", ev.LinkID, "error", err)
		}
		return nil
	}

	if s.goroutine == nil {
		_ = publish(ctx)
		return
	}
	if err := s.goroutine.Go(ctx, publish); err != nil {
		_ = publish(ctx)
	}
}
