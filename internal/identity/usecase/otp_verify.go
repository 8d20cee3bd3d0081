package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/esign/internal/identity/entity"
	"github.com/shandysiswandi/esign/internal/pkg/goerror"
)

var (
	errInvalidCode     = goerror.NewBusiness("invalid code", goerror.CodeUnauthorized)
	errCodeAlreadyUsed = goerror.NewBusiness("code already used", goerror.CodeConflict)
	errCodeExpired     = goerror.NewBusiness("code expired", goerror.CodeExpired)
)

type VerifyOTPInput struct {
	Email string `validate:"required,email"`
	Code  string `validate:"required"`
}

// VerifyOTP consumes the live code of an email. Checks run in a fixed
// order: missing, used, expired, mismatch.
func (s *Usecase) VerifyOTP(ctx context.Context, in VerifyOTPInput) error {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Code = strings.TrimSpace(in.Code)
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	otp, err := s.repoDB.GetOTP(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "otp not found", "email", in.Email)
		return errInvalidCode
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get otp", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	now := s.clock.Now()
	switch {
	case otp.Used:
		return errCodeAlreadyUsed
	case now.After(otp.ExpiresAt):
		return errCodeExpired
	case !s.hmac.Verify(otp.CodeDigest, in.Code):
		slog.WarnContext(ctx, "otp code mismatch", "email", in.Email)
		return errInvalidCode
	}

	err = s.repoDB.ConsumeOTP(ctx, in.Email, otp.CodeDigest, now)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, entity.ErrOTPAlreadyUsed):
		return errCodeAlreadyUsed
	case errors.Is(err, entity.ErrOTPExpired):
		return errCodeExpired
	case errors.Is(err, entity.ErrOTPMismatch), errors.Is(err, goerror.ErrNotFound):
		return errInvalidCode
	default:
		slog.ErrorContext(ctx, "failed to repo consume otp", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}
}
