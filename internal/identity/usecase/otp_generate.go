package usecase

import (
	"context"
	"crypto/rand"
	"log/slog"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shandysiswandi/esign/internal/identity/entity"
	"github.com/shandysiswandi/esign/internal/pkg/goerror"
)

type GenerateOTPInput struct {
	Email string `validate:"required,email"`
}

type GenerateOTPOutput struct {
	Code      string
	ExpiresAt time.Time
}

func (s *Usecase) GenerateOTP(ctx context.Context, in GenerateOTPInput) (*GenerateOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "GenerateOTP")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	return s.issueOTP(ctx, in.Email)
}

// issueOTP replaces the live code of email, which invalidates any earlier one.
func (s *Usecase) issueOTP(ctx context.Context, email string) (*GenerateOTPOutput, error) {
	code, err := s.randomCode()
	if err != nil {
		slog.ErrorContext(ctx, "failed to draw otp code", "error", err)
		return nil, goerror.NewServer(err)
	}

	codeDigest, err := s.digest(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "error", err)
		return nil, goerror.NewServer(err)
	}

	expiresAt := s.clock.Now().Add(s.otpTTL)
	if err := s.repoDB.UpsertOTP(ctx, entity.OTP{
		Email:      email,
		CodeDigest: codeDigest,
		ExpiresAt:  expiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert otp", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &GenerateOTPOutput{Code: code, ExpiresAt: expiresAt}, nil
}

func randomOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(entity.OTPMax-entity.OTPMin+1))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+entity.OTPMin, 10), nil
}
