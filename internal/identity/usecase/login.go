package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/esign/internal/pkg/goerror"
	"github.com/shandysiswandi/esign/internal/pkg/jwt"
)

var errBadCredential = goerror.NewBusiness("invalid email or password", goerror.CodeUnauthorized)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
}

func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	account, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "account not found", "email", in.Email)
		return nil, errBadCredential
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if account.PasswordHash == "" || !s.bcrypt.Verify(account.PasswordHash, in.Password) {
		slog.WarnContext(ctx, "account password not match", "user_id", account.ID)
		return nil, errBadCredential
	}

	token, err := s.jwt.Generate(jwt.Subject{UserID: account.ID, Email: account.Email, Role: account.Role.String()})
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access token", "user_id", account.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{
		AccessToken: token.Value,
		TokenType:   "Bearer",
		ExpiresIn:   int64(token.ExpiresAt.Sub(token.IssuedAt).Seconds()),
	}, nil
}
