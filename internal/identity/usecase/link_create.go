package usecase

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/shandysiswandi/esign/internal/identity/entity"
	"github.com/shandysiswandi/esign/internal/pkg/goerror"
)

type CreateLinkInput struct {
	Email string `validate:"required,email"`
}

type CreateLinkOutput struct {
	Token string
	Link  string
}

// CreateLink records a pending link for email. The account is resolved at
// confirmation, not here.
func (s *Usecase) CreateLink(ctx context.Context, in CreateLinkInput) (*CreateLinkOutput, error) {
	ctx, span := s.startSpan(ctx, "CreateLink")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	token := s.token.Generate()
	tokenDigest, err := s.digest(token)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash link token", "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.CreateLink(ctx, entity.Link{
		ID:          s.uid.Generate(),
		Email:       in.Email,
		TokenDigest: tokenDigest,
		CreatedAt:   s.clock.Now(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo create link", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CreateLinkOutput{
		Token: token,
		Link:  s.linkBase + "?start=" + url.QueryEscape(token),
	}, nil
}
