package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/esign/internal/pkg/goerror"
	"github.com/shandysiswandi/esign/internal/shared/constant"
)

type DeleteDocumentInput struct {
	ID int64 `validate:"required,gt=0"`
}

// DeleteDocument soft deletes; a document already deleted is not found.
func (s *Usecase) DeleteDocument(ctx context.Context, in DeleteDocumentInput) error {
	ctx, span := s.startSpan(ctx, "DeleteDocument")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	clm, err := s.authenticatedAndAuthorized(ctx, constant.ObjectDocument, constant.ActionDelete)
	if err != nil {
		return err
	}

	err = s.repoDB.DeleteDocument(ctx, in.ID, s.clock.Now())
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "document not found", "document_id", in.ID)
		return errDocumentNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete document", "document_id", in.ID, "by_user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
