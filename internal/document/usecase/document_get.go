package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/esign/internal/document/entity"
	"github.com/shandysiswandi/esign/internal/pkg/goerror"
	"github.com/shandysiswandi/esign/internal/shared/constant"
)

var errDocumentNotFound = goerror.NewBusiness("document not found", goerror.CodeNotFound)

type GetDocumentInput struct {
	ID int64 `validate:"required,gt=0"`
}

func (s *Usecase) GetDocument(ctx context.Context, in GetDocumentInput) (*entity.Document, error) {
	ctx, span := s.startSpan(ctx, "GetDocument")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.authenticatedAndAuthorized(ctx, constant.ObjectDocument, constant.ActionRead); err != nil {
		return nil, err
	}

	doc, err := s.repoDB.GetDocument(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "document not found", "document_id", in.ID)
		return nil, errDocumentNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get document", "document_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return doc, nil
}
