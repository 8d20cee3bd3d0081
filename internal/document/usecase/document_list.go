package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/esign/internal/document/entity"
	"github.com/shandysiswandi/esign/internal/pkg/goerror"
	"github.com/shandysiswandi/esign/internal/shared/constant"
)

const (
	defaultListLimit int32 = 10
	maxListLimit     int32 = 100
)

type ListDocumentInput struct {
	CompanyID int64 `validate:"gte=0"`
	Limit     int32
	Offset    int32
}

type ListDocumentOutput struct {
	Limit     int32
	Offset    int32
	Total     int64
	Documents []entity.Document
}

func (s *Usecase) ListDocuments(ctx context.Context, in ListDocumentInput) (*ListDocumentOutput, error) {
	ctx, span := s.startSpan(ctx, "ListDocuments")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.authenticatedAndAuthorized(ctx, constant.ObjectDocument, constant.ActionRead); err != nil {
		return nil, err
	}

	if in.Limit <= 0 || in.Limit > maxListLimit {
		in.Limit = defaultListLimit
	}
	in.Offset = max(in.Offset, 0)

	docs, total, err := s.repoDB.ListDocuments(ctx, entity.DocumentFilter{
		CompanyID: in.CompanyID,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list documents", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListDocumentOutput{
		Limit:     in.Limit,
		Offset:    in.Offset,
		Total:     total,
		Documents: docs,
	}, nil
}
