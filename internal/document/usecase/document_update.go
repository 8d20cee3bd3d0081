package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/esign/internal/document/entity"
	"github.com/shandysiswandi/esign/internal/pkg/goerror"
	"github.com/shandysiswandi/esign/internal/shared/constant"
)

type UpdateDocumentInput struct {
	ID       int64   `validate:"required,gt=0"`
	FileName *string `validate:"omitempty,min=1,max=255"`
	StatusID *int32  `validate:"omitempty,gt=0"`
}

func (s *Usecase) UpdateDocument(ctx context.Context, in UpdateDocumentInput) (*entity.Document, error) {
	ctx, span := s.startSpan(ctx, "UpdateDocument")
	defer span.End()

	if in.FileName != nil {
		name := strings.TrimSpace(*in.FileName)
		in.FileName = &name
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}
	if in.FileName == nil && in.StatusID == nil {
		return nil, goerror.NewInvalidInput(nil, "file_name", "file_name or status_id is required")
	}

	if _, err := s.authenticatedAndAuthorized(ctx, constant.ObjectDocument, constant.ActionUpdate); err != nil {
		return nil, err
	}

	doc, err := s.repoDB.UpdateDocument(ctx, entity.DocumentPatch{
		ID:        in.ID,
		FileName:  in.FileName,
		StatusID:  in.StatusID,
		UpdatedAt: s.clock.Now(),
	})
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "document not found", "document_id", in.ID)
		return nil, errDocumentNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update document", "document_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return doc, nil
}
