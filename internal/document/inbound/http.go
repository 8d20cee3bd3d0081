package inbound

import (
	"context"

	"github.com/shandysiswandi/esign/internal/document/entity"
	"github.com/shandysiswandi/esign/internal/document/usecase"
	"github.com/shandysiswandi/esign/internal/pkg/router"
)

type uc interface {
	RegisterDocument(ctx context.Context, in usecase.RegisterDocumentInput) (*usecase.RegisterDocumentOutput, error)
	GetDocument(ctx context.Context, in usecase.GetDocumentInput) (*entity.Document, error)
	ListDocuments(ctx context.Context, in usecase.ListDocumentInput) (*usecase.ListDocumentOutput, error)
	UpdateDocument(ctx context.Context, in usecase.UpdateDocumentInput) (*entity.Document, error)
	DeleteDocument(ctx context.Context, in usecase.DeleteDocumentInput) error

	FaceVerify(ctx context.Context, in usecase.FaceVerifyInput) (*usecase.FaceVerifyOutput, error)
}

// RegisterHTTPEndpoint mounts the document routes; all of them need a
// bearer token.
func RegisterHTTPEndpoint(r *router.Router, uc uc, maxUploadBytes int64) {
	end := &HTTPEndpoint{uc: uc, maxUploadBytes: maxUploadBytes}

	r.POST("/api/v1/documents", end.RegisterDocument)
	r.GET("/api/v1/documents", end.ListDocuments)
	r.GET("/api/v1/documents/:id", end.GetDocument)
	r.PUT("/api/v1/documents/:id", end.UpdateDocument)
	r.DELETE("/api/v1/documents/:id", end.DeleteDocument)

	r.POST("/api/v1/signers/:national_id/face-verify", end.FaceVerify)
}
