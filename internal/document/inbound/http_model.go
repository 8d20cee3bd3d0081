package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/esign/internal/document/entity"
)

type DocumentResponse struct {
	ID         int64     `json:"id,string"`
	CompanyID  int64     `json:"company_id,string"`
	FileName   string    `json:"file_name"`
	FilePath   string    `json:"file_path"`
	HashSHA256 string    `json:"hash_sha256"`
	StatusID   int32     `json:"status_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toDocumentResponse(d entity.Document) DocumentResponse {
	return DocumentResponse{
		ID:         d.ID,
		CompanyID:  d.CompanyID,
		FileName:   d.FileName,
		FilePath:   d.FilePath,
		HashSHA256: d.HashSHA256,
		StatusID:   d.StatusID,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type RegisterDocumentResponse struct {
	Document      DocumentResponse `json:"document"`
	SignerID      int64            `json:"signer_id,string"`
	SignerCreated bool             `json:"signer_created"`
	replayed      bool
}

func (r RegisterDocumentResponse) StatusCode() int {
	if r.replayed {
		return http.StatusOK
	}
	return http.StatusCreated
}

func (r RegisterDocumentResponse) Message() string {
	if r.replayed {
		return "document already registered"
	}
	return "document registered"
}

type ListDocumentResponse struct {
	Documents []DocumentResponse `json:"documents"`
	limit     int32
	offset    int32
	total     int64
}

func (r ListDocumentResponse) Meta() map[string]any {
	return map[string]any{"limit": r.limit, "offset": r.offset, "total": r.total}
}

type UpdateDocumentRequest struct {
	FileName *string `json:"file_name"`
	StatusID *int32  `json:"status_id"`
}

type DeleteDocumentResponse struct{}

func (DeleteDocumentResponse) StatusCode() int { return http.StatusNoContent }

type FaceVerifyRequest struct {
	LiveImageBase64 string `json:"live_image_base64"`
}

type FaceVerifyResponse struct {
	Match bool `json:"match"`
}
