package inbound

import (
	"strconv"

	"github.com/samber/lo"
	"github.com/shandysiswandi/esign/internal/document/entity"
	"github.com/shandysiswandi/esign/internal/document/usecase"
	"github.com/shandysiswandi/esign/internal/pkg/goerror"
	"github.com/shandysiswandi/esign/internal/pkg/router"
	"github.com/shandysiswandi/esign/internal/shared/constant"
)

type HTTPEndpoint struct {
	uc             uc
	maxUploadBytes int64
}

func toUpload(f *router.File) *usecase.UploadFile {
	if f == nil {
		return nil
	}
	return &usecase.UploadFile{Name: f.Name, ContentType: f.ContentType, Data: f.Data}
}

// RegisterDocument uploads a document with its signer.
// @Summary Register document
// @Description Stores the document and signer photo, then records the document and signer atomically.
// @Tags Document
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Replays the first result for a repeated key"
// @Param document_file formData file true "Document"
// @Param signer_photo_id_file formData file false "Signer photo id"
// @Param company_id formData string true "Company id"
// @Param status_id formData int false "Status id, default 1"
// @Param signer_full_name formData string false "Required for a new signer"
// @Param signer_phone_number formData string false "Required for a new signer"
// @Param signer_email formData string false "Required for a new signer"
// @Param signer_national_id formData string true "Signer national id"
// @Success 201 {object} router.successResponse{data=RegisterDocumentResponse}
// @Failure 400 {object} router.errorResponse "Invalid multipart body"
// @Failure 409 {object} router.errorResponse "Idempotency key in progress"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/documents [post]
func (h *HTTPEndpoint) RegisterDocument(r *router.Request) (any, error) {
	if err := r.ParseMultipart(h.maxUploadBytes); err != nil {
		return nil, err
	}

	companyID, err := formInt(r, "company_id", 64)
	if err != nil {
		return nil, err
	}
	statusID, err := formInt(r, "status_id", 32)
	if err != nil {
		return nil, err
	}

	doc, err := r.FormFile("document_file")
	if err != nil {
		return nil, err
	}
	photo, err := r.FormFile("signer_photo_id_file")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.RegisterDocument(r.Context(), usecase.RegisterDocumentInput{
		IdempotencyKey:    r.Header.Get(constant.HeaderIdempotencyKey),
		CompanyID:         companyID,
		StatusID:          int32(statusID),
		Document:          toUpload(doc),
		SignerPhoto:       toUpload(photo),
		SignerFullName:    r.FormText("signer_full_name"),
		SignerPhoneNumber: r.FormText("signer_phone_number"),
		SignerEmail:       r.FormText("signer_email"),
		SignerNationalID:  r.FormText("signer_national_id"),
	})
	if err != nil {
		return nil, err
	}

	return RegisterDocumentResponse{
		Document:      toDocumentResponse(resp.Document),
		SignerID:      resp.SignerID,
		SignerCreated: resp.SignerCreated,
		replayed:      resp.Replayed,
	}, nil
}

// ListDocuments pages live documents.
// @Summary List documents
// @Tags Document
// @Produce json
// @Security BearerAuth
// @Param company_id query string false "Filter by company"
// @Param limit query int false "Page size, default 10, max 100"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} router.successResponse{data=ListDocumentResponse}
// @Router /api/v1/documents [get]
func (h *HTTPEndpoint) ListDocuments(r *router.Request) (any, error) {
	var companyID int64
	if q := r.GetQuery("company_id"); q != "" {
		v, err := strconv.ParseInt(q, 10, 64)
		if err != nil {
			return nil, goerror.NewInvalidFormat("company_id must be an integer")
		}
		companyID = v
	}
	limit, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}
	offset, err := r.GetQueryInt32("offset")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ListDocuments(r.Context(), usecase.ListDocumentInput{CompanyID: companyID, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}

	return ListDocumentResponse{
		Documents: lo.Map(resp.Documents, func(d entity.Document, _ int) DocumentResponse { return toDocumentResponse(d) }),
		limit:     resp.Limit,
		offset:    resp.Offset,
		total:     resp.Total,
	}, nil
}

// GetDocument returns one live document.
// @Summary Get document
// @Tags Document
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document id"
// @Success 200 {object} router.successResponse{data=DocumentResponse}
// @Failure 404 {object} router.errorResponse "Document not found"
// @Router /api/v1/documents/{id} [get]
func (h *HTTPEndpoint) GetDocument(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	doc, err := h.uc.GetDocument(r.Context(), usecase.GetDocumentInput{ID: id})
	if err != nil {
		return nil, err
	}

	return toDocumentResponse(*doc), nil
}

// UpdateDocument changes the file name and/or status.
// @Summary Update document
// @Tags Document
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document id"
// @Param request body UpdateDocumentRequest true "Fields to change"
// @Success 200 {object} router.successResponse{data=DocumentResponse}
// @Failure 404 {object} router.errorResponse "Document not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/documents/{id} [put]
func (h *HTTPEndpoint) UpdateDocument(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req UpdateDocumentRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	doc, err := h.uc.UpdateDocument(r.Context(), usecase.UpdateDocumentInput{ID: id, FileName: req.FileName, StatusID: req.StatusID})
	if err != nil {
		return nil, err
	}

	return toDocumentResponse(*doc), nil
}

// DeleteDocument soft deletes a document.
// @Summary Delete document
// @Tags Document
// @Security BearerAuth
// @Param id path string true "Document id"
// @Success 204
// @Failure 404 {object} router.errorResponse "Document not found"
// @Router /api/v1/documents/{id} [delete]
func (h *HTTPEndpoint) DeleteDocument(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.DeleteDocument(r.Context(), usecase.DeleteDocumentInput{ID: id}); err != nil {
		return nil, err
	}

	return DeleteDocumentResponse{}, nil
}

// FaceVerify compares a live capture with the signer reference photo.
// @Summary Verify signer face
// @Tags Signer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param national_id path string true "Signer national id"
// @Param request body FaceVerifyRequest true "Live capture"
// @Success 200 {object} router.successResponse{data=FaceVerifyResponse}
// @Failure 404 {object} router.errorResponse "Signer not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/signers/{national_id}/face-verify [post]
func (h *HTTPEndpoint) FaceVerify(r *router.Request) (any, error) {
	var req FaceVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.FaceVerify(r.Context(), usecase.FaceVerifyInput{
		NationalID:      r.GetParam("national_id"),
		LiveImageBase64: req.LiveImageBase64,
	})
	if err != nil {
		return nil, err
	}

	return FaceVerifyResponse{Match: resp.Match}, nil
}

// formInt parses an optional integer form field; blank is zero.
func formInt(r *router.Request, key string, bits int) (int64, error) {
	v := r.FormText(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, bits)
	if err != nil {
		return 0, goerror.NewInvalidFormat(key + " must be an integer")
	}
	return n, nil
}
