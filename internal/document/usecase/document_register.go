package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/samber/lo"
	"github.com/shandysiswandi/esign/internal/document/entity"
	"github.com/shandysiswandi/esign/internal/pkg/goerror"
	"github.com/shandysiswandi/esign/internal/pkg/idempotency"
	"github.com/shandysiswandi/esign/internal/pkg/jwt"
	"github.com/shandysiswandi/esign/internal/shared/constant"
)

var errIdempotencyInProgress = goerror.NewBusiness("a request with this idempotency key is still in progress", goerror.CodeConflict)

type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type RegisterDocumentInput struct {
	IdempotencyKey string `validate:"omitempty,max=128"`
	CompanyID      int64  `validate:"required,gt=0"`
	StatusID       int32  `validate:"gte=0"`

	Document    *UploadFile `validate:"-"`
	SignerPhoto *UploadFile `validate:"-"`

	SignerFullName    string `validate:"omitempty,max=100"`
	SignerPhoneNumber string `validate:"omitempty,min=8,max=20"`
	SignerEmail       string `validate:"omitempty,email"`
	SignerNationalID  string `validate:"omitempty,max=50"`
}

type RegisterDocumentOutput struct {
	Document      entity.Document `json:"document"`
	SignerID      int64           `json:"signer_id"`
	SignerCreated bool            `json:"signer_created"`
	// Replayed is set when the result was recorded by an earlier request
	// with the same idempotency key.
	Replayed bool `json:"-"`
}

// RegisterDocument stores the uploaded files, then records the document and
// its signer in one transaction. With an idempotency key a repeated request
// gets the first result back instead of registering twice.
func (s *Usecase) RegisterDocument(ctx context.Context, in RegisterDocumentInput) (*RegisterDocumentOutput, error) {
	ctx, span := s.startSpan(ctx, "RegisterDocument")
	defer span.End()

	in.IdempotencyKey = strings.TrimSpace(in.IdempotencyKey)
	in.SignerFullName = strings.TrimSpace(in.SignerFullName)
	in.SignerPhoneNumber = strings.TrimSpace(in.SignerPhoneNumber)
	in.SignerEmail = strings.TrimSpace(strings.ToLower(in.SignerEmail))
	in.SignerNationalID = strings.TrimSpace(in.SignerNationalID)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}
	if in.Document == nil || len(in.Document.Data) == 0 {
		return nil, goerror.NewInvalidInput(nil, "document_file", "document_file is required")
	}

	clm, err := s.authenticatedAndAuthorized(ctx, constant.ObjectDocument, constant.ActionCreate)
	if err != nil {
		return nil, err
	}

	if s.idemp == nil || in.IdempotencyKey == "" {
		return s.register(ctx, clm, in)
	}

	var (
		out    *RegisterDocumentOutput
		runErr error
	)
	key := fmt.Sprintf("document:register:%d:%s", clm.UserID, in.IdempotencyKey)
	value, err := s.idemp.Exec(ctx, key, func(ctx context.Context) (string, error) {
		out, runErr = s.register(ctx, clm, in)
		if runErr != nil {
			return "", runErr
		}
		b, err := json.Marshal(out)
		return string(b), err
	}, idempotency.WithLockDuration(s.idempLock), idempotency.WithStateTTL(s.idempTTL))

	switch {
	case runErr != nil:
		return nil, runErr
	case out != nil:
		if err != nil {
			slog.WarnContext(ctx, "failed to record idempotent result", "key", in.IdempotencyKey, "error", err)
		}
		return out, nil
	case errors.Is(err, idempotency.ErrAlreadyCompleted):
		var prev RegisterDocumentOutput
		if err := json.Unmarshal([]byte(value), &prev); err != nil {
			slog.ErrorContext(ctx, "failed to decode idempotent result", "key", in.IdempotencyKey, "error", err)
			return nil, goerror.NewServer(err)
		}
		prev.Replayed = true
		return &prev, nil
	case errors.Is(err, idempotency.ErrAlreadyInProgress):
		slog.WarnContext(ctx, "idempotent request still in progress", "key", in.IdempotencyKey)
		return nil, errIdempotencyInProgress
	default:
		slog.ErrorContext(ctx, "failed to run idempotent register", "key", in.IdempotencyKey, "error", err)
		return nil, goerror.NewServer(err)
	}
}

func (s *Usecase) register(ctx context.Context, clm *jwt.Claims, in RegisterDocumentInput) (*RegisterDocumentOutput, error) {
	docKey := "documents/" + s.uuid.Generate() + "-" + objectName(in.Document.Name)
	if err := s.repoStorage.Put(ctx, docKey, in.Document.Data, in.Document.ContentType); err != nil {
		slog.ErrorContext(ctx, "failed to store document file", "key", docKey, "error", err)
		return nil, goerror.NewServer(err)
	}
	uploaded := []string{docKey}

	var photoKey string
	if in.SignerPhoto != nil && len(in.SignerPhoto.Data) > 0 {
		photoKey = "signers/" + s.uuid.Generate() + "-" + objectName(in.SignerPhoto.Name)
		if err := s.repoStorage.Put(ctx, photoKey, in.SignerPhoto.Data, in.SignerPhoto.ContentType); err != nil {
			slog.ErrorContext(ctx, "failed to store signer photo", "key", photoKey, "error", err)
			s.removeObjects(ctx, uploaded)
			return nil, goerror.NewServer(err)
		}
		uploaded = append(uploaded, photoKey)
	}

	sum := sha256.Sum256(in.Document.Data)
	now := s.clock.Now()

	res, err := s.repoDB.RegisterDocument(ctx, entity.Registration{
		Document: entity.Document{
			ID:         s.uid.Generate(),
			CompanyID:  in.CompanyID,
			FileName:   objectName(in.Document.Name),
			FilePath:   docKey,
			HashSHA256: hex.EncodeToString(sum[:]),
			StatusID:   lo.Ternary(in.StatusID > 0, in.StatusID, entity.DefaultStatusID),
		},
		Signer: entity.SignerIdentity{
			FullName:     in.SignerFullName,
			PhoneNumber:  in.SignerPhoneNumber,
			ContactEmail: in.SignerEmail,
			NationalID:   in.SignerNationalID,
			PhotoIDKey:   photoKey,
		},
		SignerID: s.uid.Generate(),
		At:       now,
	})
	if err != nil {
		s.removeObjects(ctx, uploaded)
		return nil, s.mapRegisterError(ctx, err)
	}

	if !res.SignerCreated && photoKey != "" {
		// an existing signer keeps its reference photo
		s.removeObjects(ctx, []string{photoKey})
	}

	ev := DocumentRegisteredEvent{
		DocumentID:    res.Document.ID,
		CompanyID:     res.Document.CompanyID,
		SignerID:      res.SignerID,
		SignerCreated: res.SignerCreated,
		HashSHA256:    res.Document.HashSHA256,
		RegisteredBy:  clm.UserID,
	}
	s.runAsync(ctx, func(ctx context.Context) error {
		if err := s.repoMessaging.PublishDocumentRegistered(ctx, ev); err != nil {
			slog.ErrorContext(ctx, "failed to publish document registered", "document_id", ev.DocumentID, "error", err)
		}
		return nil
	})

	return &RegisterDocumentOutput{
		Document:      res.Document,
		SignerID:      res.SignerID,
		SignerCreated: res.SignerCreated,
	}, nil
}

func (s *Usecase) mapRegisterError(ctx context.Context, err error) error {
	var fe *entity.SignerFieldsError
	if errors.As(err, &fe) {
		kv := make([]string, 0, len(fe.Fields)*2)
		for _, f := range fe.Fields {
			kv = append(kv, "signer_"+f, "signer_"+f+" is a required field")
		}
		return goerror.NewInvalidInput(nil, kv...)
	}
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "document registration conflicted", "error", err)
		return goerror.NewBusiness("document or signer already exists", goerror.CodeConflict)
	}

	slog.ErrorContext(ctx, "failed to repo register document", "error", err)
	return goerror.NewServer(err)
}

// removeObjects drops files uploaded for a registration that did not commit.
func (s *Usecase) removeObjects(ctx context.Context, keys []string) {
	ctx = context.WithoutCancel(ctx)
	for _, k := range keys {
		if err := s.repoStorage.Delete(ctx, k); err != nil {
			slog.WarnContext(ctx, "failed to remove orphan object", "key", k, "error", err)
		}
	}
}

// objectName keeps the last path element of a client supplied file name.
func objectName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	return strings.ReplaceAll(name, " ", "_")
}
