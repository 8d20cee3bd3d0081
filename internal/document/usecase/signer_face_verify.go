package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/esign/internal/pkg/facematch"
	"github.com/shandysiswandi/esign/internal/pkg/goerror"
	"github.com/shandysiswandi/esign/internal/shared/constant"
)

var (
	errSignerNotFound = goerror.NewBusiness("signer not found", goerror.CodeNotFound)
	errNoReference    = goerror.NewInvalidInput(nil, "photo_id", "signer has no reference photo")
	errBadLiveImage   = goerror.NewInvalidInput(nil, "live_image_base64", "live_image_base64 must be a base64 encoded image")
)

type FaceVerifyInput struct {
	NationalID      string `validate:"required,max=50"`
	LiveImageBase64 string `validate:"required"`
}

type FaceVerifyOutput struct {
	Match bool
}

// FaceVerify compares a live capture with the reference photo stored for
// the signer.
func (s *Usecase) FaceVerify(ctx context.Context, in FaceVerifyInput) (*FaceVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "FaceVerify")
	defer span.End()

	in.NationalID = strings.TrimSpace(in.NationalID)
	in.LiveImageBase64 = strings.TrimSpace(in.LiveImageBase64)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.authenticatedAndAuthorized(ctx, constant.ObjectSigner, constant.ActionVerify); err != nil {
		return nil, err
	}

	signer, err := s.repoDB.GetSignerByNationalID(ctx, in.NationalID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "signer not found", "national_id", in.NationalID)
		return nil, errSignerNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get signer", "national_id", in.NationalID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if signer.PhotoIDKey == "" {
		return nil, errNoReference
	}

	live, err := decodeImage(in.LiveImageBase64)
	if err != nil || len(live) == 0 {
		return nil, errBadLiveImage
	}

	reference, err := s.repoStorage.Get(ctx, signer.PhotoIDKey)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "signer reference photo missing in storage", "signer_id", signer.ID, "key", signer.PhotoIDKey)
		return nil, errNoReference
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to read signer reference photo", "signer_id", signer.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	match, err := s.comparator.Compare(ctx, reference, live)
	if errors.Is(err, facematch.ErrEmptyImage) {
		return nil, errNoReference
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to compare faces", "signer_id", signer.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &FaceVerifyOutput{Match: match}, nil
}

// decodeImage accepts plain base64 or a data URL.
func decodeImage(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		if _, rest, ok := strings.Cut(s, ","); ok {
			s = rest
		}
	}
	return base64.StdEncoding.DecodeString(s)
}
