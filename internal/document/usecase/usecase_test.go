package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/shandysiswandi/esign/internal/pkg/goerror"
	"github.com/shandysiswandi/esign/internal/shared/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerInput(nationalID string) RegisterDocumentInput {
	return RegisterDocumentInput{
		CompanyID:         7,
		Document:          &UploadFile{Name: "contract v1.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.7 contract")},
		SignerPhoto:       &UploadFile{Name: "ktp.jpg", ContentType: "image/jpeg", Data: []byte("jpeg-bytes")},
		SignerFullName:    "Sari Dewi",
		SignerPhoneNumber: "+62812345678",
		SignerEmail:       "Sari@Example.com",
		SignerNationalID:  nationalID,
	}
}

func TestRegisterDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("StoresFilesAndHashes", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		in := registerInput("3201-0001")

		// Act
		out, err := f.uc.RegisterDocument(asCompany(ctx), in)
		require.NoError(t, err)

		// Assert
		sum := sha256.Sum256(in.Document.Data)
		assert.Equal(t, hex.EncodeToString(sum[:]), out.Document.HashSHA256)
		assert.Equal(t, "contract_v1.pdf", out.Document.FileName)
		assert.Equal(t, int32(1), out.Document.StatusID)
		assert.True(t, strings.HasPrefix(out.Document.FilePath, "documents/"))
		assert.True(t, strings.HasSuffix(out.Document.FilePath, "-contract_v1.pdf"))
		assert.True(t, out.SignerCreated)
		assert.False(t, out.Replayed)

		assert.Len(t, f.storage.keys("documents/"), 1)
		photos := f.storage.keys("signers/")
		require.Len(t, photos, 1)
		assert.Equal(t, photos[0], f.db.signers["3201-0001"].PhotoIDKey)
		assert.Equal(t, "sari@example.com", f.db.signers["3201-0001"].ContactEmail)

		events := f.mq.published()
		require.Len(t, events, 1)
		assert.Equal(t, out.Document.ID, events[0].DocumentID)
		assert.Equal(t, int64(900), events[0].RegisteredBy)
	})

	t.Run("ExistingSignerReused", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		first, err := f.uc.RegisterDocument(asCompany(ctx), registerInput("3201-0002"))
		require.NoError(t, err)

		// Act
		in := registerInput("3201-0002")
		in.SignerFullName = ""
		in.SignerPhoneNumber = ""
		second, err := f.uc.RegisterDocument(asCompany(ctx), in)
		require.NoError(t, err)

		// Assert
		assert.Equal(t, first.SignerID, second.SignerID)
		assert.False(t, second.SignerCreated)
		assert.NotEqual(t, first.Document.ID, second.Document.ID)
		assert.Len(t, f.db.signers, 1)
		assert.Len(t, f.storage.keys("signers/"), 1)
	})

	t.Run("NewSignerMissingFields", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		in := registerInput("3201-0003")
		in.SignerFullName = ""
		in.SignerEmail = ""

		// Act
		_, err := f.uc.RegisterDocument(asCompany(ctx), in)

		// Assert
		gerr := requireCode(t, err, goerror.CodeInvalidInput)
		assert.Contains(t, gerr.Fields(), "signer_full_name")
		assert.Contains(t, gerr.Fields(), "signer_contact_email")
		assert.Empty(t, f.db.documents)
		assert.Empty(t, f.storage.keys(""))
		assert.Empty(t, f.mq.published())
	})

	t.Run("DocumentFileRequired", func(t *testing.T) {
		f := newFixture(t)
		in := registerInput("3201-0004")
		in.Document = nil

		_, err := f.uc.RegisterDocument(asCompany(ctx), in)

		gerr := requireCode(t, err, goerror.CodeInvalidInput)
		assert.Contains(t, gerr.Fields(), "document_file")
	})

	t.Run("SignerRoleForbidden", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.RegisterDocument(asRole(ctx, 1, constant.RoleSigner), registerInput("3201-0005"))

		requireCode(t, err, goerror.CodeForbidden)
		assert.Zero(t, f.db.registerCalls)
	})

	t.Run("Anonymous", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.RegisterDocument(ctx, registerInput("3201-0006"))
		requireCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("StoreFailureRemovesUploads", func(t *testing.T) {
		f := newFixture(t)
		f.db.registerErr = errors.New("tx aborted")

		_, err := f.uc.RegisterDocument(asCompany(ctx), registerInput("3201-0007"))

		requireCode(t, err, goerror.CodeInternal)
		assert.Empty(t, f.storage.keys(""))
	})

	t.Run("IdempotencyKeyReplays", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		in := registerInput("3201-0008")
		in.IdempotencyKey = "upload-1"

		// Act
		first, err := f.uc.RegisterDocument(asCompany(ctx), in)
		require.NoError(t, err)
		second, err := f.uc.RegisterDocument(asCompany(ctx), in)
		require.NoError(t, err)

		// Assert
		assert.Equal(t, 1, f.db.registerCalls)
		assert.True(t, second.Replayed)
		assert.Equal(t, first.Document.ID, second.Document.ID)
		assert.Equal(t, first.Document.HashSHA256, second.Document.HashSHA256)
		assert.Equal(t, first.SignerID, second.SignerID)
		assert.Len(t, f.mq.published(), 1)
	})

	t.Run("IdempotencyKeyReleasedOnFailure", func(t *testing.T) {
		f := newFixture(t)
		in := registerInput("3201-0009")
		in.IdempotencyKey = "upload-2"
		f.db.registerErr = errors.New("tx aborted")

		_, err := f.uc.RegisterDocument(asCompany(ctx), in)
		requireCode(t, err, goerror.CodeInternal)

		f.db.registerErr = nil
		out, err := f.uc.RegisterDocument(asCompany(ctx), in)
		require.NoError(t, err)
		assert.False(t, out.Replayed)
		assert.Equal(t, 2, f.db.registerCalls)
	})

	t.Run("IdempotencyKeyInProgress", func(t *testing.T) {
		f := newFixture(t)
		in := registerInput("3201-0010")
		in.IdempotencyKey = "upload-3"
		require.NoError(t, f.redis.Set("idempotency:document:register:900:upload-3", "in_progress"))

		_, err := f.uc.RegisterDocument(asCompany(ctx), in)

		requireCode(t, err, goerror.CodeConflict)
		assert.Zero(t, f.db.registerCalls)
	})

	t.Run("IdempotencyKeyScopedPerUser", func(t *testing.T) {
		f := newFixture(t)
		in := registerInput("3201-0011")
		in.IdempotencyKey = "shared"

		a, err := f.uc.RegisterDocument(asRole(ctx, 1, constant.RoleCompany), in)
		require.NoError(t, err)
		b, err := f.uc.RegisterDocument(asRole(ctx, 2, constant.RoleAdmin), in)
		require.NoError(t, err)

		assert.NotEqual(t, a.Document.ID, b.Document.ID)
		assert.False(t, b.Replayed)
	})
}

func TestDocumentCRUD(t *testing.T) {
	ctx := context.Background()

	t.Run("GetUpdateDelete", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		reg, err := f.uc.RegisterDocument(asCompany(ctx), registerInput("3201-0100"))
		require.NoError(t, err)
		id := reg.Document.ID

		// Act and Assert
		got, err := f.uc.GetDocument(asCompany(ctx), GetDocumentInput{ID: id})
		require.NoError(t, err)
		assert.Equal(t, reg.Document.HashSHA256, got.HashSHA256)

		name := "  signed.pdf "
		status := int32(3)
		upd, err := f.uc.UpdateDocument(asCompany(ctx), UpdateDocumentInput{ID: id, FileName: &name, StatusID: &status})
		require.NoError(t, err)
		assert.Equal(t, "signed.pdf", upd.FileName)
		assert.Equal(t, int32(3), upd.StatusID)

		require.NoError(t, f.uc.DeleteDocument(asCompany(ctx), DeleteDocumentInput{ID: id}))

		_, err = f.uc.GetDocument(asCompany(ctx), GetDocumentInput{ID: id})
		requireCode(t, err, goerror.CodeNotFound)
		err = f.uc.DeleteDocument(asCompany(ctx), DeleteDocumentInput{ID: id})
		gerr := requireCode(t, err, goerror.CodeNotFound)
		assert.Equal(t, "document not found", gerr.Msg())
	})

	t.Run("UpdateNeedsAField", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.UpdateDocument(asCompany(ctx), UpdateDocumentInput{ID: 1})
		requireCode(t, err, goerror.CodeInvalidInput)
	})

	t.Run("UpdateUnknown", func(t *testing.T) {
		f := newFixture(t)
		status := int32(2)
		_, err := f.uc.UpdateDocument(asCompany(ctx), UpdateDocumentInput{ID: 404, StatusID: &status})
		requireCode(t, err, goerror.CodeNotFound)
	})

	t.Run("ListPagesAndClamps", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		for i := range 3 {
			in := registerInput("3201-02" + strconv.Itoa(i))
			_, err := f.uc.RegisterDocument(asCompany(ctx), in)
			require.NoError(t, err)
		}

		// Act
		page, err := f.uc.ListDocuments(asCompany(ctx), ListDocumentInput{Limit: 2, Offset: 1})
		require.NoError(t, err)
		clamped, err := f.uc.ListDocuments(asCompany(ctx), ListDocumentInput{Limit: 1000, Offset: -5})
		require.NoError(t, err)

		// Assert
		assert.Equal(t, int64(3), page.Total)
		assert.Len(t, page.Documents, 2)
		assert.Less(t, page.Documents[0].ID, page.Documents[1].ID)
		assert.Equal(t, defaultListLimit, clamped.Limit)
		assert.Equal(t, int32(0), clamped.Offset)
		assert.Len(t, clamped.Documents, 3)
	})

	t.Run("SignerCannotRead", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.ListDocuments(asRole(ctx, 5, constant.RoleSigner), ListDocumentInput{})
		requireCode(t, err, goerror.CodeForbidden)
	})
}

func TestFaceVerify(t *testing.T) {
	ctx := context.Background()
	live := base64.StdEncoding.EncodeToString([]byte("live-capture"))

	t.Run("Match", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		_, err := f.uc.RegisterDocument(asCompany(ctx), registerInput("3201-0300"))
		require.NoError(t, err)

		// Act
		out, err := f.uc.FaceVerify(asRole(ctx, 3, constant.RoleSigner), FaceVerifyInput{NationalID: "3201-0300", LiveImageBase64: live})
		require.NoError(t, err)
		outURL, err := f.uc.FaceVerify(asCompany(ctx), FaceVerifyInput{NationalID: "3201-0300", LiveImageBase64: "data:image/jpeg;base64," + live})
		require.NoError(t, err)

		// Assert
		assert.True(t, out.Match)
		assert.True(t, outURL.Match)
	})

	t.Run("UnknownSigner", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.FaceVerify(asCompany(ctx), FaceVerifyInput{NationalID: "nope", LiveImageBase64: live})
		requireCode(t, err, goerror.CodeNotFound)
	})

	t.Run("NoReferencePhoto", func(t *testing.T) {
		f := newFixture(t)
		in := registerInput("3201-0301")
		in.SignerPhoto = nil
		_, err := f.uc.RegisterDocument(asCompany(ctx), in)
		require.NoError(t, err)

		_, err = f.uc.FaceVerify(asCompany(ctx), FaceVerifyInput{NationalID: "3201-0301", LiveImageBase64: live})

		gerr := requireCode(t, err, goerror.CodeInvalidInput)
		assert.Contains(t, gerr.Fields(), "photo_id")
	})

	t.Run("BadBase64", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.RegisterDocument(asCompany(ctx), registerInput("3201-0302"))
		require.NoError(t, err)

		_, err = f.uc.FaceVerify(asCompany(ctx), FaceVerifyInput{NationalID: "3201-0302", LiveImageBase64: "***not base64***"})

		gerr := requireCode(t, err, goerror.CodeInvalidInput)
		assert.Contains(t, gerr.Fields(), "live_image_base64")
	})
}

func TestObjectName(t *testing.T) {
	assert.Equal(t, "a.pdf", objectName("../../etc/a.pdf"))
	assert.Equal(t, "b.pdf", objectName(`C:\Users\me\b.pdf`))
	assert.Equal(t, "my_file.pdf", objectName(" my file.pdf "))
	assert.Equal(t, "file", objectName(""))
}
