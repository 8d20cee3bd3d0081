package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/esign/internal/document/entity"
)

const (
	// signerAttempts bounds insert-or-reuse rounds for one registration.
	signerAttempts   = 3
	signerRetryDelay = 20 * time.Millisecond
)

var errSignerRace = errors.New("document: signer conflicted but is not visible yet")

// RegisterDocument writes the document, its signer when new and the
// assignment in one transaction. A new signer missing required fields fails
// before anything is inserted. Any error rolls everything back.
func (s *DB) RegisterDocument(ctx context.Context, in entity.Registration) (_ *entity.RegistrationResult, err error) {
	ctx, span := s.startSpan(ctx, "RegisterDocument")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, s.mapError(err)
	}
	defer func() {
		if rErr := tx.Rollback(context.WithoutCancel(ctx)); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	signerID, found, err := s.lookupSigner(ctx, tx, in.Signer.NationalID)
	if err != nil {
		return nil, s.mapError(err)
	}
	if !found {
		if missing := in.Signer.MissingFields(); len(missing) > 0 {
			return nil, &entity.SignerFieldsError{Fields: missing}
		}
	}

	doc := in.Document
	doc.CreatedAt = in.At
	doc.UpdatedAt = in.At
	if _, err = tx.Exec(ctx,
		`INSERT INTO document (document_id, company_id, file_name, file_path, hash_sha256, status_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		doc.ID, doc.CompanyID, doc.FileName, doc.FilePath, doc.HashSHA256, doc.StatusID, in.At,
	); err != nil {
		return nil, s.mapError(err)
	}

	created := false
	if !found {
		signerID, created, err = s.insertOrReuseSigner(ctx, tx, in)
		if err != nil {
			return nil, s.mapError(err)
		}
	}

	if _, err = tx.Exec(ctx,
		`INSERT INTO document_signer (document_id, signer_id, status_id) VALUES ($1, $2, $3)`,
		doc.ID, signerID, entity.DefaultStatusID,
	); err != nil {
		return nil, s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, s.mapError(err)
	}

	return &entity.RegistrationResult{Document: doc, SignerID: signerID, SignerCreated: created}, nil
}

func (s *DB) lookupSigner(ctx context.Context, q pgx.Tx, nationalID string) (int64, bool, error) {
	if nationalID == "" {
		return 0, false, nil
	}

	var id int64
	err := q.QueryRow(ctx,
		`SELECT signer_id FROM signer WHERE national_id = $1 AND deleted_at IS NULL`, nationalID,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// insertOrReuseSigner inserts the signer inside a savepoint. When another
// registration committed the same national id first, the savepoint is
// rolled back and that signer is reused.
func (s *DB) insertOrReuseSigner(ctx context.Context, tx pgx.Tx, in entity.Registration) (int64, bool, error) {
	var (
		id      int64
		created bool
	)

	b := retry.WithMaxRetries(signerAttempts-1, retry.NewConstant(signerRetryDelay))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		sp, err := tx.Begin(ctx)
		if err != nil {
			return err
		}

		si := in.Signer
		_, err = sp.Exec(ctx,
			`INSERT INTO signer (signer_id, full_name, national_id, phone_number, contact_email, photo_id_url, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $7)`,
			in.SignerID, si.FullName, si.NationalID, si.PhoneNumber, si.ContactEmail, si.PhotoIDKey, in.At,
		)
		if err == nil {
			if err := sp.Commit(ctx); err != nil {
				return err
			}
			id, created = in.SignerID, true
			return nil
		}

		if rErr := sp.Rollback(ctx); rErr != nil {
			return errors.Join(err, rErr)
		}
		if !isUniqueViolation(err) {
			return err
		}

		existing, found, err := s.lookupSigner(ctx, tx, si.NationalID)
		if err != nil {
			return err
		}
		if !found {
			return retry.RetryableError(errSignerRace)
		}
		id = existing
		return nil
	})

	return id, created, err
}
