package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/esign/internal/identity/entity"
)

const selectAccount = `SELECT user_id, email, password_hash, role, created_at
	FROM user_account WHERE deleted_at IS NULL`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *DB) GetAccountByEmail(ctx context.Context, email string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByEmail")
	defer func() { s.endSpan(span, err) }()

	a, err := scanAccount(s.conn.QueryRow(ctx, selectAccount+` AND email = $1`, email))
	if err != nil {
		return nil, s.mapError(err)
	}
	return a, nil
}

func (s *DB) GetAccountByID(ctx context.Context, id int64) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByID")
	defer func() { s.endSpan(span, err) }()

	a, err := scanAccount(s.conn.QueryRow(ctx, selectAccount+` AND user_id = $1`, id))
	if err != nil {
		return nil, s.mapError(err)
	}
	return a, nil
}

// CreateAccount inserts the account and its role row in one transaction.
func (s *DB) CreateAccount(ctx context.Context, in entity.NewAccount) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAccount")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return s.mapError(err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	a := in.Account
	if _, err = tx.Exec(ctx,
		`INSERT INTO user_account (user_id, email, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)`,
		a.ID, a.Email, a.PasswordHash, a.Role, a.CreatedAt,
	); err != nil {
		return s.mapError(err)
	}

	if c := in.Company; c != nil {
		if _, err = tx.Exec(ctx,
			`INSERT INTO company (company_id, legal_name, tax_id, contact_email, user_id, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $6)`,
			c.ID, c.LegalName, c.TaxID, c.ContactEmail, a.ID, a.CreatedAt,
		); err != nil {
			return s.mapError(err)
		}
	}

	if sg := in.Signer; sg != nil {
		if _, err = tx.Exec(ctx,
			`INSERT INTO signer (signer_id, full_name, national_id, phone_number, contact_email, user_id, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
			sg.ID, sg.FullName, sg.NationalID, sg.PhoneNumber, sg.ContactEmail, a.ID, a.CreatedAt,
		); err != nil {
			return s.mapError(err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}
