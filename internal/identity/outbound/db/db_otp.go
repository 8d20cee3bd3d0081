package db

import (
	"context"
	"time"

	"github.com/shandysiswandi/esign/internal/identity/entity"
)

// UpsertOTP replaces the row of the email and resets used.
func (s *DB) UpsertOTP(ctx context.Context, otp entity.OTP) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertOTP")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO otp_codes (email, code, expires_at, used) VALUES ($1, $2, $3, FALSE)
		 ON CONFLICT (email) DO UPDATE SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at, used = FALSE`,
		otp.Email, otp.CodeDigest, otp.ExpiresAt,
	)
	return s.mapError(err)
}

func (s *DB) GetOTP(ctx context.Context, email string) (_ *entity.OTP, err error) {
	ctx, span := s.startSpan(ctx, "GetOTP")
	defer func() { s.endSpan(span, err) }()

	var otp entity.OTP
	err = s.conn.QueryRow(ctx,
		`SELECT email, code, expires_at, used FROM otp_codes WHERE email = $1`, email,
	).Scan(&otp.Email, &otp.CodeDigest, &otp.ExpiresAt, &otp.Used)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &otp, nil
}

// ConsumeOTP marks the code used if it is still live and unchanged. When no
// row changes the current row decides the reason: used, expired or replaced.
func (s *DB) ConsumeOTP(ctx context.Context, email, codeDigest string, now time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "ConsumeOTP")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE otp_codes SET used = TRUE
		 WHERE email = $1 AND code = $2 AND used = FALSE AND expires_at >= $3`,
		email, codeDigest, now,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	current, err := s.GetOTP(ctx, email)
	if err != nil {
		return err
	}

	switch {
	case current.CodeDigest != codeDigest:
		return entity.ErrOTPMismatch
	case current.Used:
		return entity.ErrOTPAlreadyUsed
	default:
		return entity.ErrOTPExpired
	}
}
