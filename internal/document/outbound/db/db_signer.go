package db

import (
	"context"

	"github.com/shandysiswandi/esign/internal/document/entity"
)

func (s *DB) GetSignerByNationalID(ctx context.Context, nationalID string) (_ *entity.Signer, err error) {
	ctx, span := s.startSpan(ctx, "GetSignerByNationalID")
	defer func() { s.endSpan(span, err) }()

	var sg entity.Signer
	err = s.conn.QueryRow(ctx,
		`SELECT signer_id, full_name, national_id, phone_number, contact_email, COALESCE(photo_id_url, ''), user_id, created_at
		 FROM signer WHERE national_id = $1 AND deleted_at IS NULL`, nationalID,
	).Scan(&sg.ID, &sg.FullName, &sg.NationalID, &sg.PhoneNumber, &sg.ContactEmail, &sg.PhotoIDKey, &sg.UserID, &sg.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &sg, nil
}
