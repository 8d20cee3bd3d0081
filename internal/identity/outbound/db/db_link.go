package db

import (
	"context"
	"time"

	"github.com/shandysiswandi/esign/internal/identity/entity"
	"github.com/shandysiswandi/esign/internal/pkg/goerror"
)

func (s *DB) CreateLink(ctx context.Context, link entity.Link) (err error) {
	ctx, span := s.startSpan(ctx, "CreateLink")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO telegram_links (id, email, token, confirmed, created_at) VALUES ($1, $2, $3, FALSE, $4)`,
		link.ID, link.Email, link.TokenDigest, link.CreatedAt,
	)
	return s.mapError(err)
}

func (s *DB) GetPendingLink(ctx context.Context, tokenDigest string) (_ *entity.Link, err error) {
	ctx, span := s.startSpan(ctx, "GetPendingLink")
	defer func() { s.endSpan(span, err) }()

	var l entity.Link
	err = s.conn.QueryRow(ctx,
		`SELECT id, email, token, chat_id, confirmed, created_at, confirmed_at
		 FROM telegram_links WHERE token = $1 AND confirmed = FALSE`, tokenDigest,
	).Scan(&l.ID, &l.Email, &l.TokenDigest, &l.ChatID, &l.Confirmed, &l.CreatedAt, &l.ConfirmedAt)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &l, nil
}

// ConfirmLink flips the link to confirmed once; a second call finds no
// pending row and returns goerror.ErrNotFound.
func (s *DB) ConfirmLink(ctx context.Context, id, chatID int64, at time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "ConfirmLink")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE telegram_links SET chat_id = $2, confirmed = TRUE, confirmed_at = $3
		 WHERE id = $1 AND confirmed = FALSE`,
		id, chatID, at,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}
	return nil
}
