package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/esign/internal/document/entity"
	"github.com/shandysiswandi/esign/internal/pkg/goerror"
)

const documentColumns = `document_id, company_id, file_name, file_path, hash_sha256, status_id, created_at, updated_at`

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	if err := row.Scan(&d.ID, &d.CompanyID, &d.FileName, &d.FilePath, &d.HashSHA256, &d.StatusID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *DB) GetDocument(ctx context.Context, id int64) (_ *entity.Document, err error) {
	ctx, span := s.startSpan(ctx, "GetDocument")
	defer func() { s.endSpan(span, err) }()

	d, err := scanDocument(s.conn.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM document WHERE document_id = $1 AND deleted_at IS NULL`, id,
	))
	if err != nil {
		return nil, s.mapError(err)
	}
	return d, nil
}

// ListDocuments pages live documents by id. A zero CompanyID lists every
// company.
func (s *DB) ListDocuments(ctx context.Context, filter entity.DocumentFilter) (_ []entity.Document, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "ListDocuments")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx,
		`SELECT `+documentColumns+` FROM document
		 WHERE deleted_at IS NULL AND ($1::bigint = 0 OR company_id = $1)
		 ORDER BY document_id LIMIT $2 OFFSET $3`,
		filter.CompanyID, filter.Limit, filter.Offset,
	)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	docs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Document, error) {
		d, err := scanDocument(row)
		if err != nil {
			return entity.Document{}, err
		}
		return *d, nil
	})
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	var total int64
	if err = s.conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM document WHERE deleted_at IS NULL AND ($1::bigint = 0 OR company_id = $1)`,
		filter.CompanyID,
	).Scan(&total); err != nil {
		return nil, 0, s.mapError(err)
	}

	return docs, total, nil
}

func (s *DB) UpdateDocument(ctx context.Context, patch entity.DocumentPatch) (_ *entity.Document, err error) {
	ctx, span := s.startSpan(ctx, "UpdateDocument")
	defer func() { s.endSpan(span, err) }()

	d, err := scanDocument(s.conn.QueryRow(ctx,
		`UPDATE document SET
		   file_name  = COALESCE($2::text, file_name),
		   status_id  = COALESCE($3::integer, status_id),
		   updated_at = $4
		 WHERE document_id = $1 AND deleted_at IS NULL
		 RETURNING `+documentColumns,
		patch.ID, patch.FileName, patch.StatusID, patch.UpdatedAt,
	))
	if err != nil {
		return nil, s.mapError(err)
	}
	return d, nil
}

// DeleteDocument marks the document deleted. Deleting twice returns
// goerror.ErrNotFound.
func (s *DB) DeleteDocument(ctx context.Context, id int64, at time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteDocument")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE document SET deleted_at = $2, updated_at = $2 WHERE document_id = $1 AND deleted_at IS NULL`,
		id, at,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}
	return nil
}
