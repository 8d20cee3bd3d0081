// Package schema embeds the PostgreSQL schema applied at startup and by
// integration tests.
package schema

import (
	"context"
	_ "embed"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var SQL string

// Apply runs the idempotent schema script.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, SQL)
	return err
}
