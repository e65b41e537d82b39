package postgres

import (
	"context"
	"database/sql"

	"github.com/mercata/storefront/services/user-service/internal/domain"
)

// EnsureSchema creates the users table if it does not exist. The service
// owns this table; there is no separate migration pipeline yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const q = `
CREATE TABLE IF NOT EXISTS users (
    id              TEXT PRIMARY KEY,
    username        TEXT NOT NULL,
    email           TEXT NOT NULL UNIQUE,
    password_hash   TEXT NOT NULL,
    failed_attempts INT  NOT NULL DEFAULT 0,
    locked_until    TIMESTAMPTZ,
    is_admin        BOOLEAN NOT NULL DEFAULT FALSE,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	if _, err := db.ExecContext(ctx, q); err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}
