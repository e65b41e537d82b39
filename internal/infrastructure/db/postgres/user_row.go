package postgres

import (
	"database/sql"
	"time"
)

type userRow struct {
	ID             string
	Username       string
	Email          string
	PasswordHash   string
	FailedAttempts int
	LockedUntil    sql.NullTime
	IsAdmin        bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
