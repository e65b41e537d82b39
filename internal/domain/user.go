package domain

import "time"

// User is the account record owned by this service.
// PasswordHash is the only form in which a credential is ever persisted;
// plaintext passwords exist only for the duration of a request.
type User struct {
	ID             string
	Username       string
	Email          string
	PasswordHash   string
	FailedAttempts int
	LockedUntil    *time.Time
	IsAdmin        bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
