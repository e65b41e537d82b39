package auth

import (
	"context"
	"time"

	"github.com/mercata/storefront/services/user-service/internal/domain"
)

/*
UserRepo
--------
Persistence port for accounts.
Only describes WHAT the service needs, not HOW it's stored.

RecordFailedAttempt and ResetLockout must be atomic single-record
operations at the store: two concurrent failed logins against the same
account must each observe a distinct counter value. Read-then-write
sequences are not acceptable implementations.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)

	// Update saves mutable profile fields (username, email, password hash,
	// admin flag) and enforces email uniqueness.
	Update(ctx context.Context, u domain.User) (domain.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.User, error)

	// RecordFailedAttempt atomically increments the failure counter and,
	// when the incremented value reaches the lockout threshold, sets the
	// lock expiry to now + lock duration. It returns the post-increment
	// counter and the (possibly unchanged) lock expiry.
	RecordFailedAttempt(ctx context.Context, id string, now time.Time) (attempts int, lockedUntil *time.Time, err error)

	// ResetLockout atomically zeroes the failure counter and clears the
	// lock expiry. Called on every successful authentication.
	ResetLockout(ctx context.Context, id string) error
}

/*
PasswordHasher
--------------
Abstracts bcrypt / argon2.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies session tokens (JWT).
Used by service + session middleware.
*/
type SessionClaims struct {
	UserID string
	Exp    time.Time
}

type TokenSigner interface {
	SignSessionToken(userID string, ttl time.Duration) (string, error)
	VerifySessionToken(token string) (SessionClaims, error)
}

/*
EventPublisher
--------------
Publishes account events to the message broker. Downstream services
(notifications, fraud review) consume them; this service never sends
email itself.
*/
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error
	PublishAccountLocked(ctx context.Context, evt AccountLockedEvent) error
}

type UserRegisteredEvent struct {
	UserID   string
	Username string
	Email    string
}

type AccountLockedEvent struct {
	UserID      string
	Email       string
	Attempts    int
	LockedUntil time.Time
}
