package auth

import (
	"context"
	"strings"

	"github.com/mercata/storefront/services/user-service/internal/domain"
)

// Login authenticates an account and issues a session token.
//
// Lockout handling happens here, in this order:
//  1. An active lock rejects the attempt before any credential comparison
//     and reports the remaining whole seconds. The counter is untouched.
//  2. A correct password resets the counter and clears the lock.
//  3. A wrong password increments the counter atomically at the store;
//     reaching the threshold sets the lock at now + lock duration.
//
// Lock expiry is lazy: an attempt made after the window is evaluated as if
// the account were unlocked.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return LoginResult{}, domain.ErrUnknownAccount()
		}
		return LoginResult{}, err
	}

	now := s.now()
	if domain.Locked(u.LockedUntil, now) {
		s.audit("login_rejected_locked", map[string]string{"user_id": u.ID})
		return LoginResult{}, domain.ErrAccountStillLocked(domain.LockRemaining(*u.LockedUntil, now))
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		attempts, lockedUntil, rerr := s.users.RecordFailedAttempt(ctx, u.ID, now)
		if rerr != nil {
			return LoginResult{}, rerr
		}

		if domain.Locked(lockedUntil, now) {
			s.audit("account_locked", map[string]string{"user_id": u.ID})
			_ = s.pub.PublishAccountLocked(ctx, AccountLockedEvent{
				UserID:      u.ID,
				Email:       u.Email,
				Attempts:    attempts,
				LockedUntil: *lockedUntil,
			})
			return LoginResult{}, domain.ErrAccountLocked()
		}
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	if err := s.users.ResetLockout(ctx, u.ID); err != nil {
		return LoginResult{}, err
	}
	u.FailedAttempts = 0
	u.LockedUntil = nil

	tok, err := s.issueSession(u.ID)
	if err != nil {
		return LoginResult{}, err
	}

	s.audit("user_logged_in", map[string]string{"user_id": u.ID})
	return LoginResult{User: u, Token: tok}, nil
}
