package domain

import "time"

// Lockout policy defaults. An account is locked after LockoutThreshold
// consecutive failed logins and stays locked for LockoutDuration.
const (
	LockoutThreshold = 3
	LockoutDuration  = 3 * time.Minute
)

// Locked reports whether a lock set at lockedUntil is still active at now.
// Expiry is lazy: nothing clears the field when the window passes, the next
// attempt simply observes that the lock is over.
func Locked(lockedUntil *time.Time, now time.Time) bool {
	return lockedUntil != nil && now.Before(*lockedUntil)
}

// LockRemaining returns the whole seconds left on an active lock, rounding
// up so a caller is never told zero while the lock still holds.
func LockRemaining(lockedUntil time.Time, now time.Time) int {
	d := lockedUntil.Sub(now)
	if d <= 0 {
		return 0
	}
	secs := int(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return secs
}

// NextFailureState computes the counter and lock produced by one more failed
// attempt. It is a pure function; the caller persists the result atomically.
// Once the incremented counter reaches the threshold the lock starts at
// now + LockoutDuration. An active lock never reaches this function because
// locked attempts are rejected before any credential check.
func NextFailureState(failedAttempts int, now time.Time) (attempts int, lockedUntil *time.Time) {
	attempts = failedAttempts + 1
	if attempts >= LockoutThreshold {
		t := now.Add(LockoutDuration)
		lockedUntil = &t
	}
	return attempts, lockedUntil
}
