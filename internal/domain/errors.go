package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindValidation     ErrKind = "validation"     // 400
	KindCredentials    ErrKind = "credentials"    // 400 (login failures, wrong old password)
	KindLocked         ErrKind = "locked"         // 400
	KindConflict       ErrKind = "conflict"       // 400 (duplicate email)
	KindForbidden      ErrKind = "forbidden"      // 400 (e.g. deleting an admin)
	KindUnauthorized   ErrKind = "unauthorized"   // 401 (missing/invalid session)
	KindNotFound       ErrKind = "not_found"      // 404
	KindInfrastructure ErrKind = "infrastructure" // 500
	KindInternal       ErrKind = "internal"       // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code (do not change casually)
// - Message: safe summary for clients (avoid leaking sensitive details)
// - Cause: wrapped internal error for logging/diagnostics
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ----------------------
// Validation / policy (400)
// ----------------------

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "invalid_json", "invalid JSON body", cause)
}

func ErrMissingField(field string) *Error {
	return New(KindValidation, "missing_field", fmt.Sprintf("missing required field: %s", field))
}

func ErrInvalidField(field, reason string) *Error {
	return New(KindValidation, "invalid_field", fmt.Sprintf("invalid %s: %s", field, reason))
}

// ErrPolicyViolation rejects a candidate password at registration or
// password change. The reason is shown to the client verbatim.
func ErrPolicyViolation(reason string) *Error {
	return New(KindValidation, "policy_violation", reason)
}

// ----------------------
// Credentials (400 on login routes)
// ----------------------

func ErrInvalidCredentials() *Error {
	return New(KindCredentials, "invalid_credentials", "incorrect email or password")
}

// ErrUnknownAccount is the login-route variant of not-found; the original
// surface reports it with a 400, not a 404.
func ErrUnknownAccount() *Error {
	return New(KindCredentials, "unknown_account", "user not found")
}

func ErrOldPasswordMismatch() *Error {
	return New(KindCredentials, "old_password_mismatch", "old password is incorrect")
}

// ----------------------
// Lockout (400)
// ----------------------

// ErrAccountLocked is returned on the attempt that trips the lock.
func ErrAccountLocked() *Error {
	return New(KindLocked, "account_locked",
		"too many unsuccessful login attempts, account locked for 3 minutes")
}

// ErrAccountStillLocked is returned for attempts made while a lock is active.
func ErrAccountStillLocked(remainingSeconds int) *Error {
	return New(KindLocked, "account_locked",
		fmt.Sprintf("please try again in %d seconds", remainingSeconds))
}

// ----------------------
// Session (401)
// ----------------------

func ErrSessionMissing() *Error {
	return New(KindUnauthorized, "session_missing", "no session token provided")
}

func ErrSessionInvalid() *Error {
	return New(KindUnauthorized, "session_invalid", "invalid session token")
}

func ErrSessionExpired() *Error {
	return New(KindUnauthorized, "session_expired", "session expired")
}

// ----------------------
// Forbidden (400 on the admin-delete guard)
// ----------------------

func ErrCannotDeleteAdmin() *Error {
	return New(KindForbidden, "cannot_delete_admin", "cannot delete admin user")
}

func ErrAdminRequired() *Error {
	return New(KindUnauthorized, "admin_required", "not authorized as admin")
}

// ----------------------
// Not found (404)
// ----------------------

func ErrUserNotFound() *Error {
	return New(KindNotFound, "user_not_found", "user not found")
}

// ----------------------
// Conflict (400)
// ----------------------

func ErrEmailAlreadyExists() *Error {
	return New(KindConflict, "email_already_exists", "email already registered")
}

// ----------------------
// Infrastructure / internal (5xx)
// ----------------------

func ErrDBUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "db_unavailable", "database unavailable", cause)
}

func ErrHashFailed(cause error) *Error {
	return Wrap(KindInternal, "hash_failed", "password hashing failed", cause)
}

func ErrTokenSignFailed(cause error) *Error {
	return Wrap(KindInternal, "token_sign_failed", "token signing failed", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "internal error", cause)
}
