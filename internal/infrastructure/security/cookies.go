package security

import (
	"net/http"
	"time"
)

// SessionCookieName matches the cookie the storefront frontend expects.
const SessionCookieName = "jwt"

// SetSessionToken attaches the signed session token as an HTTP-only cookie.
// The cookie expiry tracks the token's validity window.
func SetSessionToken(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure, // prod=true, dev=false
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
}

// ClearSessionToken overwrites the cookie with an immediately expired empty
// value. Safe to call on requests that carry no session at all.
func ClearSessionToken(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// ReadSessionToken extracts the raw session token from the request cookie.
func ReadSessionToken(r *http.Request) (string, error) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", err
	}
	return c.Value, nil
}
