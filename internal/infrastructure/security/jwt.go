package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mercata/storefront/services/user-service/internal/application/auth"
	"github.com/mercata/storefront/services/user-service/internal/domain"
)

// JWTSigner mints and verifies HS256 session tokens. The secret is loaded
// once at startup; rotating it invalidates every outstanding session, which
// simply forces re-authentication.
type JWTSigner struct {
	secret []byte
	issuer string
}

func NewJWTSigner(secret string, issuer string) *JWTSigner {
	return &JWTSigner{
		secret: []byte(secret),
		issuer: issuer,
	}
}

type sessionClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

func (s *JWTSigner) SignSessionToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return signed, nil
}

func (s *JWTSigner) VerifySessionToken(token string) (auth.SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrSessionInvalid()
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.SessionClaims{}, domain.ErrSessionExpired()
		}
		return auth.SessionClaims{}, domain.ErrSessionInvalid()
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return auth.SessionClaims{}, domain.ErrSessionInvalid()
	}

	exp := time.Time{}
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}

	return auth.SessionClaims{
		UserID: claims.UserID,
		Exp:    exp,
	}, nil
}
