package auth

import (
	"time"

	"github.com/mercata/storefront/services/user-service/internal/domain"
)

type Service struct {
	users  UserRepo
	hasher PasswordHasher
	signer TokenSigner
	pub    EventPublisher

	sessionTTL time.Duration
	now        func() time.Time
	audit      func(action string, fields map[string]string)
}

type Config struct {
	SessionTTL time.Duration
}

func NewService(users UserRepo, hasher PasswordHasher, signer TokenSigner, pub EventPublisher, cfg Config) *Service {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		users:      users,
		hasher:     hasher,
		signer:     signer,
		pub:        pub,
		sessionTTL: ttl,
		now:        time.Now,
		audit:      func(string, map[string]string) {},
	}
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

// WithClock overrides the service clock. Lockout transitions are a function
// of the current time, so tests need a deterministic source.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// SessionTTL is the validity window of issued session tokens; the HTTP
// layer aligns the cookie expiry with it.
func (s *Service) SessionTTL() time.Duration { return s.sessionTTL }

// LoginResult carries the authenticated account and the signed session
// token the handler attaches as an HTTP-only cookie.
type LoginResult struct {
	User  domain.User
	Token string
}

func (s *Service) issueSession(userID string) (string, error) {
	tok, err := s.signer.SignSessionToken(userID, s.sessionTTL)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return tok, nil
}
