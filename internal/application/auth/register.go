package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/mercata/storefront/services/user-service/internal/domain"
)

// Register creates an account after the credential policy passes.
// The plaintext password is hashed before anything is persisted.
func (s *Service) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return domain.User{}, domain.ErrMissingField("username")
	}
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if password == "" {
		return domain.User{}, domain.ErrMissingField("password")
	}

	if err := ValidatePassword(username, password); err != nil {
		return domain.User{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, domain.ErrHashFailed(err)
	}

	u := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      false,
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return domain.User{}, err
	}

	s.audit("user_registered", map[string]string{
		"user_id": created.ID,
		"email":   created.Email,
	})

	// Best-effort: a broker outage must not fail registration.
	_ = s.pub.PublishUserRegistered(ctx, UserRegisteredEvent{
		UserID:   created.ID,
		Username: created.Username,
		Email:    created.Email,
	})

	return created, nil
}
