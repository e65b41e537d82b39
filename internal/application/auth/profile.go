package auth

import (
	"context"
	"strings"

	"github.com/mercata/storefront/services/user-service/internal/domain"
)

// GetUserByID loads an account for profile reads and session middleware.
func (s *Service) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfileInput carries optional self-service profile changes.
// Empty fields keep the stored value. Changing the password requires the
// matching old password.
type UpdateProfileInput struct {
	Username    string
	Email       string
	OldPassword string
	NewPassword string
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	if in.OldPassword != "" {
		if err := s.hasher.Compare(u.PasswordHash, in.OldPassword); err != nil {
			return domain.User{}, domain.ErrOldPasswordMismatch()
		}
	}

	if in.NewPassword != "" {
		if in.OldPassword == "" {
			return domain.User{}, domain.ErrMissingField("oldPassword")
		}
		username := u.Username
		if v := strings.TrimSpace(in.Username); v != "" {
			username = v
		}
		if err := ValidatePassword(username, in.NewPassword); err != nil {
			return domain.User{}, err
		}
		hash, err := s.hasher.Hash(in.NewPassword)
		if err != nil {
			return domain.User{}, domain.ErrHashFailed(err)
		}
		u.PasswordHash = hash
	}

	if v := strings.TrimSpace(in.Username); v != "" {
		u.Username = v
	}
	if v := strings.TrimSpace(in.Email); v != "" {
		u.Email = v
	}

	updated, err := s.users.Update(ctx, u)
	if err != nil {
		return domain.User{}, err
	}

	s.audit("profile_updated", map[string]string{"user_id": updated.ID})
	return updated, nil
}
