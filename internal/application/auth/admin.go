package auth

import (
	"context"
	"strings"

	"github.com/mercata/storefront/services/user-service/internal/domain"
)

// ListUsers returns every account. Admin only; enforced at the router.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// AdminUpdateInput is the privileged edit surface. Unlike self-service
// profile updates it can flip the admin flag, and the flag is always
// written with the submitted value.
type AdminUpdateInput struct {
	Username string
	Email    string
	IsAdmin  bool
}

func (s *Service) AdminUpdateUser(ctx context.Context, id string, in AdminUpdateInput) (domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if v := strings.TrimSpace(in.Username); v != "" {
		u.Username = v
	}
	if v := strings.TrimSpace(in.Email); v != "" {
		u.Email = v
	}
	u.IsAdmin = in.IsAdmin

	updated, err := s.users.Update(ctx, u)
	if err != nil {
		return domain.User{}, err
	}

	s.audit("admin_updated_user", map[string]string{"user_id": updated.ID})
	return updated, nil
}

// AdminDeleteUser removes an account. Admin accounts are never deletable;
// this prevents the system from being locked out of its own privileges.
func (s *Service) AdminDeleteUser(ctx context.Context, id string) error {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u.IsAdmin {
		return domain.ErrCannotDeleteAdmin()
	}

	if err := s.users.Delete(ctx, u.ID); err != nil {
		return err
	}

	s.audit("admin_deleted_user", map[string]string{"user_id": u.ID})
	return nil
}
