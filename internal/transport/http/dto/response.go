package dto

import "github.com/mercata/storefront/services/user-service/internal/domain"

// UserView is the public shape of an account. Password hashes and lockout
// bookkeeping never leave the service.
type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
}

func NewUserView(u domain.User) UserView {
	return UserView{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
	}
}

func NewUserViews(users []domain.User) []UserView {
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserView(u))
	}
	return out
}
