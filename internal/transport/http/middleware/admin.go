package middleware

import (
	"net/http"

	"github.com/mercata/storefront/services/user-service/internal/application/auth"
	"github.com/mercata/storefront/services/user-service/internal/domain"
	"github.com/mercata/storefront/services/user-service/internal/transport/http/response"
)

// AdminOnly gates management routes. The flag is read from the store on every
// request rather than trusted from the token, so revoking admin takes effect
// immediately.
func AdminOnly(users auth.UserRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := UserIDFromContext(r.Context())
			if !ok {
				response.Error(w, r, domain.ErrSessionMissing())
				return
			}

			u, err := users.GetByID(r.Context(), id)
			if err != nil || !u.IsAdmin {
				response.Error(w, r, domain.ErrAdminRequired())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
