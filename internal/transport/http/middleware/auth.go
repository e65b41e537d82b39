package middleware

import (
	"net/http"

	"github.com/mercata/storefront/services/user-service/internal/application/auth"
	"github.com/mercata/storefront/services/user-service/internal/domain"
	"github.com/mercata/storefront/services/user-service/internal/infrastructure/security"
	"github.com/mercata/storefront/services/user-service/internal/transport/http/response"
)

// Session authenticates requests from the session cookie. The verified
// account id lands in the request context for handlers downstream.
func Session(signer auth.TokenSigner) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := security.ReadSessionToken(r)
			if err != nil {
				response.Error(w, r, domain.ErrSessionMissing())
				return
			}

			claims, err := signer.VerifySessionToken(token)
			if err != nil {
				response.Error(w, r, err)
				return
			}

			ctx := WithUserID(r.Context(), claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
