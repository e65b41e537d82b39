package middleware

import (
	"net/http"

	"github.com/google/uuid"

	appctx "github.com/mercata/storefront/services/user-service/internal/pkg/context"
)

const RequestIDHeader = "X-Request-Id"

// RequestID tags every request with an id for log correlation. An inbound
// header from a trusted proxy is kept; otherwise one is minted.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, reqID)
		ctx := appctx.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
