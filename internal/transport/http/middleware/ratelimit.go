package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/mercata/storefront/services/user-service/internal/infrastructure/redis"
	"github.com/mercata/storefront/services/user-service/internal/logger"
	"github.com/mercata/storefront/services/user-service/internal/transport/http/response"
)

// RateLimit throttles a route per client IP over a fixed window. It fails
// open: a broken or absent Redis must never block logins.
func RateLimit(limiter *redis.FixedWindowLimiter, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "rl:" + r.URL.Path + ":" + clientIP(r)

			d, err := limiter.AllowFixedWindow(r.Context(), key, limit, window)
			if err != nil {
				log := logger.WithCtx(r.Context())
				log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))

			if !d.Allowed {
				retry := int(d.RetryAfter.Seconds())
				if retry < 1 {
					retry = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				response.JSON(w, http.StatusTooManyRequests, map[string]string{
					"error": "too many requests",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
