package middleware

import "net/http"

const defaultBodyLimit = 1 << 20 // 1 MiB

// BodyLimit caps request body size. Auth payloads are tiny; anything bigger
// is abuse.
func BodyLimit(max int64) func(http.Handler) http.Handler {
	if max <= 0 {
		max = defaultBodyLimit
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, max)
			next.ServeHTTP(w, r)
		})
	}
}
