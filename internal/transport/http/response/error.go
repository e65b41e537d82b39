package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mercata/storefront/services/user-service/internal/domain"
	"github.com/mercata/storefront/services/user-service/internal/logger"
)

type errorBody struct {
	Error string `json:"error"`
}

// Error maps a domain error onto an HTTP response with an {"error": "..."}
// body. Unknown errors become 500 with a generic message so internals never
// leak to clients.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		derr = domain.ErrInternal(err)
	}

	status := statusFromKind(derr.Kind)
	if status >= http.StatusInternalServerError {
		log := logger.WithCtx(r.Context())
		log.Error().
			Err(err).
			Str("code", derr.Code).
			Str("path", r.URL.Path).
			Msg("request failed")
	}

	msg := derr.Message
	if status >= http.StatusInternalServerError {
		msg = "internal server error"
	}

	writeJSON(w, status, errorBody{Error: msg})
}

func statusFromKind(kind domain.ErrKind) int {
	switch kind {
	case domain.KindValidation,
		domain.KindCredentials,
		domain.KindLocked,
		domain.KindConflict,
		domain.KindForbidden:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
