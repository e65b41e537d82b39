package response

import (
	"encoding/json"
	"net/http"

	"github.com/mercata/storefront/services/user-service/internal/domain"
)

// DecodeJSON reads the request body into dst. Unknown fields are ignored so
// older clients can keep sending extras; malformed bodies are a validation
// error, not a 500.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return domain.ErrInvalidJSON(err)
	}
	return nil
}
