package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercata/storefront/services/user-service/internal/domain"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestError_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", domain.ErrMissingField("email"), http.StatusBadRequest, "missing required field: email"},
		{"credentials", domain.ErrInvalidCredentials(), http.StatusBadRequest, "incorrect email or password"},
		{"locked", domain.ErrAccountStillLocked(42), http.StatusBadRequest, "please try again in 42 seconds"},
		{"conflict", domain.ErrEmailAlreadyExists(), http.StatusBadRequest, "email already registered"},
		{"forbidden", domain.ErrCannotDeleteAdmin(), http.StatusBadRequest, "cannot delete admin user"},
		{"unauthorized", domain.ErrSessionMissing(), http.StatusUnauthorized, "no session token provided"},
		{"not found", domain.ErrUserNotFound(), http.StatusNotFound, "user not found"},
		{"infrastructure", domain.ErrDBUnavailable(errors.New("conn refused")), http.StatusInternalServerError, "internal server error"},
		{"unwrapped", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)

			Error(rec, req, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tc.wantMsg, body["error"])
		})
	}
}

func TestError_DoesNotLeakInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth", nil)

	Error(rec, req, domain.ErrDBUnavailable(errors.New("pq: password authentication failed for user postgres")))

	assert.NotContains(t, rec.Body.String(), "postgres")
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestJSON_SetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"id": "u1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"))
}

func TestMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	Message(rec, http.StatusCreated, "registered successfully")

	body := decodeBody(t, rec)
	assert.Equal(t, "registered successfully", body["message"])
}

func TestDecodeJSON_Malformed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader("{not json"))

	var dst struct{ Email string }
	err := DecodeJSON(req, &dst)
	require.Error(t, err)
	assert.True(t, domain.Is(err, "invalid_json"))
}
