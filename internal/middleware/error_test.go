package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"retailgenie/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRespondWithJSONInjectsSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithJSON(w, http.StatusCreated, map[string]interface{}{"token": "abc"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "abc", body["token"])
}

func TestRespondWithErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperr.Validation("bad input"), http.StatusBadRequest},
		{"unauthenticated", apperr.Unauthenticated("who are you"), http.StatusUnauthorized},
		{"forbidden", apperr.Forbidden("not yours"), http.StatusForbidden},
		{"not found", apperr.NotFound("gone"), http.StatusNotFound},
		{"conflict", apperr.Conflict("dup"), http.StatusConflict},
		{"internal", apperr.Internal(nil), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			RespondWithError(w, tc.err)

			assert.Equal(t, tc.status, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["error"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestInternalDetailNeverLeaks(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithError(w, apperr.Internal(assert.AnError))

	body := decodeBody(t, w)
	assert.Equal(t, "internal server error", body["message"])
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestNotFoundBodyListsEndpoints(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/nope", nil)
	NotFoundHandler()(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	endpoints, ok := body["endpoints"].([]interface{})
	require.True(t, ok)
	assert.Contains(t, endpoints, "/api/v1/health")
}

func TestMethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/api/v1/health", nil)
	MethodNotAllowedHandler()(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
}

func TestRecoveryConvertsPanics(t *testing.T) {
	handler := Recovery(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, w.Body.String(), "boom")
}
