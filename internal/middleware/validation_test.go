package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	"retailgenie/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginBody struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func TestDecodeAndValidateAcceptsValidBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{"email":"a@b.c","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")

	var body loginBody
	require.NoError(t, DecodeAndValidate(req, &body))
	assert.Equal(t, "a@b.c", body.Email)
}

func TestDecodeAndValidateAcceptsCharsetParameter(t *testing.T) {
	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{"email":"a@b.c","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	var body loginBody
	require.NoError(t, DecodeAndValidate(req, &body))
}

func TestDecodeAndValidateRejectsWrongContentType(t *testing.T) {
	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{"email":"a@b.c","password":"secret"}`))
	req.Header.Set("Content-Type", "text/plain")

	var body loginBody
	err := DecodeAndValidate(req, &body)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestDecodeAndValidateRejectsMalformedJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{"email": `))
	req.Header.Set("Content-Type", "application/json")

	var body loginBody
	err := DecodeAndValidate(req, &body)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Contains(t, err.Error(), "invalid JSON body")
}

func TestDecodeAndValidateNamesMissingField(t *testing.T) {
	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{"email":"a@b.c"}`))
	req.Header.Set("Content-Type", "application/json")

	var body loginBody
	err := DecodeAndValidate(req, &body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password is required")
}
