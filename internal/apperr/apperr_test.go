package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{Unauthenticated("no"), http.StatusUnauthorized},
		{Forbidden("no"), http.StatusForbidden},
		{NotFound("gone"), http.StatusNotFound},
		{MethodNotAllowed("no"), http.StatusMethodNotAllowed},
		{Conflict("dup"), http.StatusConflict},
		{Unavailable(errors.New("down")), http.StatusInternalServerError},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, From(tc.err).Status())
	}
}

func TestFromWrapsUnknownErrors(t *testing.T) {
	ae := From(errors.New("plain"))
	assert.Equal(t, KindInternal, ae.Kind)

	wrapped := fmt.Errorf("context: %w", NotFound("missing"))
	assert.Equal(t, KindNotFound, From(wrapped).Kind)
	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(wrapped, KindConflict))
}

func TestMessageFormatting(t *testing.T) {
	err := Validation("field %s is bad", "email")
	assert.Equal(t, "field email is bad", From(err).Message)
}
