package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"retailgenie/internal/apperr"
	"retailgenie/internal/domain"
	"retailgenie/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	users := repository.NewUserRepository(newTestStore(t))
	return NewAuthService(users, testSecret, "rg_")
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Name:         "Ana",
		Email:        "ana@example.com",
		Password:     "secret123",
		BusinessName: "Ana's Shop",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	token, user, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, domain.RoleRetailer, user.Role)
	assert.True(t, user.Active)

	token, user, err = svc.Login(ctx, "ana@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	require.NotNil(t, user.LastLogin)

	principal, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.UserID)
	assert.Equal(t, domain.RoleRetailer, principal.Role)
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"missing name", func(in *RegisterInput) { in.Name = " " }},
		{"missing business name", func(in *RegisterInput) { in.BusinessName = "" }},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"short password", func(in *RegisterInput) { in.Password = "12345" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRegistration()
			tc.mutate(&in)
			_, _, err := svc.Register(ctx, in)
			assert.True(t, apperr.IsKind(err, apperr.KindValidation))
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, validRegistration())
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, _, errUnknown := svc.Login(ctx, "nobody@example.com", "secret123")
	_, _, errWrongPw := svc.Login(ctx, "ana@example.com", "wrong-password")

	require.Error(t, errUnknown)
	require.Error(t, errWrongPw)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
	assert.True(t, apperr.IsKind(errUnknown, apperr.KindUnauthenticated))
	assert.True(t, apperr.IsKind(errWrongPw, apperr.KindUnauthenticated))
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	svc := newAuthService(t)

	token, _, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = svc.VerifyToken(token + "x")
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))

	other := NewAuthService(repository.NewUserRepository(newTestStore(t)), "different-secret", "rg_")
	_, err = other.VerifyToken(token)
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))
}

func TestVerifyAPIKey(t *testing.T) {
	svc := newAuthService(t)

	principal, err := svc.VerifyAPIKey("rg_abc123")
	require.NoError(t, err)
	assert.Equal(t, "api:abc123", principal.UserID)
	assert.Equal(t, domain.RoleAPIKey, principal.Role)

	_, err = svc.VerifyAPIKey("sk_abc123")
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))

	_, err = svc.VerifyAPIKey("rg_")
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))
}

func TestRefreshMintsVerifiableToken(t *testing.T) {
	svc := newAuthService(t)

	token, err := svc.Refresh(Principal{UserID: "u1", Email: "a@b.c", Role: domain.RoleRetailer})
	require.NoError(t, err)

	principal, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", principal.UserID)
}

func TestProperty_PublicUserNeverCarriesPasswordMaterial(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("registered users serialise without password fields", prop.ForAll(
		func(password string) bool {
			svc := NewAuthService(repository.NewUserRepository(newTestStore(t)), testSecret, "rg_")

			in := validRegistration()
			in.Password = password
			_, user, err := svc.Register(context.Background(), in)
			if err != nil {
				return false
			}

			raw, err := json.Marshal(user)
			if err != nil {
				return false
			}
			body := strings.ToLower(string(raw))
			return !strings.Contains(body, "password") && !strings.Contains(body, password)
		},
		gen.RegexMatch(`pw-[0-9]{8,16}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
