package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elevennote/elevennote/internal/config"
	"github.com/elevennote/elevennote/internal/services"
)

// signTestToken mints a token the way the issuer does, with overridable claims.
func signTestToken(t *testing.T, secret string, overrides map[string]any) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		config.Envs.JWT.IDClaimKey: uint(42),
		"Username":                 "alice",
		"iss":                      config.Envs.JWT.Issuer,
		"aud":                      config.Envs.JWT.Audience,
		"iat":                      jwt.NewNumericDate(now),
		"exp":                      jwt.NewNumericDate(now.Add(time.Hour)),
	}
	for k, v := range overrides {
		claims[k] = v
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authedHandler(t *testing.T, wantID services.UserID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserID(r.Context())
		require.True(t, ok, "user id should be on the context")
		assert.Equal(t, wantID, id)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_Success(t *testing.T) {
	token := signTestToken(t, config.Envs.JWT.Secret, nil)
	handler := AuthMiddleware(authedHandler(t, 42))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong signing key", "Bearer " + signTestToken(t, "some-other-secret", nil)},
		{"expired token", "Bearer " + signTestToken(t, config.Envs.JWT.Secret, map[string]any{
			"exp": jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		})},
		{"wrong issuer", "Bearer " + signTestToken(t, config.Envs.JWT.Secret, map[string]any{
			"iss": "someone-else",
		})},
		{"string id claim", "Bearer " + signTestToken(t, config.Envs.JWT.Secret, map[string]any{
			config.Envs.JWT.IDClaimKey: "forty-two",
		})},
		{"zero id claim", "Bearer " + signTestToken(t, config.Envs.JWT.Secret, map[string]any{
			config.Envs.JWT.IDClaimKey: 0,
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler should not run")
			})
			handler := AuthMiddleware(next)

			req := httptest.NewRequest(http.MethodGet, "/notes", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", tt.token)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthMiddleware_PassesPreflight(t *testing.T) {
	called := false
	handler := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/notes", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetUserID_AbsentFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetUserID(req.Context())
	assert.False(t, ok)
}
