package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/elevennote/elevennote/internal/config"
	"github.com/elevennote/elevennote/internal/services"
	"github.com/elevennote/elevennote/internal/utils"
)

type contextKey string

const userIDKey contextKey = "userID"

// WithUserID stores an authenticated user id on the context. Only the auth
// middleware (and tests) should call this.
func WithUserID(ctx context.Context, id services.UserID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// GetUserID returns the authenticated user id placed on the context by
// AuthMiddleware.
func GetUserID(ctx context.Context) (services.UserID, bool) {
	id, ok := ctx.Value(userIDKey).(services.UserID)
	return id, ok
}

// AuthMiddleware verifies the bearer token and resolves the configured id
// claim into a numeric user id before any protected handler runs. Handlers
// downstream trust this id unconditionally.
func AuthMiddleware(next http.Handler) http.Handler {
	jwtCfg := config.Envs.JWT

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenStr == "" {
			utils.JSONError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtCfg.Secret), nil
		}, jwt.WithIssuer(jwtCfg.Issuer), jwt.WithAudience(jwtCfg.Audience))

		if err != nil || !token.Valid {
			utils.JSONError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.JSONError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		userID, ok := numericClaim(claims, jwtCfg.IDClaimKey)
		if !ok {
			utils.JSONError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := WithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// numericClaim extracts a positive integer claim. JSON numbers decode as
// float64; anything else means the token was not minted by our issuer.
func numericClaim(claims jwt.MapClaims, key string) (services.UserID, bool) {
	raw, ok := claims[key].(float64)
	if !ok || raw <= 0 || raw != float64(uint(raw)) {
		return 0, false
	}
	return services.UserID(raw), true
}
