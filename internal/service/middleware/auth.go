package middleware

import (
	"context"
	"net/http"
	"strings"

	"gamecatalog/internal/service/response"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the verified caller attached to the request context by
// AuthMiddleware.
type Identity struct {
	UserID string
	Email  string
}

func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func GetIdentity(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*Identity)
	return identity, ok
}

// AuthMiddleware enforces the bearer-token contract for protected routes:
// a missing token is 401, an invalid or expired one is 403. Validation
// happens before any store query is issued.
func AuthMiddleware(jwtToken JwtTokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				_ = response.WriteError(w, http.StatusUnauthorized, "access token required", nil)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				_ = response.WriteError(w, http.StatusUnauthorized, "access token required", nil)
				return
			}

			claims, err := jwtToken.Validate(parts[1])
			if err != nil {
				_ = response.WriteError(w, http.StatusForbidden, "invalid or expired token", nil)
				return
			}

			ctx := WithIdentity(r.Context(), &Identity{UserID: claims.UserID, Email: claims.Email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
