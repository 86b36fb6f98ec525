package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	svc, err := NewJwtToken("secret-key")
	require.NoError(t, err)

	var identity *Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, _ = GetIdentity(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := AuthMiddleware(svc)(next)

	t.Run("Success - Identity Attached", func(t *testing.T) {
		token, err := svc.Create("user-uuid", "a@b.com")
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/api/v1/games", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, identity)
		assert.Equal(t, "user-uuid", identity.UserID)
		assert.Equal(t, "a@b.com", identity.Email)
	})

	t.Run("Failure - Missing Header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/games", nil)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Failure - Malformed Header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/games", nil)
		r.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Failure - Expired Token", func(t *testing.T) {
		expired := AuthClaims{
			UserID: "user-uuid",
			StandardClaims: jwt.StandardClaims{
				ExpiresAt: time.Now().Add(-time.Minute).Unix(),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString([]byte("secret-key"))
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/api/v1/games", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Failure - Tampered Token", func(t *testing.T) {
		other, err := NewJwtToken("other-secret")
		require.NoError(t, err)
		token, err := other.Create("user-uuid", "a@b.com")
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/api/v1/games", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
