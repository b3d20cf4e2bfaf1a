package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hugh/plantnet/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_Issue(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 24*time.Hour)
	email := "test@example.com"

	t.Run("issues valid token", func(t *testing.T) {
		token, err := jwtService.Issue(email)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := jwtService.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, email, claims.Email)
	})

	t.Run("token contains correct issuer and subject", func(t *testing.T) {
		token, err := jwtService.Issue(email)
		require.NoError(t, err)

		claims, err := jwtService.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "plantnet", claims.Issuer)
		assert.Equal(t, email, claims.Subject)
	})

	t.Run("requires an email", func(t *testing.T) {
		_, err := jwtService.Issue("")
		assert.Error(t, err)
	})
}

func TestJWTService_DefaultExpiry(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 0)
	assert.Equal(t, 365*24*time.Hour, jwtService.Expiry())

	token, err := jwtService.Issue("a@x.com")
	require.NoError(t, err)

	claims, err := jwtService.Verify(token)
	require.NoError(t, err)
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, auth.DefaultExpiry, lifetime)
}

func TestJWTService_Verify(t *testing.T) {
	email := "test@example.com"

	t.Run("rejects expired token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 1*time.Millisecond)

		token, err := jwtService.Issue(email)
		require.NoError(t, err)

		// numeric dates have second precision
		time.Sleep(1100 * time.Millisecond)

		_, err = jwtService.Verify(token)
		assert.Equal(t, auth.ErrExpiredToken, err)
	})

	t.Run("rejects tampered token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 24*time.Hour)

		token, err := jwtService.Issue(email)
		require.NoError(t, err)

		_, err = jwtService.Verify(token + "tampered")
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects token signed with different secret", func(t *testing.T) {
		jwtService1 := auth.NewJWTService("secret-1", 24*time.Hour)
		jwtService2 := auth.NewJWTService("secret-2", 24*time.Hour)

		token, err := jwtService1.Issue(email)
		require.NoError(t, err)

		_, err = jwtService2.Verify(token)
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects token without email", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = auth.NewJWTService("test-secret", time.Hour).Verify(signed)
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects none algorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"email": email})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = auth.NewJWTService("test-secret", time.Hour).Verify(signed)
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects malformed and empty tokens", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 24*time.Hour)

		for _, bad := range []string{"not-a-valid-jwt", ""} {
			_, err := jwtService.Verify(bad)
			assert.Equal(t, auth.ErrInvalidToken, err)
		}
	})
}
