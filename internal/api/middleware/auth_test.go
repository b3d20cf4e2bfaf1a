package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hugh/plantnet/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_ValidToken_Cookie(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 24*time.Hour)
	email := "test@example.com"

	token, err := jwtService.Issue(email)
	require.NoError(t, err)

	handler := Auth(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, email, GetUserEmail(r.Context()))
		require.NotNil(t, GetClaims(r.Context()))
		assert.Equal(t, email, GetClaims(r.Context()).Email)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}))

	req := httptest.NewRequest("GET", "/plants/seller", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestAuth_NoCookie(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 24*time.Hour)

	handler := Auth(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be called")
	}))

	req := httptest.NewRequest("GET", "/order", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized access")
}

func TestAuth_BearerHeaderIsIgnored(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 24*time.Hour)
	token, err := jwtService.Issue("test@example.com")
	require.NoError(t, err)

	handler := Auth(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be called")
	}))

	req := httptest.NewRequest("GET", "/order", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_EmptyCookie(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 24*time.Hour)

	handler := Auth(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be called")
	}))

	req := httptest.NewRequest("GET", "/order", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: ""})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 24*time.Hour)

	handler := Auth(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be called")
	}))

	req := httptest.NewRequest("GET", "/order", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "invalid-token"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 1*time.Millisecond)

	token, err := jwtService.Issue("test@example.com")
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond)

	handler := Auth(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be called for expired token")
	}))

	req := httptest.NewRequest("GET", "/order", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_TokenFromDifferentSecret(t *testing.T) {
	jwtService1 := auth.NewJWTService("secret-1", 24*time.Hour)
	jwtService2 := auth.NewJWTService("secret-2", 24*time.Hour)

	token, err := jwtService1.Issue("test@example.com")
	require.NoError(t, err)

	handler := Auth(jwtService2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be called for token with different secret")
	}))

	req := httptest.NewRequest("GET", "/order", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUserEmail_NotInContext(t *testing.T) {
	assert.Equal(t, "", GetUserEmail(context.Background()))
	assert.Nil(t, GetClaims(context.Background()))
}

func TestWithClaims(t *testing.T) {
	ctx := WithClaims(context.Background(), &auth.Claims{Email: "a@x.com"})
	assert.Equal(t, "a@x.com", GetUserEmail(ctx))
}
