package middleware

import (
	"context"
	"net/http"

	"github.com/hugh/plantnet/internal/api/response"
	"github.com/hugh/plantnet/internal/apperr"
	"github.com/hugh/plantnet/internal/auth"
)

type contextKey string

const (
	UserEmailKey contextKey = "user_email"
	ClaimsKey    contextKey = "claims"
	RequestIDKey contextKey = "request_id"
)

// TokenCookie carries the session token.
const TokenCookie = "token"

var errUnauthorized = apperr.Unauthorized("unauthorized access")

// Auth lets a request through only with a valid session cookie and stores
// the verified claims in its context. Everything that reads the caller's
// email relies on having passed through here.
func Auth(tokens auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(TokenCookie)
			if err != nil || cookie.Value == "" {
				response.Error(w, errUnauthorized)
				return
			}

			claims, err := tokens.Verify(cookie.Value)
			if err != nil {
				response.Error(w, errUnauthorized)
				return
			}

			ctx := WithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithClaims attaches verified claims to ctx.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, ClaimsKey, claims)
	return context.WithValue(ctx, UserEmailKey, claims.Email)
}

func GetClaims(ctx context.Context) *auth.Claims {
	if claims, ok := ctx.Value(ClaimsKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

func GetUserEmail(ctx context.Context) string {
	if email, ok := ctx.Value(UserEmailKey).(string); ok {
		return email
	}
	return ""
}
