package middleware

import (
	"context"
	"net/http"

	"github.com/hugh/plantnet/internal/api/response"
	"github.com/hugh/plantnet/internal/apperr"
	"github.com/hugh/plantnet/internal/database/models"
)

// RoleLookup finds the stored user behind an authenticated email.
type RoleLookup interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// RequireRole must run after Auth. The caller's role is read from the store
// on every request so role changes apply immediately.
func RequireRole(users RoleLookup, roles ...models.Role) func(http.Handler) http.Handler {
	forbidden := apperr.Forbidden("forbidden access")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := GetUserEmail(r.Context())
			if email == "" {
				response.Error(w, forbidden)
				return
			}

			user, err := users.FindUserByEmail(r.Context(), email)
			if err != nil {
				if apperr.KindOf(err) == apperr.KindNotFound {
					response.Error(w, forbidden)
					return
				}
				response.Error(w, err)
				return
			}

			for _, role := range roles {
				if user.Role.Is(role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Error(w, forbidden)
		})
	}
}

func RequireAdmin(users RoleLookup) func(http.Handler) http.Handler {
	return RequireRole(users, models.RoleAdmin)
}

func RequireSeller(users RoleLookup) func(http.Handler) http.Handler {
	return RequireRole(users, models.RoleSeller)
}
