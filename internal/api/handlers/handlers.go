package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/hugh/plantnet/internal/api/response"
	"github.com/hugh/plantnet/internal/apperr"
	"github.com/hugh/plantnet/internal/database/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the subset of the user repository the handlers need.
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUserIfAbsent(ctx context.Context, user models.User) (*models.User, bool, error)
	ListUsersExcept(ctx context.Context, email string) ([]models.User, error)
	RequestRoleChange(ctx context.Context, email string) (models.UpdateResult, error)
	ApproveRole(ctx context.Context, email string, role models.Role) (models.UpdateResult, error)
}

type PlantStore interface {
	ListPlants(ctx context.Context) ([]models.Plant, error)
	ListPlantsBySeller(ctx context.Context, email string) ([]models.Plant, error)
	FindPlant(ctx context.Context, id primitive.ObjectID) (*models.Plant, error)
	CreatePlant(ctx context.Context, plant models.Plant) (*models.Plant, error)
	DeletePlant(ctx context.Context, id primitive.ObjectID, sellerEmail string) (models.DeleteResult, error)
	AdjustQuantity(ctx context.Context, id primitive.ObjectID, delta int64) (models.UpdateResult, error)
}

type OrderStore interface {
	CreateOrder(ctx context.Context, order models.Order) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (models.UpdateResult, error)
	DeleteOrder(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error)
}

type ReportStore interface {
	OrdersForCustomer(ctx context.Context, email string) ([]models.OrderView, error)
	OrdersForSeller(ctx context.Context, email string) ([]models.OrderView, error)
	AdminStats(ctx context.Context) (*models.AdminStats, error)
}

type validator interface {
	Validate() map[string]string
}

// decode reads a JSON body into v and validates it. It writes the error
// response itself and reports whether the handler should continue.
func decode(w http.ResponseWriter, r *http.Request, v validator) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		response.Error(w, apperr.BadRequest("invalid request body"))
		return false
	}
	if errors := v.Validate(); len(errors) > 0 {
		response.Validation(w, errors)
		return false
	}
	return true
}

func emailParam(r *http.Request) string {
	raw := chi.URLParam(r, "email")
	if email, err := url.PathUnescape(raw); err == nil {
		return email
	}
	return raw
}

// nonNil keeps empty result sets encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
