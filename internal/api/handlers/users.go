package handlers

import (
	"net/http"

	"github.com/hugh/plantnet/internal/api/dto"
	"github.com/hugh/plantnet/internal/api/response"
	"github.com/hugh/plantnet/internal/database/models"
	"github.com/hugh/plantnet/internal/tasks"
)

type UserHandler struct {
	users    UserStore
	notifier *tasks.Notifier
}

func NewUserHandler(users UserStore, notifier *tasks.Notifier) *UserHandler {
	return &UserHandler{users: users, notifier: notifier}
}

// GetRole handles GET /users/role/{email}
func (h *UserHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.FindUserByEmail(r.Context(), emailParam(r))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.RoleResponse{Role: user.Role})
}

// List handles GET /all-user/{email}. The caller is left out of the list.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsersExcept(r.Context(), emailParam(r))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, nonNil(users))
}

// Create handles POST /users/{email}. Signing in twice returns the stored
// record with 200 instead of inserting again.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if !decode(w, r, &req) {
		return
	}

	user, created, err := h.users.CreateUserIfAbsent(r.Context(), models.User{
		Email: emailParam(r),
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.JSON(w, status, user)
}

// RequestRole handles PATCH /users/{email}
func (h *UserHandler) RequestRole(w http.ResponseWriter, r *http.Request) {
	email := emailParam(r)
	res, err := h.users.RequestRoleChange(r.Context(), email)
	if err != nil {
		response.Error(w, err)
		return
	}

	h.notifier.RoleRequested(r.Context(), email)
	response.JSON(w, http.StatusOK, res)
}

// ApproveRole handles PATCH /user/role/{email}
func (h *UserHandler) ApproveRole(w http.ResponseWriter, r *http.Request) {
	var req dto.ApproveRoleRequest
	if !decode(w, r, &req) {
		return
	}
	role, _ := models.ParseRole(req.Role)

	res, err := h.users.ApproveRole(r.Context(), emailParam(r), role)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, res)
}
