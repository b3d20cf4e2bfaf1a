package dto

import (
	"github.com/hugh/plantnet/internal/api/validation"
	"github.com/hugh/plantnet/internal/database/models"
)

type TokenRequest struct {
	Email string `json:"email"`
}

func (r TokenRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.Email == "" {
		errors["email"] = "Email is required"
	} else if !validation.IsValidEmail(r.Email) {
		errors["email"] = "Invalid email format"
	}
	return errors
}

// CreateUserRequest is the profile a client sends after signing in.
// The email in the path wins over any email in the body.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Image string `json:"image,omitempty"`
}

func (r CreateUserRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if len(r.Name) > 100 {
		errors["name"] = "Name must be at most 100 characters"
	}
	if !validation.IsValidImageURL(r.Image) {
		errors["image"] = "Image must be an http(s) URL"
	}
	return errors
}

type ApproveRoleRequest struct {
	Role string `json:"role"`
}

func (r ApproveRoleRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.Role == "" {
		errors["role"] = "Role is required"
	} else if _, ok := models.ParseRole(r.Role); !ok {
		errors["role"] = "Role must be Customer, Seller or Admin"
	}
	return errors
}

type RoleResponse struct {
	Role models.Role `json:"role"`
}
