package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleCustomer Role = "Customer"
	RoleSeller   Role = "Seller"
	RoleAdmin    Role = "Admin"
)

// ParseRole accepts any casing ("seller", "SELLER") and returns the canonical role.
func ParseRole(s string) (Role, bool) {
	for _, r := range []Role{RoleCustomer, RoleSeller, RoleAdmin} {
		if strings.EqualFold(s, string(r)) {
			return r, true
		}
	}
	return "", false
}

// Is compares case-insensitively; older records store roles in lowercase.
func (r Role) Is(other Role) bool {
	return strings.EqualFold(string(r), string(other))
}

type UserStatus string

const (
	UserStatusNone      UserStatus = ""
	UserStatusRequested UserStatus = "Requested"
	UserStatusVerified  UserStatus = "Verified"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Role      Role               `bson:"role" json:"role"`
	Status    UserStatus         `bson:"status,omitempty" json:"status,omitempty"`
	Timestamp int64              `bson:"timestamp" json:"timestamp"` // unix millis
}
