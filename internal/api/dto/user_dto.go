package dto

import (
	"time"

	"github.com/emberworks/studio-portal/internal/repository"
)

// AdminCreateUserRequest payload for administrative account creation.
type AdminCreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   string `json:"roleId"`
}

// UserResponse is the listing shape: no password hash, role resolved.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromUserWithRole converts the repository listing row.
func FromUserWithRole(item repository.UserWithRole) UserResponse {
	return UserResponse{
		ID:        item.User.ID,
		Email:     item.User.Email,
		Role:      item.RoleName,
		CreatedAt: item.User.CreatedAt,
	}
}
