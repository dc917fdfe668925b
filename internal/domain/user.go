package domain

import "time"

// User is an account holder in the portal. Users are never hard-deleted;
// administrative updates are the only mutation path after registration.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	RoleID       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DefaultRoleName is assumed when a user's role reference cannot be
// resolved at login. It carries no permissions.
const DefaultRoleName = "User"
