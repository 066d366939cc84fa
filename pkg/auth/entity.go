package auth

import (
	"time"

	"github.com/google/uuid"
)

// Role enumerates the access levels a user can hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a domain entity representing a registered customer or administrator.
// Email is stored normalized (lower-cased, trimmed), so email identity is
// case-insensitive everywhere, not just at login.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Role         Role
	Active       bool
	CreatedAt    time.Time
}
