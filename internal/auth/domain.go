package auth

import "time"

// User represents an authenticated account. The shop runs with a single
// seeded owner account but nothing prevents adding more users.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RoleOwner is the only role in use today.
const RoleOwner = "owner"
