package auth

import "time"

// User is a worker account. Role/permission administration lives elsewhere;
// the engine only needs identity for claims.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Role string

const (
	RoleGuard Role = "guard"
	RoleAdmin Role = "admin"
)
