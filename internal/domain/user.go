package domain

import (
	"context"
	"time"
)

type ContextKey string

const UserContextKey ContextKey = "user"

const RoleAdmin = "admin"

type User struct {
	ID        string    `json:"id"` // UUID
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserDirectory is the read-side lookup the order core needs: resolve a user
// id for ownership checks and role gating. Account lifecycle lives elsewhere.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*User, error)
}
