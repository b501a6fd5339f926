package model

import (
	"time"
)

const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleModerator
}

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"` // Not exposed
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}
