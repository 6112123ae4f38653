package auth

import "errors"

var (
	ErrInvalidToken          = errors.New("invalid token")
	ErrTokenExpired          = errors.New("token expired")
	ErrManagerAccessRequired = errors.New("manager access required")
)

// Role values carried in the access-token "role" claim. User management
// lives in the identity service; this module only reads the claim.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)
