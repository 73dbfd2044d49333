package identity

import (
	"fmt"
	"strings"
)

// Role is the authorization level of a user
type Role int

const (
	RoleUser    Role = 0
	RoleManager Role = 1
	RoleAdmin   Role = 2
)

// String returns the role name carried in tokens and responses
func (r Role) String() string {
	switch r {
	case RoleManager:
		return "Manager"
	case RoleAdmin:
		return "Admin"
	default:
		return "User"
	}
}

// IsValid checks if the role is a known value
func (r Role) IsValid() bool {
	return r >= RoleUser && r <= RoleAdmin
}

// ParseRole parses a role name, case-insensitively
func ParseRole(name string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "user":
		return RoleUser, nil
	case "manager":
		return RoleManager, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return RoleUser, fmt.Errorf("unknown role %q", name)
	}
}
