package identity

import (
	"time"

	"github.com/storefront/backend/internal/domain/identity"
)

// AuthenticationResponse is returned by register and login
type AuthenticationResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Token     string `json:"token"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	CreatedAtUTC time.Time `json:"createdAtUtc"`
}

// UserSummaryResponse is the public profile of a user
type UserSummaryResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// ToUserResponse converts a domain user; the password hash is never exposed
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Role:         u.Role.String(),
		CreatedAtUTC: u.CreatedAtUTC,
	}
}

// ToUserResponses converts a list of domain users
func ToUserResponses(users []*identity.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = ToUserResponse(u)
	}
	return out
}

func toSummary(u *identity.User) UserSummaryResponse {
	return UserSummaryResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role.String(),
	}
}

func toAuthentication(u *identity.User, token string) AuthenticationResponse {
	return AuthenticationResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role.String(),
		Token:     token,
	}
}
