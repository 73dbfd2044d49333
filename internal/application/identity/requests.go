// Package identity holds the authentication and user management use cases.
package identity

// RegisterCommand creates a User account and signs it in
type RegisterCommand struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,max=72"`
}

// LoginQuery exchanges credentials for an access token
type LoginQuery struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ListUsersQuery reads every user
type ListUsersQuery struct{}

// GetUserByIDQuery reads one user
type GetUserByIDQuery struct {
	ID int64 `json:"id" validate:"gt=0"`
}

// GetUserSummaryQuery reads the public profile other services attach to
// their own records
type GetUserSummaryQuery struct {
	ID int64 `json:"id" validate:"gt=0"`
}

// AddUserCommand creates a user. Role defaults to User.
type AddUserCommand struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,max=72"`
	Role      string `json:"role" validate:"omitempty,oneof=User Manager Admin"`
}

// UpdateUserCommand replaces a user's profile and role. An empty password
// keeps the current one.
type UpdateUserCommand struct {
	ID        int64  `json:"id" validate:"gt=0"`
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"omitempty,max=72"`
	Role      string `json:"role" validate:"required,oneof=User Manager Admin"`
}

// DeleteUserCommand removes a user
type DeleteUserCommand struct {
	ID int64 `json:"id" validate:"gt=0"`
}
