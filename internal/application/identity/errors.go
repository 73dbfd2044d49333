package identity

import (
	"github.com/storefront/backend/internal/domain/shared"
)

// Authentication failure messages
const (
	MsgEmailInUse      = "Given E-Mail address is already in use"
	MsgAccountNotFound = "Account with given e-mail address does not exist"
	MsgInvalidPassword = "Invalid Password"
)

// ErrEmailInUse is returned when an e-mail address belongs to another account
func ErrEmailInUse() *shared.Error {
	return shared.NewConflictError(MsgEmailInUse)
}

// ErrAccountNotFound is returned when logging in with an unknown e-mail address
func ErrAccountNotFound() *shared.Error {
	return shared.NewNotFoundError(MsgAccountNotFound)
}

// ErrInvalidPassword is returned when the password does not match
func ErrInvalidPassword() *shared.Error {
	return shared.NewUnauthorizedError(MsgInvalidPassword)
}
