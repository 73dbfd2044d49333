package identity

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/storefront/backend/internal/domain/shared"
)

// NameMaxLength is the longest first or last name accepted
const NameMaxLength = 50

// User is the identity aggregate root
type User struct {
	shared.BaseEntity
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         Role
}

// NewUser creates a new, unsaved user. passwordHash must already be hashed.
func NewUser(firstName, lastName, email, passwordHash string, role Role) (*User, error) {
	u := &User{BaseEntity: shared.NewBaseEntity()}
	if err := u.apply(firstName, lastName, email, role); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, shared.NewValidationError("password", "password cannot be empty")
	}
	u.PasswordHash = passwordHash
	return u, nil
}

// Update replaces the user's profile fields and role
func (u *User) Update(firstName, lastName, email string, role Role) error {
	return u.apply(firstName, lastName, email, role)
}

// ChangePasswordHash replaces the stored password hash
func (u *User) ChangePasswordHash(passwordHash string) error {
	if passwordHash == "" {
		return shared.NewValidationError("password", "password cannot be empty")
	}
	u.PasswordHash = passwordHash
	return nil
}

// FullName returns "first last"
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsAdmin reports whether the user holds the Admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) apply(firstName, lastName, email string, role Role) error {
	if err := validateName("firstName", firstName); err != nil {
		return err
	}
	if err := validateName("lastName", lastName); err != nil {
		return err
	}
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return err
	}
	if !role.IsValid() {
		return shared.NewValidationError("role", "role must be User, Manager or Admin")
	}

	u.FirstName = strings.TrimSpace(firstName)
	u.LastName = strings.TrimSpace(lastName)
	u.Email = normalized
	u.Role = role
	return nil
}

// NormalizeEmail validates an email address and returns it trimmed and lowercased
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", shared.NewValidationError("email", "email cannot be empty")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", shared.NewValidationError("email", "email is not a valid e-mail address")
	}
	return email, nil
}

func validateName(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return shared.NewValidationError(field, fmt.Sprintf("%s cannot be empty", field))
	}
	if utf8.RuneCountInString(value) > NameMaxLength {
		return shared.NewValidationError(field, fmt.Sprintf("%s cannot exceed %d characters", field, NameMaxLength))
	}
	return nil
}
