package handler

import (
	"github.com/shopspring/decimal"
	appcatalog "github.com/storefront/backend/internal/application/catalog"
	appidentity "github.com/storefront/backend/internal/application/identity"
)

// AddProductRequest is the body of POST /products
type AddProductRequest struct {
	OwnerID     int64           `json:"ownerId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"basePrice"`
}

func (r AddProductRequest) command() appcatalog.AddProductCommand {
	return appcatalog.AddProductCommand{
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Description: r.Description,
		BasePrice:   r.BasePrice,
	}
}

// UpdateProductRequest is the body of PUT /products
type UpdateProductRequest struct {
	ID          int64           `json:"id"`
	OwnerID     int64           `json:"ownerId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	Stock       int             `json:"stock"`
	StatusName  string          `json:"statusName"`
}

func (r UpdateProductRequest) command() appcatalog.UpdateProductCommand {
	return appcatalog.UpdateProductCommand{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Description: r.Description,
		BasePrice:   r.BasePrice,
		Stock:       r.Stock,
		StatusName:  r.StatusName,
	}
}

// RegisterRequest is the body of POST /authentication/register
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (r RegisterRequest) command() appidentity.RegisterCommand {
	return appidentity.RegisterCommand{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Password:  r.Password,
	}
}

// LoginRequest is the body of POST /authentication/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) query() appidentity.LoginQuery {
	return appidentity.LoginQuery{Email: r.Email, Password: r.Password}
}

// AddUserRequest is the body of POST /users
type AddUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

func (r AddUserRequest) command() appidentity.AddUserCommand {
	return appidentity.AddUserCommand{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Password:  r.Password,
		Role:      r.Role,
	}
}

// UpdateUserRequest is the body of PUT /users
type UpdateUserRequest struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

func (r UpdateUserRequest) command() appidentity.UpdateUserCommand {
	return appidentity.UpdateUserCommand{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Password:  r.Password,
		Role:      r.Role,
	}
}
