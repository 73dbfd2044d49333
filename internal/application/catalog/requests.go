// Package catalog holds the product use cases served through the dispatcher.
package catalog

import (
	"github.com/shopspring/decimal"
)

// GetProductByIDQuery reads one product with its remote attributes resolved
type GetProductByIDQuery struct {
	ID int64 `json:"id" validate:"gt=0"`
}

// ListProductsQuery reads every product
type ListProductsQuery struct{}

// GetProductOwnerQuery reads the owner of a product from the identity service
type GetProductOwnerQuery struct {
	ID int64 `json:"id" validate:"gt=0"`
}

// AddProductCommand creates a product. New products start with no stock.
type AddProductCommand struct {
	OwnerID     int64           `json:"ownerId" validate:"gt=0"`
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"basePrice"`
}

// UpdateProductCommand replaces a product's own fields. An empty StatusName
// keeps the stored status.
type UpdateProductCommand struct {
	ID          int64           `json:"id" validate:"gt=0"`
	OwnerID     int64           `json:"ownerId" validate:"gt=0"`
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	Stock       int             `json:"stock" validate:"gte=0"`
	StatusName  string          `json:"statusName"`
}

// DeleteProductCommand removes a product
type DeleteProductCommand struct {
	ID int64 `json:"id" validate:"gt=0"`
}
