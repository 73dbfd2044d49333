package catalog

import (
	"context"

	"github.com/storefront/backend/internal/domain/shared"
)

// ProductRepository is the storage port for products.
//
// Products returned by GetByID and GetAll come with their owner, discount and
// status slots attached. Add and Update return the product re-read from
// storage, slots included.
type ProductRepository interface {
	shared.Repository[*Product]
}

// OwnerLookup resolves a product owner from the identity service
type OwnerLookup interface {
	GetOwner(ctx context.Context, ownerID int64) (Owner, error)
}

// DiscountLookup resolves a product discount from the discount service
type DiscountLookup interface {
	GetDiscount(ctx context.Context, productID int64) (Discount, error)
}

// StatusLookup resolves a product availability status
type StatusLookup interface {
	GetStatus(ctx context.Context, productID int64) (ProductStatus, error)
}
