package persistence

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/cache"
)

// Attribute names, also used as cache key prefixes
const (
	AttributeOwner    = "owner"
	AttributeDiscount = "discount"
	AttributeStatus   = "status"
)

// AttributeBinder attaches remote attribute slots to loaded products.
// The status slot is served through the attribute cache.
type AttributeBinder struct {
	owners    catalog.OwnerLookup
	discounts catalog.DiscountLookup
	statuses  catalog.StatusLookup
	cache     *cache.AttributeCache
}

// NewAttributeBinder creates a binder. A nil attribute cache disables caching
// of the status attribute.
func NewAttributeBinder(
	owners catalog.OwnerLookup,
	discounts catalog.DiscountLookup,
	statuses catalog.StatusLookup,
	attributeCache *cache.AttributeCache,
) *AttributeBinder {
	return &AttributeBinder{owners: owners, discounts: discounts, statuses: statuses, cache: attributeCache}
}

// Bind builds fresh, unevaluated slots for one product
func (b *AttributeBinder) Bind(productID, ownerID int64) catalog.Attributes {
	if b == nil {
		return catalog.Attributes{}
	}
	var attrs catalog.Attributes
	if b.owners != nil {
		attrs.Owner = shared.NewRemoteAttribute(cache.AttributeKey(AttributeOwner, productID), catalog.OwnerDependency,
			func(ctx context.Context) (catalog.Owner, error) {
				return b.owners.GetOwner(ctx, ownerID)
			})
	}
	if b.discounts != nil {
		attrs.Discount = shared.NewRemoteAttribute(cache.AttributeKey(AttributeDiscount, productID), catalog.DiscountDependency,
			func(ctx context.Context) (catalog.Discount, error) {
				return b.discounts.GetDiscount(ctx, productID)
			})
	}
	if b.statuses != nil {
		attrs.Status = shared.NewRemoteAttribute(cache.AttributeKey(AttributeStatus, productID), catalog.StatusDependency,
			func(ctx context.Context) (catalog.ProductStatus, error) {
				if b.cache == nil {
					return b.statuses.GetStatus(ctx, productID)
				}
				return cache.ReadThrough(ctx, b.cache, AttributeStatus, productID, func(ctx context.Context) (catalog.ProductStatus, error) {
					return b.statuses.GetStatus(ctx, productID)
				})
			})
	}
	return attrs
}
