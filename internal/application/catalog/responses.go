package catalog

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"golang.org/x/sync/errgroup"
)

// ProductResponse is a product with its remote attributes resolved
type ProductResponse struct {
	ID           int64           `json:"id"`
	OwnerID      int64           `json:"ownerId"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	StatusName   string          `json:"statusName"`
	Stock        int             `json:"stock"`
	Price        decimal.Decimal `json:"price"`
	Discount     int             `json:"discount"`
	FinalPrice   decimal.Decimal `json:"finalPrice"`
	CreatedAtUTC time.Time       `json:"createdAtUtc"`
}

// OwnerResponse is the owner of a product as reported by the identity service
type OwnerResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// ResolveProduct reads the discount and status slots of p concurrently and
// builds its response. Any slot failure fails the whole read.
func ResolveProduct(ctx context.Context, p *catalog.Product) shared.Outcome[ProductResponse] {
	var (
		discount shared.Outcome[catalog.Discount]
		status   shared.Outcome[catalog.ProductStatus]
	)

	var g errgroup.Group
	g.Go(func() error {
		discount = p.Discount(ctx)
		return nil
	})
	g.Go(func() error {
		status = p.Status(ctx)
		return nil
	})
	_ = g.Wait()

	if discount.IsFailed() || status.IsFailed() {
		return shared.Fail[ProductResponse](append(discount.Errors(), status.Errors()...)...)
	}

	// memoized: reuses the discount already fetched above
	final := p.FinalPrice(ctx)
	if final.IsFailed() {
		return shared.Recast[ProductResponse](final)
	}

	return shared.Ok(ProductResponse{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Name:         p.Name,
		Description:  p.Description,
		StatusName:   status.Value().String(),
		Stock:        p.Stock,
		Price:        p.Price,
		Discount:     discount.Value().Amount,
		FinalPrice:   final.Value(),
		CreatedAtUTC: p.CreatedAtUTC,
	})
}

func toOwnerResponse(o catalog.Owner) OwnerResponse {
	return OwnerResponse{
		ID:        o.ID,
		FirstName: o.FirstName,
		LastName:  o.LastName,
		Email:     o.Email,
		Role:      o.Role,
	}
}
