// Package discount serves the pricing companion endpoints the catalog's
// discount and status attributes are resolved from.
package discount

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/storefront/backend/internal/application/dispatch"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// MaxAmount is the exclusive upper bound of a discount percentage
const MaxAmount = 100

// GetDiscountQuery reads the discount granted on a product
type GetDiscountQuery struct {
	ProductID int64 `json:"productId" validate:"gt=0"`
}

// GetStatusQuery reads the availability status of a product
type GetStatusQuery struct {
	ProductID int64 `json:"productId" validate:"gt=0"`
}

// DiscountResponse is the discount percentage of a product
type DiscountResponse struct {
	ProductID int64 `json:"productId"`
	Amount    int   `json:"amount"`
}

// StatusResponse is the availability status of a product
type StatusResponse struct {
	ProductID  int64  `json:"productId"`
	Status     int    `json:"status"`
	StatusName string `json:"statusName"`
}

// AmountSource picks the discount percentage of a product, in [0, MaxAmount)
type AmountSource func(productID int64) int

// StatusSource picks the availability status of a product
type StatusSource func(productID int64) catalog.ProductStatus

// RandomAmount draws a uniformly random percentage
func RandomAmount(int64) int {
	return rand.IntN(MaxAmount)
}

// RandomStatus draws Active or Inactive with equal probability
func RandomStatus(int64) catalog.ProductStatus {
	return catalog.ProductStatus(rand.IntN(2))
}

// Handlers serves the discount and status requests
type Handlers struct {
	amounts  AmountSource
	statuses StatusSource
}

// Option configures Handlers
type Option func(*Handlers)

// WithAmountSource replaces the random discount source
func WithAmountSource(src AmountSource) Option {
	return func(h *Handlers) {
		if src != nil {
			h.amounts = src
		}
	}
}

// WithStatusSource replaces the random status source
func WithStatusSource(src StatusSource) Option {
	return func(h *Handlers) {
		if src != nil {
			h.statuses = src
		}
	}
}

// NewHandlers creates the handlers with random sources unless overridden
func NewHandlers(opts ...Option) *Handlers {
	h := &Handlers{amounts: RandomAmount, statuses: RandomStatus}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterWith binds the discount and status requests to d
func (h *Handlers) RegisterWith(d *dispatch.Dispatcher) error {
	return errors.Join(
		dispatch.Register(d, h.GetDiscount, dispatch.StructRules[GetDiscountQuery]{}),
		dispatch.Register(d, h.GetStatus, dispatch.StructRules[GetStatusQuery]{}),
	)
}

// GetDiscount returns the discount of a product
func (h *Handlers) GetDiscount(_ context.Context, q GetDiscountQuery) (shared.Outcome[DiscountResponse], error) {
	amount := h.amounts(q.ProductID)
	if amount < 0 || amount >= MaxAmount {
		return shared.Outcome[DiscountResponse]{}, errors.New("discount source produced an amount outside [0, 100)")
	}
	return shared.Ok(DiscountResponse{ProductID: q.ProductID, Amount: amount}), nil
}

// GetStatus returns the availability status of a product
func (h *Handlers) GetStatus(_ context.Context, q GetStatusQuery) (shared.Outcome[StatusResponse], error) {
	status := h.statuses(q.ProductID)
	if !status.IsValid() {
		return shared.Outcome[StatusResponse]{}, errors.New("status source produced an unknown status")
	}
	return shared.Ok(StatusResponse{
		ProductID:  q.ProductID,
		Status:     int(status),
		StatusName: status.String(),
	}), nil
}
