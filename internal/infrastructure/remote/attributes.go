package remote

import (
	"context"
	"fmt"

	"github.com/storefront/backend/internal/domain/catalog"
)

// OwnerClient looks up product owners on the auth service
type OwnerClient struct {
	client *Client
}

// NewOwnerClient creates an OwnerClient
func NewOwnerClient(c *Client) *OwnerClient {
	return &OwnerClient{client: c}
}

// GetOwner returns the user with ownerID
func (o *OwnerClient) GetOwner(ctx context.Context, ownerID int64) (catalog.Owner, error) {
	return Invoke[catalog.Owner](ctx, o.client, ServiceAuth, fmt.Sprintf("/authentication/getuserbyid/%d", ownerID))
}

// DiscountClient looks up product discounts on the discount service
type DiscountClient struct {
	client *Client
}

// NewDiscountClient creates a DiscountClient
func NewDiscountClient(c *Client) *DiscountClient {
	return &DiscountClient{client: c}
}

// GetDiscount returns the discount of productID
func (d *DiscountClient) GetDiscount(ctx context.Context, productID int64) (catalog.Discount, error) {
	return Invoke[catalog.Discount](ctx, d.client, ServiceDiscount, fmt.Sprintf("/discount/%d", productID))
}

// StatusClient looks up product availability on the status service
type StatusClient struct {
	client *Client
}

// NewStatusClient creates a StatusClient
func NewStatusClient(c *Client) *StatusClient {
	return &StatusClient{client: c}
}

type statusPayload struct {
	ProductID int64 `json:"productId"`
	Status    int   `json:"status"`
}

// GetStatus returns the status of productID
func (s *StatusClient) GetStatus(ctx context.Context, productID int64) (catalog.ProductStatus, error) {
	payload, err := Invoke[statusPayload](ctx, s.client, ServiceStatus, fmt.Sprintf("/status/%d", productID))
	if err != nil {
		return catalog.ProductStatusInactive, err
	}
	status := catalog.ProductStatus(payload.Status)
	if !status.IsValid() {
		return catalog.ProductStatusInactive, fmt.Errorf("status service returned unknown status %d", payload.Status)
	}
	return status, nil
}
