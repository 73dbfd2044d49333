package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductNameMaxLength is the longest product name accepted
const ProductNameMaxLength = 255

// Remote dependency names used in failure messages
const (
	OwnerDependency    = "Auth Service"
	DiscountDependency = "Discount Service"
	StatusDependency   = "Status Service"
)

// ProductStatus represents the availability status of a product
type ProductStatus int

const (
	ProductStatusInactive ProductStatus = 0
	ProductStatusActive   ProductStatus = 1
)

// String returns the status name exposed to API clients
func (s ProductStatus) String() string {
	if s == ProductStatusActive {
		return "Active"
	}
	return "Inactive"
}

// IsValid checks if the status is a known value
func (s ProductStatus) IsValid() bool {
	return s == ProductStatusInactive || s == ProductStatusActive
}

// ParseProductStatus parses a status name, case-insensitively
func ParseProductStatus(name string) (ProductStatus, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "active":
		return ProductStatusActive, nil
	case "inactive":
		return ProductStatusInactive, nil
	default:
		return ProductStatusInactive, fmt.Errorf("unknown product status %q", name)
	}
}

// Owner is the identity of the user who owns a product, as reported by the
// identity service
type Owner struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// FullName returns "first last"
func (o Owner) FullName() string {
	return strings.TrimSpace(o.FirstName + " " + o.LastName)
}

// Discount is the discount percentage granted on a product, as reported by
// the discount service
type Discount struct {
	ProductID int64 `json:"productId"`
	Amount    int   `json:"amount"`
}

// Attributes holds the remote attribute slots of a product
type Attributes struct {
	Owner    *shared.RemoteAttribute[Owner]
	Discount *shared.RemoteAttribute[Discount]
	Status   *shared.RemoteAttribute[ProductStatus]
}

// Product is the catalog aggregate root. Its own fields are stored locally;
// owner, discount and status are owned by other services and resolved lazily
// through the attached slots.
type Product struct {
	shared.BaseEntity
	OwnerID     int64
	Name        string
	Description string
	Stock       int
	Price       decimal.Decimal
	// StoredStatus is the status column as last written. Reads go through
	// the status slot.
	StoredStatus ProductStatus

	attrs Attributes
}

// NewProduct creates a new, unsaved product
func NewProduct(ownerID int64, name, description string, stock int, price decimal.Decimal) (*Product, error) {
	p := &Product{
		BaseEntity:   shared.NewBaseEntity(),
		StoredStatus: ProductStatusInactive,
	}
	if err := p.apply(ownerID, name, description, stock, price); err != nil {
		return nil, err
	}
	return p, nil
}

// Reconstitute rebuilds a stored product and attaches its remote attribute slots
func Reconstitute(
	id, ownerID int64,
	name, description string,
	stock int,
	price decimal.Decimal,
	storedStatus ProductStatus,
	createdAtUTC time.Time,
	attrs Attributes,
) *Product {
	return &Product{
		BaseEntity:   shared.BaseEntity{ID: id, CreatedAtUTC: createdAtUTC},
		OwnerID:      ownerID,
		Name:         name,
		Description:  description,
		Stock:        stock,
		Price:        price,
		StoredStatus: storedStatus,
		attrs:        attrs,
	}
}

// Update replaces the product's own fields
func (p *Product) Update(ownerID int64, name, description string, stock int, price decimal.Decimal) error {
	return p.apply(ownerID, name, description, stock, price)
}

// SetStoredStatus changes the status column written on the next save
func (p *Product) SetStoredStatus(status ProductStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("statusName", "statusName must be Active or Inactive")
	}
	p.StoredStatus = status
	return nil
}

func (p *Product) apply(ownerID int64, name, description string, stock int, price decimal.Decimal) error {
	if err := validateOwnerID(ownerID); err != nil {
		return err
	}
	if err := validateProductName(name); err != nil {
		return err
	}
	if stock < 0 {
		return shared.NewValidationError("stock", "stock cannot be negative")
	}
	if price.IsNegative() {
		return shared.NewValidationError("price", "price cannot be negative")
	}

	p.OwnerID = ownerID
	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.Stock = stock
	p.Price = price
	return nil
}

// Owner resolves the owner slot
func (p *Product) Owner(ctx context.Context) shared.Outcome[Owner] {
	return readSlot(ctx, p.attrs.Owner, "owner")
}

// Discount resolves the discount slot
func (p *Product) Discount(ctx context.Context) shared.Outcome[Discount] {
	return readSlot(ctx, p.attrs.Discount, "discount")
}

// Status resolves the status slot
func (p *Product) Status(ctx context.Context) shared.Outcome[ProductStatus] {
	return readSlot(ctx, p.attrs.Status, "status")
}

// FinalPrice is the price after the product's discount. It fails when the
// discount cannot be resolved; no default discount is ever assumed.
func (p *Product) FinalPrice(ctx context.Context) shared.Outcome[decimal.Decimal] {
	return shared.Map(p.Discount(ctx), func(d Discount) decimal.Decimal {
		return ApplyDiscount(p.Price, d.Amount)
	})
}

// ApplyDiscount computes price * (100 - percent) / 100, rounded to cents.
// percent is expected within [0, 100] and is not clamped.
func ApplyDiscount(price decimal.Decimal, percent int) decimal.Decimal {
	factor := decimal.NewFromInt(int64(100 - percent))
	return price.Mul(factor).Div(decimal.NewFromInt(100)).Round(2)
}

func readSlot[T any](ctx context.Context, slot *shared.RemoteAttribute[T], name string) shared.Outcome[T] {
	if slot == nil {
		return shared.Fail[T](shared.NewGenericError(fmt.Sprintf("The product %s attribute is not available.", name)))
	}
	return slot.Get(ctx)
}

func validateOwnerID(ownerID int64) error {
	if ownerID <= 0 {
		return shared.NewValidationError("ownerId", "ownerId must be greater than 0")
	}
	return nil
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("name", "name cannot be empty")
	}
	if utf8.RuneCountInString(name) > ProductNameMaxLength {
		return shared.NewValidationError("name", fmt.Sprintf("name cannot exceed %d characters", ProductNameMaxLength))
	}
	return nil
}
