package catalog

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct(7, "  Keyboard ", "mechanical", 3, decimal.NewFromInt(100))
		require.NoError(t, err)

		assert.True(t, product.IsTransient())
		assert.Equal(t, int64(7), product.OwnerID)
		assert.Equal(t, "Keyboard", product.Name)
		assert.Equal(t, "mechanical", product.Description)
		assert.Equal(t, 3, product.Stock)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, ProductStatusInactive, product.StoredStatus)
		assert.Equal(t, time.UTC, product.CreatedAtUTC.Location())
		assert.True(t, product.Discount(context.Background()).IsFailed())
	})

	tests := []struct {
		name    string
		ownerID int64
		pname   string
		stock   int
		price   decimal.Decimal
		field   string
	}{
		{"owner id must be positive", 0, "Keyboard", 0, decimal.Zero, "ownerId"},
		{"name cannot be empty", 1, "   ", 0, decimal.Zero, "name"},
		{"name cannot exceed limit", 1, strings.Repeat("x", ProductNameMaxLength+1), 0, decimal.Zero, "name"},
		{"stock cannot be negative", 1, "Keyboard", -1, decimal.Zero, "stock"},
		{"price cannot be negative", 1, "Keyboard", 0, decimal.NewFromInt(-1), "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct(tt.ownerID, tt.pname, "", tt.stock, tt.price)
			require.Error(t, err)

			var domainErr *shared.Error
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, shared.KindValidation, domainErr.Kind)
			assert.Equal(t, tt.field, domainErr.Field)
		})
	}

	t.Run("name at the limit is accepted", func(t *testing.T) {
		_, err := NewProduct(1, strings.Repeat("x", ProductNameMaxLength), "", 0, decimal.Zero)
		assert.NoError(t, err)
	})
}

func TestProduct_Update(t *testing.T) {
	product, err := NewProduct(1, "Keyboard", "", 1, decimal.NewFromInt(10))
	require.NoError(t, err)

	require.NoError(t, product.Update(2, "Mouse", "wireless", 5, decimal.NewFromInt(20)))
	assert.Equal(t, int64(2), product.OwnerID)
	assert.Equal(t, "Mouse", product.Name)

	err = product.Update(2, "", "wireless", 5, decimal.NewFromInt(20))
	require.Error(t, err)
	assert.Equal(t, "Mouse", product.Name)
}

func TestProduct_SetStoredStatus(t *testing.T) {
	product, err := NewProduct(1, "Keyboard", "", 1, decimal.NewFromInt(10))
	require.NoError(t, err)

	require.NoError(t, product.SetStoredStatus(ProductStatusActive))
	assert.Equal(t, ProductStatusActive, product.StoredStatus)
	assert.Error(t, product.SetStoredStatus(ProductStatus(5)))
}

func TestApplyDiscount(t *testing.T) {
	tests := []struct {
		price    string
		percent  int
		expected string
	}{
		{"100", 0, "100"},
		{"100", 25, "75"},
		{"100", 100, "0"},
		{"19.99", 10, "17.99"},
		{"0", 50, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.price+"_"+tt.expected, func(t *testing.T) {
			got := ApplyDiscount(decimal.RequireFromString(tt.price), tt.percent)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)), "got %s", got)
		})
	}
}

func newStoredProduct(attrs Attributes) *Product {
	return Reconstitute(1, 7, "Keyboard", "mechanical", 3, decimal.NewFromInt(200), ProductStatusActive,
		time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), attrs)
}

func TestProduct_FinalPrice(t *testing.T) {
	t.Run("applies resolved discount", func(t *testing.T) {
		var calls atomic.Int32
		product := newStoredProduct(Attributes{
			Discount: shared.NewRemoteAttribute("discount:1", DiscountDependency, func(ctx context.Context) (Discount, error) {
				calls.Add(1)
				return Discount{ProductID: 1, Amount: 15}, nil
			}),
		})

		first := product.FinalPrice(context.Background())
		second := product.FinalPrice(context.Background())

		require.True(t, first.IsOk())
		assert.True(t, first.Value().Equal(decimal.NewFromInt(170)))
		assert.True(t, second.Value().Equal(first.Value()))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("failed discount fails final price without a default", func(t *testing.T) {
		product := newStoredProduct(Attributes{
			Discount: shared.NewRemoteAttribute("discount:1", DiscountDependency, func(ctx context.Context) (Discount, error) {
				return Discount{}, context.DeadlineExceeded
			}),
		})

		out := product.FinalPrice(context.Background())
		require.True(t, out.IsFailed())
		require.Len(t, out.Errors(), 1)
		assert.Equal(t, shared.KindUnreachableDependency, out.Errors()[0].Kind)
		assert.True(t, out.Value().IsZero())

		// own fields survive the failed read
		assert.Equal(t, "Keyboard", product.Name)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(200)))
	})

	t.Run("missing slot is a generic failure", func(t *testing.T) {
		product := newStoredProduct(Attributes{})
		out := product.FinalPrice(context.Background())
		require.True(t, out.IsFailed())
		assert.True(t, out.HasKind(shared.KindGeneric))
	})
}

func TestProduct_SlotsAreIndependent(t *testing.T) {
	var ownerCalls, statusCalls atomic.Int32
	product := newStoredProduct(Attributes{
		Owner: shared.NewRemoteAttribute("owner:7", OwnerDependency, func(ctx context.Context) (Owner, error) {
			ownerCalls.Add(1)
			return Owner{ID: 7, FirstName: "Ada", LastName: "Lovelace"}, nil
		}),
		Discount: shared.NewRemoteAttribute("discount:1", DiscountDependency, func(ctx context.Context) (Discount, error) {
			return Discount{}, errors.New("connection refused")
		}),
		Status: shared.NewRemoteAttribute("status:1", StatusDependency, func(ctx context.Context) (ProductStatus, error) {
			statusCalls.Add(1)
			return ProductStatusActive, nil
		}),
	})

	assert.True(t, product.FinalPrice(context.Background()).IsFailed())

	owner := product.Owner(context.Background())
	require.True(t, owner.IsOk())
	assert.Equal(t, "Ada Lovelace", owner.Value().FullName())
	assert.Equal(t, int32(1), ownerCalls.Load())
	assert.Equal(t, int32(0), statusCalls.Load())

	status := product.Status(context.Background())
	require.True(t, status.IsOk())
	assert.Equal(t, "Active", status.Value().String())
}

func TestParseProductStatus(t *testing.T) {
	s, err := ParseProductStatus("Active")
	require.NoError(t, err)
	assert.Equal(t, ProductStatusActive, s)

	s, err = ParseProductStatus(" inactive ")
	require.NoError(t, err)
	assert.Equal(t, ProductStatusInactive, s)

	_, err = ParseProductStatus("discontinued")
	assert.Error(t, err)
}
