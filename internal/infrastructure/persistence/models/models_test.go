package models

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductModel_RoundTrip(t *testing.T) {
	created := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	m := &ProductModel{
		BaseModel:   BaseModel{ID: 12, CreatedAtUTC: created},
		OwnerID:     3,
		Name:        "Lamp",
		Description: "Desk lamp",
		Stock:       4,
		Price:       decimal.RequireFromString("19.90"),
		Status:      1,
	}

	p := m.ToDomain(catalog.Attributes{})
	assert.Equal(t, int64(12), p.ID)
	assert.Equal(t, created, p.CreatedAtUTC)
	assert.Equal(t, catalog.ProductStatusActive, p.StoredStatus)
	assert.True(t, p.Status(context.Background()).IsFailed())

	back := ProductModelFromDomain(p)
	assert.Equal(t, m, back)
}

func TestProductModel_ToDomainAttachesSlots(t *testing.T) {
	m := &ProductModel{BaseModel: BaseModel{ID: 1}, OwnerID: 1, Name: "x", Price: decimal.NewFromInt(10)}

	p := m.ToDomain(catalog.Attributes{
		Discount: shared.ResolvedAttribute("discount:1", catalog.Discount{ProductID: 1, Amount: 10}),
	})
	discount := p.Discount(context.Background())
	require.True(t, discount.IsOk())
	assert.Equal(t, 10, discount.Value().Amount)
}

func TestUserModel_RoundTrip(t *testing.T) {
	m := &UserModel{
		BaseModel:    BaseModel{ID: 5, CreatedAtUTC: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		PasswordHash: "hash",
		Role:         2,
	}

	u := m.ToDomain()
	assert.Equal(t, identity.RoleAdmin, u.Role)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, m, UserModelFromDomain(u))
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "products", ProductModel{}.TableName())
	assert.Equal(t, "users", UserModel{}.TableName())
}
