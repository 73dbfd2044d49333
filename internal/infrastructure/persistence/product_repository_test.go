package persistence

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOwners struct{ calls atomic.Int32 }

func (s *stubOwners) GetOwner(_ context.Context, ownerID int64) (catalog.Owner, error) {
	s.calls.Add(1)
	return catalog.Owner{ID: ownerID, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Role: "Admin"}, nil
}

type stubDiscounts struct {
	amount int
	err    error
	calls  atomic.Int32
}

func (s *stubDiscounts) GetDiscount(_ context.Context, productID int64) (catalog.Discount, error) {
	s.calls.Add(1)
	if s.err != nil {
		return catalog.Discount{}, s.err
	}
	return catalog.Discount{ProductID: productID, Amount: s.amount}, nil
}

type stubStatuses struct {
	status catalog.ProductStatus
	calls  atomic.Int32
}

func (s *stubStatuses) GetStatus(_ context.Context, _ int64) (catalog.ProductStatus, error) {
	s.calls.Add(1)
	return s.status, nil
}

func newProduct(t *testing.T, name string, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(1, name, "desc", 5, decimal.RequireFromString(price))
	require.NoError(t, err)
	return p
}

func TestGormProductRepository_AddAndGet(t *testing.T) {
	db := setupTestDB(t)
	discounts := &stubDiscounts{amount: 10}
	repo := NewGormProductRepository(db, NewAttributeBinder(&stubOwners{}, discounts, &stubStatuses{}, nil))
	ctx := context.Background()

	added, err := repo.Add(ctx, newProduct(t, "Lamp", "100.00"))
	require.NoError(t, err)
	require.True(t, added.IsOk())

	p := added.Value()
	assert.NotZero(t, p.ID)
	assert.Equal(t, "Lamp", p.Name)
	assert.True(t, p.Discount(ctx).IsOk())

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, got.IsOk())
	assert.Equal(t, p.ID, got.Value().ID)
	assert.True(t, decimal.RequireFromString("100").Equal(got.Value().Price))

	finalPrice := got.Value().FinalPrice(ctx)
	require.True(t, finalPrice.IsOk())
	assert.Equal(t, "90", finalPrice.Value().String())
}

func TestGormProductRepository_LoadDoesNotResolveAttributes(t *testing.T) {
	db := setupTestDB(t)
	owners, discounts, statuses := &stubOwners{}, &stubDiscounts{}, &stubStatuses{}
	repo := NewGormProductRepository(db, NewAttributeBinder(owners, discounts, statuses, nil))
	ctx := context.Background()

	_, err := repo.Add(ctx, newProduct(t, "A", "1"))
	require.NoError(t, err)
	_, err = repo.Add(ctx, newProduct(t, "B", "2"))
	require.NoError(t, err)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all.Value(), 2)
	assert.Equal(t, "A", all.Value()[0].Name)

	assert.Zero(t, owners.calls.Load())
	assert.Zero(t, discounts.calls.Load())
	assert.Zero(t, statuses.calls.Load())
}

func TestGormProductRepository_GetByID_NotFound(t *testing.T) {
	repo := NewGormProductRepository(setupTestDB(t), nil)

	got, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)
	require.True(t, got.IsFailed())
	assert.Equal(t, []*shared.Error{shared.NewNotFoundError("Product with id 42 not found.")}, got.Errors())
}

func TestGormProductRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db, nil)
	ctx := context.Background()

	added, err := repo.Add(ctx, newProduct(t, "Lamp", "10"))
	require.NoError(t, err)
	p := added.Value()

	require.NoError(t, p.Update(2, "Desk Lamp", "brighter", 9, decimal.NewFromInt(12)))
	updated, err := repo.Update(ctx, p)
	require.NoError(t, err)
	require.True(t, updated.IsOk())
	assert.Equal(t, "Desk Lamp", updated.Value().Name)
	assert.Equal(t, int64(2), updated.Value().OwnerID)
	assert.Equal(t, 9, updated.Value().Stock)
	assert.Equal(t, p.CreatedAtUTC.Unix(), updated.Value().CreatedAtUTC.Unix())
}

func TestGormProductRepository_Update_Missing(t *testing.T) {
	repo := NewGormProductRepository(setupTestDB(t), nil)
	p := newProduct(t, "Ghost", "1")
	p.ID = 77

	got, err := repo.Update(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, got.HasKind(shared.KindNotFound))
}

func TestGormProductRepository_Remove(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db, nil)
	ctx := context.Background()

	added, err := repo.Add(ctx, newProduct(t, "Lamp", "10"))
	require.NoError(t, err)
	id := added.Value().ID

	removed, err := repo.Remove(ctx, id)
	require.NoError(t, err)
	assert.True(t, removed.IsOk())

	again, err := repo.Remove(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []*shared.Error{productNotFound(id)}, again.Errors())
}

func TestGormProductRepository_DiscountFailureIsUnreachable(t *testing.T) {
	db := setupTestDB(t)
	discounts := &stubDiscounts{err: errors.New("dial tcp: connection refused")}
	repo := NewGormProductRepository(db, NewAttributeBinder(nil, discounts, nil, nil))
	ctx := context.Background()

	added, err := repo.Add(ctx, newProduct(t, "Lamp", "10"))
	require.NoError(t, err)

	price := added.Value().FinalPrice(ctx)
	require.True(t, price.IsFailed())
	errs := price.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, shared.KindUnreachableDependency, errs[0].Kind)
	assert.Equal(t, "Discount Service is unreachable.", errs[0].Message)
}
