package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db     *gorm.DB
	binder *AttributeBinder
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB, binder *AttributeBinder) *GormProductRepository {
	return &GormProductRepository{db: db, binder: binder}
}

func productNotFound(id int64) *shared.Error {
	return shared.NewNotFoundError(fmt.Sprintf("Product with id %d not found.", id))
}

func (r *GormProductRepository) toDomain(m *models.ProductModel) *catalog.Product {
	return m.ToDomain(r.binder.Bind(m.ID, m.OwnerID))
}

// GetByID finds a product by its ID
func (r *GormProductRepository) GetByID(ctx context.Context, id int64) (shared.Outcome[*catalog.Product], error) {
	var m models.ProductModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.Fail[*catalog.Product](productNotFound(id)), nil
	}
	if err != nil {
		return shared.Outcome[*catalog.Product]{}, err
	}
	return shared.Ok(r.toDomain(&m)), nil
}

// GetAll returns every product ordered by id
func (r *GormProductRepository) GetAll(ctx context.Context) (shared.Outcome[[]*catalog.Product], error) {
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return shared.Outcome[[]*catalog.Product]{}, err
	}
	products := make([]*catalog.Product, 0, len(rows))
	for i := range rows {
		products = append(products, r.toDomain(&rows[i]))
	}
	return shared.Ok(products), nil
}

// Add inserts a product and returns it as stored
func (r *GormProductRepository) Add(ctx context.Context, p *catalog.Product) (shared.Outcome[*catalog.Product], error) {
	m := models.ProductModelFromDomain(p)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return shared.Outcome[*catalog.Product]{}, err
	}
	return r.GetByID(ctx, m.ID)
}

// Update overwrites the product's own fields and returns it as stored
func (r *GormProductRepository) Update(ctx context.Context, p *catalog.Product) (shared.Outcome[*catalog.Product], error) {
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"owner_id":    p.OwnerID,
			"name":        p.Name,
			"description": p.Description,
			"stock":       p.Stock,
			"price":       p.Price,
			"status":      int(p.StoredStatus),
		})
	if result.Error != nil {
		return shared.Outcome[*catalog.Product]{}, result.Error
	}
	if result.RowsAffected == 0 {
		return shared.Fail[*catalog.Product](productNotFound(p.ID)), nil
	}
	return r.GetByID(ctx, p.ID)
}

// Remove deletes a product
func (r *GormProductRepository) Remove(ctx context.Context, id int64) (shared.Outcome[shared.Unit], error) {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, id)
	if result.Error != nil {
		return shared.Outcome[shared.Unit]{}, result.Error
	}
	if result.RowsAffected == 0 {
		return shared.Fail[shared.Unit](productNotFound(id)), nil
	}
	return shared.OkUnit(), nil
}
