package models

import (
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product aggregate
type ProductModel struct {
	BaseModel
	OwnerID     int64           `gorm:"not null;index"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text;not null;default:''"`
	Stock       int             `gorm:"not null;default:0"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status      int             `gorm:"type:smallint;not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the row to a Product with attrs attached
func (m *ProductModel) ToDomain(attrs catalog.Attributes) *catalog.Product {
	base := m.BaseModel.ToDomain()
	return catalog.Reconstitute(
		base.ID,
		m.OwnerID,
		m.Name,
		m.Description,
		m.Stock,
		m.Price,
		catalog.ProductStatus(m.Status),
		base.CreatedAtUTC,
		attrs,
	)
}

// FromDomain populates the row from a Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.OwnerID = p.OwnerID
	m.Name = p.Name
	m.Description = p.Description
	m.Stock = p.Stock
	m.Price = p.Price
	m.Status = int(p.StoredStatus)
}

// ProductModelFromDomain creates a row from a Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
