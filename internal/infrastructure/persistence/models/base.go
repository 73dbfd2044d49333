package models

import (
	"time"

	"github.com/storefront/backend/internal/domain/shared"
)

// BaseModel provides the identity columns shared by all tables.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAtUTC time.Time `gorm:"column:created_at_utc;not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{ID: m.ID, CreatedAtUTC: m.CreatedAtUTC.UTC()}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAtUTC = e.CreatedAtUTC.UTC()
}
