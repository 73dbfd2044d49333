package shared

import (
	"time"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() int64
	GetCreatedAtUTC() time.Time
}

// BaseEntity provides the identity and creation time shared by all entities.
// ID is zero until the entity has been stored.
type BaseEntity struct {
	ID           int64
	CreatedAtUTC time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() int64 {
	return e.ID
}

// GetCreatedAtUTC returns the creation timestamp
func (e *BaseEntity) GetCreatedAtUTC() time.Time {
	return e.CreatedAtUTC
}

// IsTransient reports whether the entity has not been stored yet
func (e *BaseEntity) IsTransient() bool {
	return e.ID == 0
}

// NewBaseEntity creates an unsaved entity stamped with the current UTC time
func NewBaseEntity() BaseEntity {
	return BaseEntity{CreatedAtUTC: time.Now().UTC()}
}
