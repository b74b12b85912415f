package shared

import (
	"time"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uint64
	GetCreatedAt() time.Time
}

// BaseEntity provides common fields for all entities.
// IDs are assigned by the store on first save; zero means "not persisted yet".
type BaseEntity struct {
	ID        uint64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uint64 {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// IsNew reports whether the entity has not been persisted
func (e *BaseEntity) IsNew() bool {
	return e.ID == 0
}

// NewBaseEntity creates a new base entity stamped at the given instant
func NewBaseEntity(now time.Time) BaseEntity {
	return BaseEntity{
		CreatedAt: now,
		UpdatedAt: now,
	}
}
