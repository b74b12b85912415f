package models

import (
	"time"

	"github.com/growai/backend/internal/domain/shared"
)

// BaseModel provides the identity and timestamp columns shared by every table.
// Timestamps come from the domain clock, so gorm's auto time tracking is off.
type BaseModel struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// All returns every model in dependency order, for gorm AutoMigrate
func All() []any {
	return []any{
		&ProductModel{},
		&SaleModel{},
		&DueModel{},
	}
}
