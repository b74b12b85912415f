package models

import (
	"github.com/growai/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product entity.
type ProductModel struct {
	BaseModel
	SKU          string          `gorm:"column:sku;type:varchar(64);not null;uniqueIndex"`
	Name         string          `gorm:"type:varchar(200);not null;index"`
	Category     string          `gorm:"type:varchar(100);not null;default:'General';index"`
	Stock        int             `gorm:"not null;default:0"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ReorderPoint int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:   m.BaseModel.ToDomain(),
		SKU:          m.SKU,
		Name:         m.Name,
		Category:     m.Category,
		Stock:        m.Stock,
		Price:        m.Price,
		ReorderPoint: m.ReorderPoint,
	}
}

// FromDomain populates the persistence model from a domain Product.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.SKU = p.SKU
	m.Name = p.Name
	m.Category = p.Category
	m.Stock = p.Stock
	m.Price = p.Price
	m.ReorderPoint = p.ReorderPoint
}

// ProductModelFromDomain creates a new persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ProductsToDomain converts a slice of models
func ProductsToDomain(ms []ProductModel) []catalog.Product {
	products := make([]catalog.Product, len(ms))
	for i := range ms {
		products[i] = *ms[i].ToDomain()
	}
	return products
}
