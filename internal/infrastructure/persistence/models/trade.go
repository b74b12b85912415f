package models

import (
	"github.com/growai/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for the Sale entity.
type SaleModel struct {
	BaseModel
	ProductID    uint64          `gorm:"not null;index"`
	Product      *ProductModel   `gorm:"foreignKey:ProductID;references:ID;constraint:OnDelete:RESTRICT"`
	Quantity     int             `gorm:"not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IsCredit     bool            `gorm:"not null;default:false"`
	CustomerName *string         `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale.
func (m *SaleModel) ToDomain() *trade.Sale {
	return &trade.Sale{
		BaseEntity:   m.BaseModel.ToDomain(),
		ProductID:    m.ProductID,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		IsCredit:     m.IsCredit,
		CustomerName: m.CustomerName,
	}
}

// FromDomain populates the persistence model from a domain Sale.
func (m *SaleModel) FromDomain(s *trade.Sale) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.ProductID = s.ProductID
	m.Quantity = s.Quantity
	m.UnitPrice = s.UnitPrice
	m.IsCredit = s.IsCredit
	m.CustomerName = s.CustomerName
}

// SaleModelFromDomain creates a new persistence model from a domain Sale.
func SaleModelFromDomain(s *trade.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}

// SalesToDomain converts a slice of models
func SalesToDomain(ms []SaleModel) []trade.Sale {
	sales := make([]trade.Sale, len(ms))
	for i := range ms {
		sales[i] = *ms[i].ToDomain()
	}
	return sales
}
