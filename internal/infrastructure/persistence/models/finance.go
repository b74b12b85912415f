package models

import (
	"github.com/growai/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// DueModel is the persistence model for the Due entity.
type DueModel struct {
	BaseModel
	CustomerName string          `gorm:"type:varchar(200);not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Note         *string         `gorm:"type:text"`
	IsSettled    bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (DueModel) TableName() string {
	return "dues"
}

// ToDomain converts the persistence model to a domain Due.
func (m *DueModel) ToDomain() *finance.Due {
	return &finance.Due{
		BaseEntity:   m.BaseModel.ToDomain(),
		CustomerName: m.CustomerName,
		Amount:       m.Amount,
		Note:         m.Note,
		IsSettled:    m.IsSettled,
	}
}

// FromDomain populates the persistence model from a domain Due.
func (m *DueModel) FromDomain(d *finance.Due) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.CustomerName = d.CustomerName
	m.Amount = d.Amount
	m.Note = d.Note
	m.IsSettled = d.IsSettled
}

// DueModelFromDomain creates a new persistence model from a domain Due.
func DueModelFromDomain(d *finance.Due) *DueModel {
	m := &DueModel{}
	m.FromDomain(d)
	return m
}

// DuesToDomain converts a slice of models
func DuesToDomain(ms []DueModel) []finance.Due {
	dues := make([]finance.Due, len(ms))
	for i := range ms {
		dues[i] = *ms[i].ToDomain()
	}
	return dues
}
