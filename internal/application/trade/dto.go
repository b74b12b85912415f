package trade

import (
	"time"

	"github.com/growai/backend/internal/domain/finance"
	"github.com/growai/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest represents a request to record a sale
type CreateSaleRequest struct {
	ProductID    uint64          `json:"product_id" binding:"required"`
	Quantity     int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice    decimal.Decimal `json:"unit_price" binding:"gte=0"`
	IsCredit     bool            `json:"is_credit"`
	CustomerName *string         `json:"customer_name" binding:"omitempty,max=200"`

	// IdempotencyKey comes from the Idempotency-Key header, not the body
	IdempotencyKey string `json:"-"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID           uint64          `json:"id"`
	ProductID    uint64          `json:"product_id"`
	ProductName  string          `json:"product_name,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Total        decimal.Decimal `json:"total"`
	IsCredit     bool            `json:"is_credit"`
	CustomerName *string         `json:"customer_name"`
	CreatedAt    time.Time       `json:"created_at"`
	DueID        *uint64         `json:"due_id,omitempty"`
}

// ToSaleResponse converts a domain sale to a response
func ToSaleResponse(s *trade.Sale, productName string, due *finance.Due) SaleResponse {
	resp := SaleResponse{
		ID:           s.ID,
		ProductID:    s.ProductID,
		ProductName:  productName,
		Quantity:     s.Quantity,
		UnitPrice:    s.UnitPrice,
		Total:        s.Revenue(),
		IsCredit:     s.IsCredit,
		CustomerName: s.CustomerName,
		CreatedAt:    s.CreatedAt,
	}
	if due != nil {
		id := due.ID
		resp.DueID = &id
	}
	return resp
}
