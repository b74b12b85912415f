package finance

import (
	"time"

	"github.com/growai/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// CreateDueRequest represents a request to record a due
type CreateDueRequest struct {
	CustomerName string          `json:"customer_name" binding:"required,min=1,max=200"`
	Amount       decimal.Decimal `json:"amount" binding:"gte=0"`
	Note         *string         `json:"note" binding:"omitempty,max=500"`
}

// DueResponse represents a due in API responses
type DueResponse struct {
	ID           uint64          `json:"id"`
	CustomerName string          `json:"customer_name"`
	Amount       decimal.Decimal `json:"amount"`
	Note         *string         `json:"note"`
	IsSettled    bool            `json:"is_settled"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToDueResponse converts a domain due to a response
func ToDueResponse(d *finance.Due) DueResponse {
	return DueResponse{
		ID:           d.ID,
		CustomerName: d.CustomerName,
		Amount:       d.Amount,
		Note:         d.Note,
		IsSettled:    d.IsSettled,
		CreatedAt:    d.CreatedAt,
	}
}
