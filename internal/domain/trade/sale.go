package trade

import (
	"strings"
	"time"

	"github.com/growai/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Sale is a single recorded sale of one product.
// Sales are immutable once created.
type Sale struct {
	shared.BaseEntity
	ProductID    uint64
	Quantity     int
	UnitPrice    decimal.Decimal
	IsCredit     bool
	CustomerName *string
}

// NewSale creates a new sale
func NewSale(productID uint64, quantity int, unitPrice decimal.Decimal, isCredit bool, customerName *string, now time.Time) (*Sale, error) {
	if productID == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product ID is required")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}

	var customer *string
	if customerName != nil {
		if trimmed := strings.TrimSpace(*customerName); trimmed != "" {
			customer = &trimmed
		}
	}

	return &Sale{
		BaseEntity:   shared.NewBaseEntity(now),
		ProductID:    productID,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		IsCredit:     isCredit,
		CustomerName: customer,
	}, nil
}

// Revenue returns quantity × unit price
func (s *Sale) Revenue() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// PaymentLabel returns "Credit" or "Cash"
func (s *Sale) PaymentLabel() string {
	if s.IsCredit {
		return "Credit"
	}
	return "Cash"
}
