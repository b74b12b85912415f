package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/growai/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// UnknownCustomer is used for credit sales recorded without a customer name
const UnknownCustomer = "Unknown"

// Due is an amount owed by a customer, usually from a credit sale.
// The only allowed transition is pending -> settled.
type Due struct {
	shared.BaseEntity
	CustomerName string
	Amount       decimal.Decimal
	Note         *string
	IsSettled    bool
}

// NewDue creates a new pending due
func NewDue(customerName string, amount decimal.Decimal, note *string, now time.Time) (*Due, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer name cannot be empty")
	}
	if len(customerName) > 200 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer name cannot exceed 200 characters")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Amount cannot be negative")
	}

	return &Due{
		BaseEntity:   shared.NewBaseEntity(now),
		CustomerName: customerName,
		Amount:       amount,
		Note:         note,
	}, nil
}

// NewCreditDue creates the due that backs a credit sale
func NewCreditDue(customerName *string, productID uint64, amount decimal.Decimal, now time.Time) (*Due, error) {
	name := UnknownCustomer
	if customerName != nil && strings.TrimSpace(*customerName) != "" {
		name = *customerName
	}
	note := fmt.Sprintf("Credit sale for product #%d", productID)
	return NewDue(name, amount, &note, now)
}

// Settle marks the due as paid. Settling twice is a no-op.
func (d *Due) Settle(now time.Time) {
	if d.IsSettled {
		return
	}
	d.IsSettled = true
	d.UpdatedAt = now
}

// StatusLabel returns "Settled" or "Pending"
func (d *Due) StatusLabel() string {
	if d.IsSettled {
		return "Settled"
	}
	return "Pending"
}
