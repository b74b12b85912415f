package trade

import (
	"testing"
	"time"

	"github.com/growai/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 6, 9, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func TestNewSale(t *testing.T) {
	t.Run("creates cash sale", func(t *testing.T) {
		sale, err := NewSale(3, 2, decimal.NewFromInt(10), false, nil, testNow)
		require.NoError(t, err)

		assert.Equal(t, uint64(3), sale.ProductID)
		assert.Equal(t, 2, sale.Quantity)
		assert.False(t, sale.IsCredit)
		assert.Nil(t, sale.CustomerName)
		assert.Equal(t, testNow, sale.CreatedAt)
		assert.Equal(t, "Cash", sale.PaymentLabel())
	})

	t.Run("creates credit sale with trimmed customer", func(t *testing.T) {
		sale, err := NewSale(3, 1, decimal.NewFromInt(5), true, strPtr("  Ana "), testNow)
		require.NoError(t, err)

		require.NotNil(t, sale.CustomerName)
		assert.Equal(t, "Ana", *sale.CustomerName)
		assert.Equal(t, "Credit", sale.PaymentLabel())
	})

	t.Run("blank customer becomes nil", func(t *testing.T) {
		sale, err := NewSale(3, 1, decimal.NewFromInt(5), true, strPtr("   "), testNow)
		require.NoError(t, err)
		assert.Nil(t, sale.CustomerName)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		tests := []struct {
			name      string
			productID uint64
			qty       int
			price     decimal.Decimal
		}{
			{"missing product", 0, 1, decimal.NewFromInt(1)},
			{"zero quantity", 1, 0, decimal.NewFromInt(1)},
			{"negative quantity", 1, -2, decimal.NewFromInt(1)},
			{"negative price", 1, 1, decimal.NewFromInt(-1)},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewSale(tt.productID, tt.qty, tt.price, false, nil, testNow)
				assert.ErrorIs(t, err, shared.ErrInvalidInput)
			})
		}
	})
}

func TestSale_Revenue(t *testing.T) {
	sale := &Sale{Quantity: 3, UnitPrice: decimal.RequireFromString("2.50")}
	assert.True(t, sale.Revenue().Equal(decimal.RequireFromString("7.5")))
}
