package handler_test

import (
	"net/http"
	"testing"

	catalogapp "github.com/growai/backend/internal/application/catalog"
	financeapp "github.com/growai/backend/internal/application/finance"
	tradeapp "github.com/growai/backend/internal/application/trade"
	"github.com/growai/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (a *testAPI) stockOf(id string) int {
	a.t.Helper()
	var p catalogapp.ProductResponse
	decode(a.t, a.do(http.MethodGet, "/api/v1/products/"+id, nil), &p)
	return p.Stock
}

func TestSaleHandler_CashSale(t *testing.T) {
	api := newTestAPI(t)
	api.createProduct("RICE", "Rice", "Food", 10, "12", 2)

	w := api.createSale(1, 4, "12.50", false, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sale tradeapp.SaleResponse
	decode(t, w, &sale)
	assert.Equal(t, "Rice", sale.ProductName)
	assert.True(t, decimal.RequireFromString("50").Equal(sale.Total))
	assert.Nil(t, sale.DueID)
	assert.Equal(t, 6, api.stockOf("1"))

	var dues []financeapp.DueResponse
	decode(t, api.do(http.MethodGet, "/api/v1/dues", nil), &dues)
	assert.Empty(t, dues)
}

func TestSaleHandler_CreditSaleOpensDue(t *testing.T) {
	api := newTestAPI(t)
	api.createProduct("RICE", "Rice", "Food", 10, "12", 2)
	api.createProduct("TEA", "Tea", "Drinks", 10, "3", 2)

	w := api.createSale(2, 3, "4", true, "  Asha ")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var sale tradeapp.SaleResponse
	decode(t, w, &sale)
	require.NotNil(t, sale.DueID)
	require.NotNil(t, sale.CustomerName)
	assert.Equal(t, "Asha", *sale.CustomerName)

	require.Equal(t, http.StatusCreated, api.createSale(1, 1, "12", true, "").Code)

	var dues []financeapp.DueResponse
	decode(t, api.do(http.MethodGet, "/api/v1/dues", nil), &dues)
	require.Len(t, dues, 2)

	byCustomer := map[string]financeapp.DueResponse{}
	for _, d := range dues {
		byCustomer[d.CustomerName] = d
	}
	asha := byCustomer["Asha"]
	assert.Equal(t, *sale.DueID, asha.ID)
	assert.True(t, decimal.RequireFromString("12").Equal(asha.Amount))
	require.NotNil(t, asha.Note)
	assert.Equal(t, "Credit sale for product #2", *asha.Note)
	assert.False(t, asha.IsSettled)

	unknown, ok := byCustomer["Unknown"]
	require.True(t, ok)
	assert.Equal(t, "Credit sale for product #1", *unknown.Note)
}

func TestSaleHandler_Rejections(t *testing.T) {
	api := newTestAPI(t)
	api.createProduct("RICE", "Rice", "Food", 5, "12", 2)

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{"insufficient stock", map[string]any{"product_id": 1, "quantity": 6, "unit_price": "12"}, http.StatusUnprocessableEntity, dto.ErrCodeInsufficientStock},
		{"unknown product", map[string]any{"product_id": 42, "quantity": 1, "unit_price": "12"}, http.StatusNotFound, dto.ErrCodeNotFound},
		{"zero quantity", map[string]any{"product_id": 1, "quantity": 0, "unit_price": "12"}, http.StatusBadRequest, dto.ErrCodeValidation},
		{"negative price", map[string]any{"product_id": 1, "quantity": 1, "unit_price": "-1"}, http.StatusBadRequest, dto.ErrCodeValidation},
		{"missing product", map[string]any{"quantity": 1, "unit_price": "1"}, http.StatusBadRequest, dto.ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(http.MethodPost, "/api/v1/sales", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantCode, decode(t, w, nil).Error.Code)
		})
	}

	assert.Equal(t, 5, api.stockOf("1"))
	var sales []tradeapp.SaleResponse
	decode(t, api.do(http.MethodGet, "/api/v1/sales", nil), &sales)
	assert.Empty(t, sales)
}

func TestSaleHandler_IdempotencyKey(t *testing.T) {
	api := newTestAPI(t)
	api.createProduct("RICE", "Rice", "Food", 5, "12", 2)
	body := map[string]any{"product_id": 1, "quantity": 2, "unit_price": "12"}

	w := api.do(http.MethodPost, "/api/v1/sales", body, "Idempotency-Key", "order-1")
	require.Equal(t, http.StatusCreated, w.Code)

	w = api.do(http.MethodPost, "/api/v1/sales", body, "Idempotency-Key", "order-1")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, dto.ErrCodeConflict, decode(t, w, nil).Error.Code)
	assert.Equal(t, 3, api.stockOf("1"))

	// A failed request frees its key for a retry
	big := map[string]any{"product_id": 1, "quantity": 4, "unit_price": "12"}
	w = api.do(http.MethodPost, "/api/v1/sales", big, "Idempotency-Key", "order-2")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Equal(t, http.StatusOK, api.do(http.MethodPatch, "/api/v1/products/1", map[string]any{"stock": 10}).Code)
	w = api.do(http.MethodPost, "/api/v1/sales", big, "Idempotency-Key", "order-2")
	assert.Equal(t, http.StatusCreated, w.Code)

	long := make([]byte, 129)
	for i := range long {
		long[i] = 'k'
	}
	w = api.do(http.MethodPost, "/api/v1/sales", body, "Idempotency-Key", string(long))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaleHandler_ListNewestFirst(t *testing.T) {
	api := newTestAPI(t)
	api.createProduct("RICE", "Rice", "Food", 10, "12", 2)
	api.createProduct("TEA", "Tea", "Drinks", 10, "3", 2)
	require.Equal(t, http.StatusCreated, api.createSale(1, 1, "12", false, "").Code)
	require.Equal(t, http.StatusCreated, api.createSale(2, 2, "3", false, "").Code)

	w := api.do(http.MethodGet, "/api/v1/sales", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sales []tradeapp.SaleResponse
	resp := decode(t, w, &sales)
	require.Len(t, sales, 2)
	assert.Equal(t, int64(2), resp.Meta.Total)
	assert.Equal(t, "Tea", sales[0].ProductName)
	assert.Equal(t, "Rice", sales[1].ProductName)
}
