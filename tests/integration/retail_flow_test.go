package integration

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	catalogapp "github.com/growai/backend/internal/application/catalog"
	financeapp "github.com/growai/backend/internal/application/finance"
	reportapp "github.com/growai/backend/internal/application/report"
	tradeapp "github.com/growai/backend/internal/application/trade"
	"github.com/growai/backend/internal/infrastructure/cache"
	"github.com/growai/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProduct(t *testing.T, api *testutil.APIClient, sku, category string, stock int, price string) catalogapp.ProductResponse {
	t.Helper()
	w := api.Do(http.MethodPost, "/api/v1/products", map[string]any{
		"sku": sku, "name": "Product " + sku, "category": category,
		"stock": stock, "price": price, "reorder_point": 2,
	})
	testutil.RequireStatus(t, w, http.StatusCreated)
	var p catalogapp.ProductResponse
	testutil.Decode(t, w, &p)
	return p
}

func TestRetailFlow_Postgres(t *testing.T) {
	tdb := NewTestDB(t)
	api := newAPI(t, tdb, cache.NewInMemoryIdempotencyStore())

	rice := createProduct(t, api, "RICE-5KG", "Food", 20, "12.50")
	tea := createProduct(t, api, "TEA-250", "Drinks", 5, "4.00")

	w := api.Do(http.MethodPost, "/api/v1/sales", map[string]any{
		"product_id": rice.ID, "quantity": 4, "unit_price": "12.50",
	})
	testutil.RequireStatus(t, w, http.StatusCreated)

	w = api.Do(http.MethodPost, "/api/v1/sales", map[string]any{
		"product_id": tea.ID, "quantity": 3, "unit_price": "4.00", "is_credit": true, "customer_name": "Asha",
	})
	testutil.RequireStatus(t, w, http.StatusCreated)
	var credit tradeapp.SaleResponse
	testutil.Decode(t, w, &credit)
	require.NotNil(t, credit.DueID)
	assert.True(t, decimal.RequireFromString("12").Equal(credit.Total))

	var dues []financeapp.DueResponse
	testutil.Decode(t, api.Do(http.MethodGet, "/api/v1/dues", nil), &dues)
	require.Len(t, dues, 1)
	assert.Equal(t, "Asha", dues[0].CustomerName)
	assert.Equal(t, fmt.Sprintf("Credit sale for product #%d", tea.ID), *dues[0].Note)

	var summary reportapp.SummaryResponse
	testutil.Decode(t, api.Do(http.MethodGet, "/api/v1/reports/summary", nil), &summary)
	assert.InDelta(t, 62.0, summary.TodaySales, 1e-9)
	assert.InDelta(t, 12.0, summary.PendingDues, 1e-9)
	assert.Equal(t, 1, summary.LowStock)
	require.NotNil(t, summary.TopProduct)
	assert.Equal(t, rice.ID, summary.TopProduct.ProductID)

	w = api.Do(http.MethodPatch, fmt.Sprintf("/api/v1/dues/%d", dues[0].ID), nil)
	testutil.RequireStatus(t, w, http.StatusOK)
	testutil.Decode(t, api.Do(http.MethodGet, "/api/v1/reports/summary", nil), &summary)
	assert.Zero(t, summary.PendingDues)

	var series []reportapp.SeriesPointResponse
	testutil.Decode(t, api.Do(http.MethodGet, "/api/v1/reports/sales-series?days=7", nil), &series)
	require.Len(t, series, 7)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), series[6].Date)
	assert.InDelta(t, 62.0, series[6].Total, 1e-9)

	var shares []reportapp.CategoryShareResponse
	testutil.Decode(t, api.Do(http.MethodGet, "/api/v1/reports/category-share", nil), &shares)
	require.Len(t, shares, 2)
	var total float64
	for _, s := range shares {
		total += s.Percentage
	}
	assert.InDelta(t, 100.0, total, 0.02)

	var forecast reportapp.ForecastResponse
	testutil.Decode(t, api.Do(http.MethodPost, "/api/v1/forecast",
		map[string]any{"product_id": rice.ID, "horizon_days": 14}), &forecast)
	assert.False(t, forecast.Synthetic)
	assert.Len(t, forecast.Points, 14)

	w = api.Do(http.MethodGet, "/api/v1/reports/export", nil)
	testutil.RequireStatus(t, w, http.StatusOK)
	assert.Equal(t, reportapp.XLSXContentType, w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestProductConstraints_Postgres(t *testing.T) {
	tdb := NewTestDB(t)
	api := newAPI(t, tdb, nil)

	p := createProduct(t, api, "SOAP", "Home", 10, "2.00")

	w := api.Do(http.MethodPost, "/api/v1/products", map[string]any{
		"sku": "SOAP", "name": "Other soap", "stock": 1, "price": "1.00",
	})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	w = api.Do(http.MethodPost, "/api/v1/sales", map[string]any{"product_id": p.ID, "quantity": 1, "unit_price": "2.00"})
	testutil.RequireStatus(t, w, http.StatusCreated)

	// sales reference the product with ON DELETE RESTRICT
	w = api.Do(http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", p.ID), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

	unsold := createProduct(t, api, "BROOM", "Home", 1, "6.00")
	w = api.Do(http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", unsold.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestConcurrentSales_NeverOversell(t *testing.T) {
	tdb := NewTestDB(t)
	api := newAPI(t, tdb, nil)

	p := createProduct(t, api, "MILK", "Dairy", 10, "1.20")

	const buyers = 25
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		statuses = map[int]int{}
	)
	for range buyers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := api.Do(http.MethodPost, "/api/v1/sales", map[string]any{
				"product_id": p.ID, "quantity": 1, "unit_price": "1.20",
			})
			mu.Lock()
			statuses[w.Code]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, statuses[http.StatusCreated])
	assert.Equal(t, buyers-10, statuses[http.StatusUnprocessableEntity])

	var after catalogapp.ProductResponse
	testutil.Decode(t, api.Do(http.MethodGet, fmt.Sprintf("/api/v1/products/%d", p.ID), nil), &after)
	assert.Zero(t, after.Stock)

	var sales []tradeapp.SaleResponse
	testutil.Decode(t, api.Do(http.MethodGet, "/api/v1/sales", nil), &sales)
	assert.Len(t, sales, 10)
}

func TestHealth_Postgres(t *testing.T) {
	tdb := NewTestDB(t)
	api := newAPI(t, tdb, nil)

	testutil.RequireStatus(t, api.Do(http.MethodGet, "/health", nil), http.StatusOK)

	require.NoError(t, tdb.Database.Close())
	assert.Equal(t, http.StatusServiceUnavailable, api.Do(http.MethodGet, "/health", nil).Code)
}
