package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/growai/backend/internal/application/catalog"
	financeapp "github.com/growai/backend/internal/application/finance"
	reportapp "github.com/growai/backend/internal/application/report"
	tradeapp "github.com/growai/backend/internal/application/trade"
	"github.com/growai/backend/internal/domain/report"
	"github.com/growai/backend/internal/domain/shared"
	"github.com/growai/backend/internal/infrastructure/cache"
	"github.com/growai/backend/internal/infrastructure/config"
	"github.com/growai/backend/internal/infrastructure/persistence"
	"github.com/growai/backend/internal/interfaces/http/dto"
	"github.com/growai/backend/internal/interfaces/http/handler"
	"github.com/growai/backend/internal/interfaces/http/middleware"
	"github.com/growai/backend/internal/interfaces/http/router"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 5, 6, 10, 0, 0, 0, time.UTC)

// testAPI is the full HTTP stack on an in-memory sqlite database
type testAPI struct {
	t        *testing.T
	engine   *gin.Engine
	database *persistence.Database
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		Path:         "file::memory:?_foreign_keys=on",
		MaxOpenConns: 1,
	}, persistence.WithNowFunc(func() time.Time { return testNow }))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, database.AutoMigrate())

	db := database.DB
	clock := shared.FixedClock{At: testNow}
	log := zap.NewNop()

	productRepo := persistence.NewGormProductRepository(db)
	saleRepo := persistence.NewGormSaleRepository(db)
	dueRepo := persistence.NewGormDueRepository(db)

	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })

	forecaster, err := report.NewTrendForecaster(0.5, 0.3)
	require.NoError(t, err)

	reportService := reportapp.NewReportService(persistence.NewGormReportSource(db), clock, reportapp.DefaultLimits())

	engine, err := router.NewEngine(router.EngineConfig{
		ServiceName: "growai-test",
		MaxBodySize: 1 << 20,
		CORS:        middleware.DefaultCORSConfig(),
	}, log)
	require.NoError(t, err)

	router.Setup(engine, router.Handlers{
		Product: handler.NewProductHandler(catalogapp.NewProductService(productRepo, clock)),
		Sale: handler.NewSaleHandler(tradeapp.NewSaleService(saleRepo, productRepo,
			persistence.NewGormTransactionScope(db), clock, log,
			tradeapp.WithIdempotency(store, shared.DefaultIdempotencyConfig()))),
		Due:    handler.NewDueHandler(financeapp.NewDueService(dueRepo, clock)),
		Report: handler.NewReportHandler(reportService, reportapp.NewExportService(reportService, clock)),
		Forecast: handler.NewForecastHandler(reportapp.NewForecastService(productRepo, saleRepo, forecaster,
			report.NewSyntheticBaselinePolicy(), 60, clock, log)),
		System: handler.NewSystemHandler("GrowAI API", database),
	})

	return &testAPI{t: t, engine: engine, database: database}
}

func (a *testAPI) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// decode unmarshals the envelope and its data into out (nil skips data)
func decode(t *testing.T, w *httptest.ResponseRecorder, out any) dto.Response {
	t.Helper()
	var raw struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *dto.ErrorInfo  `json:"error"`
		Meta    *dto.Meta       `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw), w.Body.String())
	if out != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, out))
	}
	return dto.Response{Success: raw.Success, Error: raw.Error, Meta: raw.Meta}
}

func (a *testAPI) createProduct(sku, name, category string, stock int, price string, reorder int) catalogapp.ProductResponse {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/v1/products", map[string]any{
		"sku": sku, "name": name, "category": category,
		"stock": stock, "price": price, "reorder_point": reorder,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var p catalogapp.ProductResponse
	decode(a.t, w, &p)
	return p
}

func (a *testAPI) createSale(productID uint64, qty int, price string, credit bool, customer string) *httptest.ResponseRecorder {
	a.t.Helper()
	body := map[string]any{"product_id": productID, "quantity": qty, "unit_price": price, "is_credit": credit}
	if customer != "" {
		body["customer_name"] = customer
	}
	return a.do(http.MethodPost, "/api/v1/sales", body)
}
