package integration

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/growai/backend/internal/application/catalog"
	financeapp "github.com/growai/backend/internal/application/finance"
	reportapp "github.com/growai/backend/internal/application/report"
	tradeapp "github.com/growai/backend/internal/application/trade"
	"github.com/growai/backend/internal/domain/report"
	"github.com/growai/backend/internal/domain/shared"
	"github.com/growai/backend/internal/infrastructure/persistence"
	"github.com/growai/backend/internal/interfaces/http/handler"
	"github.com/growai/backend/internal/interfaces/http/middleware"
	"github.com/growai/backend/internal/interfaces/http/router"
	"github.com/growai/backend/tests/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// newAPI wires the HTTP stack on tdb the same way cmd/server does.
// A nil store disables idempotency checks.
func newAPI(t *testing.T, tdb *TestDB, store shared.IdempotencyStore) *testutil.APIClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zaptest.NewLogger(t)
	clock := shared.NewSystemClock(time.UTC)
	db := tdb.Database.DB

	productRepo := persistence.NewGormProductRepository(db)
	saleRepo := persistence.NewGormSaleRepository(db)

	var saleOpts []tradeapp.SaleServiceOption
	if store != nil {
		saleOpts = append(saleOpts, tradeapp.WithIdempotency(store, shared.DefaultIdempotencyConfig()))
	}

	forecaster, err := report.NewTrendForecaster(0.5, 0.3)
	require.NoError(t, err)
	reports := reportapp.NewReportService(persistence.NewGormReportSource(db), clock, reportapp.DefaultLimits())

	engine, err := router.NewEngine(router.EngineConfig{
		ServiceName: "growai-integration",
		MaxBodySize: 1 << 20,
		CORS:        middleware.DefaultCORSConfig(),
	}, log)
	require.NoError(t, err)

	router.Setup(engine, router.Handlers{
		Product: handler.NewProductHandler(catalogapp.NewProductService(productRepo, clock)),
		Sale: handler.NewSaleHandler(tradeapp.NewSaleService(saleRepo, productRepo,
			persistence.NewGormTransactionScope(db), clock, log, saleOpts...)),
		Due:    handler.NewDueHandler(financeapp.NewDueService(persistence.NewGormDueRepository(db), clock)),
		Report: handler.NewReportHandler(reports, reportapp.NewExportService(reports, clock)),
		Forecast: handler.NewForecastHandler(reportapp.NewForecastService(productRepo, saleRepo, forecaster,
			report.NewSyntheticBaselinePolicy(), 60, clock, log)),
		System: handler.NewSystemHandler("GrowAI API", tdb.Database),
	})

	return testutil.NewAPIClient(t, engine)
}
