package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/growai/backend/internal/domain/trade"
	"github.com/growai/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) (metricdata.Metrics, bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

// sumInt adds up the data points of an int64 sum or gauge matching attr (nil matches all)
func sumInt(t *testing.T, rm metricdata.ResourceMetrics, name string, attr *attribute.KeyValue) int64 {
	t.Helper()
	m, ok := findMetric(rm, name)
	require.True(t, ok, "metric %s not recorded", name)

	var points []metricdata.DataPoint[int64]
	switch data := m.Data.(type) {
	case metricdata.Sum[int64]:
		points = data.DataPoints
	case metricdata.Gauge[int64]:
		points = data.DataPoints
	default:
		t.Fatalf("metric %s has unexpected type %T", name, m.Data)
	}

	var total int64
	for _, dp := range points {
		if attr != nil {
			v, ok := dp.Attributes.Value(attr.Key)
			if !ok || v != attr.Value {
				continue
			}
		}
		total += dp.Value
	}
	return total
}

func newTestRetailMetrics(t *testing.T, lowStock telemetry.LowStockCounter) (*telemetry.RetailMetrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := telemetry.NewRetailMetrics(provider.Meter("growai"), lowStock, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m, reader
}

func TestNewRetailMetrics_NilMeter(t *testing.T) {
	m, err := telemetry.NewRetailMetrics(nil, nil, nil)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, telemetry.ErrMeterNil)
}

func TestRetailMetrics_SaleRecorded(t *testing.T) {
	m, reader := newTestRetailMetrics(t, nil)
	ctx := context.Background()
	now := time.Date(2026, 5, 6, 10, 0, 0, 0, time.UTC)

	customer := "Asha"
	cash, err := trade.NewSale(1, 3, decimal.RequireFromString("2.50"), false, nil, now)
	require.NoError(t, err)
	credit, err := trade.NewSale(2, 2, decimal.RequireFromString("10.00"), true, &customer, now)
	require.NoError(t, err)

	m.SaleRecorded(ctx, cash)
	m.SaleRecorded(ctx, credit)
	m.SaleRecorded(ctx, cash)

	rm := collect(t, reader)
	cashAttr := telemetry.AttrPayment.String("Cash")
	creditAttr := telemetry.AttrPayment.String("Credit")

	assert.Equal(t, int64(3), sumInt(t, rm, "growai_sales_total", nil))
	assert.Equal(t, int64(2), sumInt(t, rm, "growai_sales_total", &cashAttr))
	assert.Equal(t, int64(1), sumInt(t, rm, "growai_sales_total", &creditAttr))
	assert.Equal(t, int64(8), sumInt(t, rm, "growai_units_sold_total", nil))

	revenue, ok := findMetric(rm, "growai_sales_revenue_total")
	require.True(t, ok)
	var total float64
	for _, dp := range revenue.Data.(metricdata.Sum[float64]).DataPoints {
		total += dp.Value
	}
	assert.InDelta(t, 35.0, total, 1e-9)
}

func TestRetailMetrics_ForecastServed(t *testing.T) {
	m, reader := newTestRetailMetrics(t, nil)
	ctx := context.Background()

	m.ForecastServed(ctx, 1, 14, false)
	m.ForecastServed(ctx, 2, 14, true)
	m.ForecastServed(ctx, 2, 60, true)

	rm := collect(t, reader)
	synthetic := telemetry.AttrSynthetic.Bool(true)
	assert.Equal(t, int64(3), sumInt(t, rm, "growai_forecasts_total", nil))
	assert.Equal(t, int64(2), sumInt(t, rm, "growai_forecasts_total", &synthetic))

	horizon, ok := findMetric(rm, "growai_forecast_horizon_days")
	require.True(t, ok)
	var count uint64
	var sum float64
	for _, dp := range horizon.Data.(metricdata.Histogram[float64]).DataPoints {
		count += dp.Count
		sum += dp.Sum
	}
	assert.Equal(t, uint64(3), count)
	assert.InDelta(t, 88.0, sum, 1e-9)
}

func TestRetailMetrics_LowStockGauge(t *testing.T) {
	_, reader := newTestRetailMetrics(t, func(context.Context) (int64, error) {
		return 4, nil
	})

	rm := collect(t, reader)
	assert.Equal(t, int64(4), sumInt(t, rm, "growai_low_stock_products", nil))
}

func TestRetailMetrics_LowStockGaugeError(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	m, err := telemetry.NewRetailMetrics(provider.Meter("growai"), func(context.Context) (int64, error) {
		return 0, errors.New("database unavailable")
	}, zap.New(core))
	require.NoError(t, err)
	defer m.Close()

	rm := collect(t, reader)
	_, found := findMetric(rm, "growai_low_stock_products")
	assert.False(t, found)
	assert.Equal(t, 1, logs.FilterMessage("low stock gauge collection failed").Len())
}
