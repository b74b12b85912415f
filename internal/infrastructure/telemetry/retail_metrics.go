package telemetry

import (
	"context"
	"errors"
	"fmt"

	apptrade "github.com/growai/backend/internal/application/trade"
	appreport "github.com/growai/backend/internal/application/report"
	"github.com/growai/backend/internal/domain/trade"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when no meter is supplied
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// Attribute keys shared by the retail instruments
var (
	AttrPayment   = attribute.Key("payment")
	AttrSynthetic = attribute.Key("synthetic")
)

// forecastHorizonBuckets are boundaries for requested horizons in days
var forecastHorizonBuckets = []float64{1, 7, 14, 30, 45, 60}

// LowStockCounter reports how many products sit at or below their reorder point
type LowStockCounter func(ctx context.Context) (int64, error)

// RetailMetrics records sale and forecast activity.
// It observes SaleService and ForecastService without them importing otel.
type RetailMetrics struct {
	logger *zap.Logger

	salesTotal      metric.Int64Counter
	unitsSoldTotal  metric.Int64Counter
	revenueTotal    metric.Float64Counter
	forecastsTotal  metric.Int64Counter
	forecastHorizon metric.Float64Histogram
	registration    metric.Registration
}

// NewRetailMetrics creates the instruments on meter. lowStock may be nil.
func NewRetailMetrics(meter metric.Meter, lowStock LowStockCounter, logger *zap.Logger) (*RetailMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &RetailMetrics{logger: logger}
	var err error

	if m.salesTotal, err = meter.Int64Counter("growai_sales_total",
		metric.WithDescription("Number of recorded sales"),
		metric.WithUnit("{sales}")); err != nil {
		return nil, fmt.Errorf("create sales counter: %w", err)
	}
	if m.unitsSoldTotal, err = meter.Int64Counter("growai_units_sold_total",
		metric.WithDescription("Units of stock sold"),
		metric.WithUnit("{units}")); err != nil {
		return nil, fmt.Errorf("create units counter: %w", err)
	}
	if m.revenueTotal, err = meter.Float64Counter("growai_sales_revenue_total",
		metric.WithDescription("Revenue of recorded sales"),
		metric.WithUnit("{currency}")); err != nil {
		return nil, fmt.Errorf("create revenue counter: %w", err)
	}
	if m.forecastsTotal, err = meter.Int64Counter("growai_forecasts_total",
		metric.WithDescription("Number of demand forecasts served"),
		metric.WithUnit("{forecasts}")); err != nil {
		return nil, fmt.Errorf("create forecast counter: %w", err)
	}
	if m.forecastHorizon, err = meter.Float64Histogram("growai_forecast_horizon_days",
		metric.WithDescription("Requested forecast horizon"),
		metric.WithUnit("d"),
		metric.WithExplicitBucketBoundaries(forecastHorizonBuckets...)); err != nil {
		return nil, fmt.Errorf("create horizon histogram: %w", err)
	}

	if lowStock != nil {
		gauge, err := meter.Int64ObservableGauge("growai_low_stock_products",
			metric.WithDescription("Products at or below their reorder point"),
			metric.WithUnit("{products}"))
		if err != nil {
			return nil, fmt.Errorf("create low stock gauge: %w", err)
		}
		m.registration, err = meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
			n, err := lowStock(ctx)
			if err != nil {
				m.logger.Warn("low stock gauge collection failed", zap.Error(err))
				return nil
			}
			o.ObserveInt64(gauge, n)
			return nil
		}, gauge)
		if err != nil {
			return nil, fmt.Errorf("register low stock callback: %w", err)
		}
	}

	return m, nil
}

// SaleRecorded implements the sale observer hook
func (m *RetailMetrics) SaleRecorded(ctx context.Context, sale *trade.Sale) {
	attrs := metric.WithAttributes(AttrPayment.String(sale.PaymentLabel()))
	m.salesTotal.Add(ctx, 1, attrs)
	m.unitsSoldTotal.Add(ctx, int64(sale.Quantity), attrs)
	m.revenueTotal.Add(ctx, sale.Revenue().InexactFloat64(), attrs)
}

// ForecastServed implements report.ForecastObserver
func (m *RetailMetrics) ForecastServed(ctx context.Context, _ uint64, horizon int, synthetic bool) {
	attrs := metric.WithAttributes(AttrSynthetic.Bool(synthetic))
	m.forecastsTotal.Add(ctx, 1, attrs)
	m.forecastHorizon.Record(ctx, float64(horizon), attrs)
}

// Close unregisters the low stock callback
func (m *RetailMetrics) Close() error {
	if m.registration == nil {
		return nil
	}
	return m.registration.Unregister()
}

var (
	_ apptrade.SaleObserver      = (*RetailMetrics)(nil)
	_ appreport.ForecastObserver = (*RetailMetrics)(nil)
)
