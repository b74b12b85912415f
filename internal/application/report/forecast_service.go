package report

import (
	"context"

	"github.com/growai/backend/internal/domain/catalog"
	"github.com/growai/backend/internal/domain/report"
	"github.com/growai/backend/internal/domain/shared"
	"github.com/growai/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ForecastObserver is notified after each forecast
type ForecastObserver interface {
	ForecastServed(ctx context.Context, productID uint64, horizon int, synthetic bool)
}

// ForecastService projects product demand from its sales history
type ForecastService struct {
	productRepo catalog.ProductRepository
	saleRepo    trade.SaleRepository
	forecaster  *report.TrendForecaster
	policy      report.SeriesPolicy
	maxHorizon  int
	clock       shared.Clock
	logger      *zap.Logger
	observer    ForecastObserver
}

// NewForecastService creates a new ForecastService
func NewForecastService(
	productRepo catalog.ProductRepository,
	saleRepo trade.SaleRepository,
	forecaster *report.TrendForecaster,
	policy report.SeriesPolicy,
	maxHorizon int,
	clock shared.Clock,
	logger *zap.Logger,
) *ForecastService {
	if policy == nil {
		policy = report.HistoryOnlyPolicy{}
	}
	return &ForecastService{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		forecaster:  forecaster,
		policy:      policy,
		maxHorizon:  maxHorizon,
		clock:       clock,
		logger:      logger,
	}
}

// SetObserver registers an observer for served forecasts
func (s *ForecastService) SetObserver(observer ForecastObserver) {
	s.observer = observer
}

// Forecast projects daily sold quantity for the next HorizonDays days
func (s *ForecastService) Forecast(ctx context.Context, req ForecastRequest) (*ForecastResponse, error) {
	if req.HorizonDays < 1 || req.HorizonDays > s.maxHorizon {
		return nil, shared.NewDomainError("INVALID_INPUT", "horizon_days is out of range")
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	history, err := s.saleRepo.QuantitySeries(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	series := s.policy.Resolve(report.TimeSeries(history), product)
	synthetic := len(history) == 0 && len(series) > 0

	values := s.forecaster.Forecast(series, req.HorizonDays)
	dates := report.BuildFutureDates(s.clock.Now(), req.HorizonDays)

	points := make([]ForecastPointResponse, 0, len(values))
	for _, p := range report.ZipForecast(dates, values) {
		points = append(points, ForecastPointResponse{
			Date:        p.Date,
			ForecastQty: decimal.NewFromFloat(p.ForecastQty).Round(2).InexactFloat64(),
		})
	}

	s.logger.Debug("Forecast computed",
		zap.Uint64("product_id", product.ID),
		zap.Int("horizon_days", req.HorizonDays),
		zap.Int("history_points", len(history)),
		zap.Bool("synthetic", synthetic),
	)
	if s.observer != nil {
		s.observer.ForecastServed(ctx, product.ID, req.HorizonDays, synthetic)
	}

	return &ForecastResponse{
		ProductID:     product.ID,
		ProductName:   product.Name,
		HorizonDays:   req.HorizonDays,
		Alpha:         s.forecaster.Alpha(),
		Beta:          s.forecaster.Beta(),
		HistoryPoints: len(history),
		Synthetic:     synthetic,
		Points:        points,
	}, nil
}
