package report

import (
	"context"
	"fmt"

	"github.com/growai/backend/internal/domain/report"
	"github.com/growai/backend/internal/domain/shared"
	"github.com/growai/backend/internal/domain/trade"
)

// Limits holds the defaults and upper bounds of report query parameters
type Limits struct {
	DefaultSeriesDays  int
	MaxSeriesDays      int
	DefaultTopProducts int
	MaxTopProducts     int
	DefaultRecent      int
	MaxRecent          int
}

// DefaultLimits returns the standard report limits
func DefaultLimits() Limits {
	return Limits{
		DefaultSeriesDays:  30,
		MaxSeriesDays:      120,
		DefaultTopProducts: 5,
		MaxTopProducts:     20,
		DefaultRecent:      10,
		MaxRecent:          50,
	}
}

// ReportService computes dashboard reports from stored records
type ReportService struct {
	source report.RecordSource
	clock  shared.Clock
	limits Limits
}

// NewReportService creates a new ReportService
func NewReportService(source report.RecordSource, clock shared.Clock, limits Limits) *ReportService {
	return &ReportService{
		source: source,
		clock:  clock,
		limits: limits,
	}
}

// Summary returns the dashboard headline figures
func (s *ReportService) Summary(ctx context.Context) (*SummaryResponse, error) {
	now := s.clock.Now()

	from := report.MonthWindow(now).Start
	if lookback := now.Add(-report.TopProductLookback); lookback.Before(from) {
		from = lookback
	}
	sales, err := s.source.ListSales(ctx, trade.SaleFilter{From: &from})
	if err != nil {
		return nil, err
	}
	dues, err := s.source.ListDues(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.source.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	summary := report.Summarize(report.Records{Sales: sales, Dues: dues, Products: products}, now)
	return toSummaryResponse(summary), nil
}

// SalesSeries returns daily sales totals for the last days days, oldest first
func (s *ReportService) SalesSeries(ctx context.Context, days int) ([]SeriesPointResponse, error) {
	days, err := resolveLimit("days", days, s.limits.DefaultSeriesDays, s.limits.MaxSeriesDays)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	from := report.TodayWindow(now).Start.AddDate(0, 0, -(days - 1))

	sales, err := s.source.ListSales(ctx, trade.SaleFilter{From: &from})
	if err != nil {
		return nil, err
	}

	points := report.SalesSeries(sales, days, now)
	responses := make([]SeriesPointResponse, len(points))
	for i, p := range points {
		responses[i] = SeriesPointResponse{Date: p.Date, Total: toFloat64(p.Total)}
	}
	return responses, nil
}

// TopProducts returns the best selling products by all-time revenue
func (s *ReportService) TopProducts(ctx context.Context, limit int) ([]TopProductResponse, error) {
	limit, err := resolveLimit("limit", limit, s.limits.DefaultTopProducts, s.limits.MaxTopProducts)
	if err != nil {
		return nil, err
	}
	records, err := s.load(ctx, false)
	if err != nil {
		return nil, err
	}

	entries := report.TopNProductsByRevenue(records.Sales, records.Products, limit)
	responses := make([]TopProductResponse, len(entries))
	for i := range entries {
		responses[i] = *toTopProductResponse(&entries[i])
	}
	return responses, nil
}

// CategoryShare returns revenue per category with its percentage of the total
func (s *ReportService) CategoryShare(ctx context.Context) ([]CategoryShareResponse, error) {
	records, err := s.load(ctx, false)
	if err != nil {
		return nil, err
	}

	entries := report.CategoryRevenueShare(records.Sales, records.Products)
	responses := make([]CategoryShareResponse, len(entries))
	for i, e := range entries {
		responses[i] = CategoryShareResponse{
			Category:   e.Category,
			Revenue:    toFloat64(e.Revenue),
			Percentage: toFloat64(e.Percentage),
		}
	}
	return responses, nil
}

// RecentActivity returns the merged feed of recent sales and dues
func (s *ReportService) RecentActivity(ctx context.Context, limit int) ([]ActivityResponse, error) {
	limit, err := resolveLimit("limit", limit, s.limits.DefaultRecent, s.limits.MaxRecent)
	if err != nil {
		return nil, err
	}
	records, err := s.load(ctx, true)
	if err != nil {
		return nil, err
	}

	items := report.RecentActivity(records.Sales, records.Dues, records.Products, limit)
	responses := make([]ActivityResponse, len(items))
	for i, item := range items {
		responses[i] = ActivityResponse{
			Type:      string(item.Type),
			ID:        item.ID,
			Title:     item.Title,
			Subtitle:  item.Subtitle,
			Amount:    toFloat64(item.Amount),
			Timestamp: item.Timestamp,
		}
	}
	return responses, nil
}

func (s *ReportService) load(ctx context.Context, withDues bool) (report.Records, error) {
	if withDues {
		return report.LoadRecords(ctx, s.source)
	}
	sales, err := s.source.ListSales(ctx, trade.SaleFilter{})
	if err != nil {
		return report.Records{}, err
	}
	products, err := s.source.ListProducts(ctx)
	if err != nil {
		return report.Records{}, err
	}
	return report.Records{Sales: sales, Products: products}, nil
}

// resolveLimit substitutes the default for zero and rejects values outside 1..max
func resolveLimit(name string, value, def, maximum int) (int, error) {
	if value == 0 {
		return def, nil
	}
	if value < 1 || value > maximum {
		return 0, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("%s must be between 1 and %d", name, maximum))
	}
	return value, nil
}
