package report

import (
	"time"

	"github.com/growai/backend/internal/domain/report"
	"github.com/shopspring/decimal"
)

// SummaryResponse represents the dashboard summary
type SummaryResponse struct {
	TodaySales  float64             `json:"today_sales"`
	WeekSales   float64             `json:"week_sales"`
	MonthSales  float64             `json:"month_sales"`
	PendingDues float64             `json:"pending_dues"`
	LowStock    int                 `json:"low_stock"`
	TopProduct  *TopProductResponse `json:"top_product"`
}

// SeriesPointResponse is one day of the sales series
type SeriesPointResponse struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// TopProductResponse represents a product ranked by revenue
type TopProductResponse struct {
	ProductID uint64  `json:"product_id"`
	Name      string  `json:"name"`
	Revenue   float64 `json:"revenue"`
}

// CategoryShareResponse represents a category's share of revenue
type CategoryShareResponse struct {
	Category   string  `json:"category"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

// ActivityResponse is an entry of the recent activity feed
type ActivityResponse struct {
	Type      string    `json:"type"`
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// ForecastRequest asks for a demand projection for one product
type ForecastRequest struct {
	ProductID   uint64 `json:"product_id" binding:"required"`
	HorizonDays int    `json:"horizon_days" binding:"required,min=1,max=60"`
}

// ForecastPointResponse is one projected day
type ForecastPointResponse struct {
	Date        string  `json:"date"`
	ForecastQty float64 `json:"forecast_qty"`
}

// ForecastResponse is the projected demand of a product
type ForecastResponse struct {
	ProductID     uint64                  `json:"product_id"`
	ProductName   string                  `json:"product_name"`
	HorizonDays   int                     `json:"horizon_days"`
	Alpha         float64                 `json:"alpha"`
	Beta          float64                 `json:"beta"`
	HistoryPoints int                     `json:"history_points"`
	Synthetic     bool                    `json:"synthetic"`
	Points        []ForecastPointResponse `json:"points"`
}

func toFloat64(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func toTopProductResponse(e *report.TopProductEntry) *TopProductResponse {
	if e == nil {
		return nil
	}
	return &TopProductResponse{ProductID: e.ProductID, Name: e.Name, Revenue: toFloat64(e.Revenue)}
}

func toSummaryResponse(s report.ReportSummary) *SummaryResponse {
	return &SummaryResponse{
		TodaySales:  toFloat64(s.TodaySales),
		WeekSales:   toFloat64(s.WeekSales),
		MonthSales:  toFloat64(s.MonthSales),
		PendingDues: toFloat64(s.PendingDues),
		LowStock:    s.LowStock,
		TopProduct:  toTopProductResponse(s.TopProduct),
	}
}
