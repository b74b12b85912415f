package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeSeries is an ordered sequence of observations, index 0 being the oldest
type TimeSeries []float64

// ForecastPoint is a single projected value for a calendar date
type ForecastPoint struct {
	Date        string  `json:"date"`
	ForecastQty float64 `json:"forecast_qty"`
}

// Window is an inclusive time range
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside [Start, End]
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ReportSummary is the dashboard headline figures
type ReportSummary struct {
	TodaySales  decimal.Decimal  `json:"today_sales"`
	WeekSales   decimal.Decimal  `json:"week_sales"`
	MonthSales  decimal.Decimal  `json:"month_sales"`
	PendingDues decimal.Decimal  `json:"pending_dues"`
	LowStock    int              `json:"low_stock"`
	TopProduct  *TopProductEntry `json:"top_product,omitempty"`
}

// SeriesPoint is the sales total of one calendar day
type SeriesPoint struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// TopProductEntry is a product ranked by revenue
type TopProductEntry struct {
	ProductID uint64          `json:"product_id"`
	Name      string          `json:"name"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// CategoryShareEntry is the revenue of a category and its share of the total
type CategoryShareEntry struct {
	Category   string          `json:"category"`
	Revenue    decimal.Decimal `json:"revenue"`
	Percentage decimal.Decimal `json:"percentage"`
}

// ActivityType distinguishes entries in the activity feed
type ActivityType string

const (
	ActivitySale ActivityType = "sale"
	ActivityDue  ActivityType = "due"
)

// ActivityItem is one entry of the recent activity feed
type ActivityItem struct {
	Type      ActivityType    `json:"type"`
	ID        uint64          `json:"id"`
	Title     string          `json:"title"`
	Subtitle  string          `json:"subtitle"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
}
