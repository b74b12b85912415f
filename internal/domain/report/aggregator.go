package report

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/growai/backend/internal/domain/catalog"
	"github.com/growai/backend/internal/domain/finance"
	"github.com/growai/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// TopProductLookback is how far back the summary looks for its top product
const TopProductLookback = 30 * 24 * time.Hour

var hundred = decimal.NewFromInt(100)

// startOfDay returns midnight of t's calendar day in t's location
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay returns the last representable instant of t's calendar day
func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// TodayWindow covers the calendar day of now
func TodayWindow(now time.Time) Window {
	return Window{Start: startOfDay(now), End: endOfDay(now)}
}

// WeekWindow covers the most recent Monday up to the end of today
func WeekWindow(now time.Time) Window {
	sinceMonday := (int(now.Weekday()) + 6) % 7
	return Window{Start: startOfDay(now).AddDate(0, 0, -sinceMonday), End: endOfDay(now)}
}

// MonthWindow covers the first of the month up to the end of today
func MonthWindow(now time.Time) Window {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Window{Start: first, End: endOfDay(now)}
}

func saleRevenue(s trade.Sale) decimal.Decimal {
	return s.Revenue()
}

// WindowedSalesTotal sums sale revenue created inside the window
func WindowedSalesTotal(sales []trade.Sale, window Window) decimal.Decimal {
	return sumWhere(sales, func(s trade.Sale) bool { return window.Contains(s.CreatedAt) }, saleRevenue)
}

// PendingDuesTotal sums the amount of unsettled dues
func PendingDuesTotal(dues []finance.Due) decimal.Decimal {
	return sumWhere(dues,
		func(d finance.Due) bool { return !d.IsSettled },
		func(d finance.Due) decimal.Decimal { return d.Amount })
}

// LowStockCount counts products at or below their reorder point
func LowStockCount(products []catalog.Product) int {
	count := 0
	for i := range products {
		if products[i].IsLowStock() {
			count++
		}
	}
	return count
}

// LowStockProducts returns products at or below their reorder point,
// lowest stock gap first
func LowStockProducts(products []catalog.Product) []catalog.Product {
	low := make([]catalog.Product, 0)
	for i := range products {
		if products[i].IsLowStock() {
			low = append(low, products[i])
		}
	}
	slices.SortStableFunc(low, func(a, b catalog.Product) int {
		return cmp.Compare(a.StockGap(), b.StockGap())
	})
	return low
}

func indexProducts(products []catalog.Product) map[uint64]*catalog.Product {
	index := make(map[uint64]*catalog.Product, len(products))
	for i := range products {
		index[products[i].ID] = &products[i]
	}
	return index
}

// rankProducts groups sales by product and orders the totals by revenue
// descending, lowest product ID first on ties. Sales of unknown products
// are skipped.
func rankProducts(sales []trade.Sale, products []catalog.Product) []TopProductEntry {
	index := indexProducts(products)
	sums := groupSum(sales, func(s trade.Sale) (uint64, bool) {
		_, ok := index[s.ProductID]
		return s.ProductID, ok
	}, saleRevenue)

	ranked := make([]TopProductEntry, 0, len(sums))
	for id, revenue := range sums {
		ranked = append(ranked, TopProductEntry{ProductID: id, Name: index[id].Name, Revenue: revenue})
	}
	slices.SortFunc(ranked, func(a, b TopProductEntry) int {
		if c := b.Revenue.Cmp(a.Revenue); c != 0 {
			return c
		}
		return cmp.Compare(a.ProductID, b.ProductID)
	})
	return ranked
}

// TopProductByRevenueInWindow returns the best selling product by revenue
// among sales created at or after windowStart, or nil when there are none.
func TopProductByRevenueInWindow(sales []trade.Sale, products []catalog.Product, windowStart time.Time) *TopProductEntry {
	inWindow := make([]trade.Sale, 0, len(sales))
	for _, s := range sales {
		if !s.CreatedAt.Before(windowStart) {
			inWindow = append(inWindow, s)
		}
	}
	ranked := rankProducts(inWindow, products)
	if len(ranked) == 0 {
		return nil
	}
	top := ranked[0]
	return &top
}

// TopNProductsByRevenue returns at most n products ranked by all-time revenue
func TopNProductsByRevenue(sales []trade.Sale, products []catalog.Product, n int) []TopProductEntry {
	if n <= 0 {
		return []TopProductEntry{}
	}
	ranked := rankProducts(sales, products)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// CategoryRevenueShare groups revenue by product category. Percentages are
// rounded to 2 places; a zero total is divided by 1 instead.
func CategoryRevenueShare(sales []trade.Sale, products []catalog.Product) []CategoryShareEntry {
	index := indexProducts(products)
	sums := groupSum(sales, func(s trade.Sale) (string, bool) {
		p, ok := index[s.ProductID]
		if !ok {
			return "", false
		}
		return p.Category, true
	}, saleRevenue)

	total := decimal.Zero
	for _, revenue := range sums {
		total = total.Add(revenue)
	}
	divisor := total
	if divisor.IsZero() {
		divisor = decimal.NewFromInt(1)
	}

	shares := make([]CategoryShareEntry, 0, len(sums))
	for category, revenue := range sums {
		shares = append(shares, CategoryShareEntry{
			Category:   category,
			Revenue:    revenue,
			Percentage: revenue.Div(divisor).Mul(hundred).Round(2),
		})
	}
	slices.SortFunc(shares, func(a, b CategoryShareEntry) int {
		if c := b.Revenue.Cmp(a.Revenue); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return shares
}

// SalesSeries returns one point per calendar day for the last days days,
// oldest first and ending today. Days are taken in now's location.
func SalesSeries(sales []trade.Sale, days int, now time.Time) []SeriesPoint {
	if days <= 0 {
		return []SeriesPoint{}
	}
	loc := now.Location()
	window := Window{Start: startOfDay(now).AddDate(0, 0, -(days - 1)), End: endOfDay(now)}

	sums := groupSum(sales, func(s trade.Sale) (string, bool) {
		at := s.CreatedAt.In(loc)
		if !window.Contains(at) {
			return "", false
		}
		return at.Format(time.DateOnly), true
	}, saleRevenue)

	points := make([]SeriesPoint, days)
	for i := range points {
		date := window.Start.AddDate(0, 0, i).Format(time.DateOnly)
		total, ok := sums[date]
		if !ok {
			total = decimal.Zero
		}
		points[i] = SeriesPoint{Date: date, Total: total}
	}
	return points
}

// RecentActivity merges the limit newest sales with the limit newest dues,
// newest first, truncated to limit. Each kind is limited independently
// before the merge, so one kind can crowd out the other.
func RecentActivity(sales []trade.Sale, dues []finance.Due, products []catalog.Product, limit int) []ActivityItem {
	if limit <= 0 {
		return []ActivityItem{}
	}
	index := indexProducts(products)

	items := make([]ActivityItem, 0, 2*limit)
	for _, s := range newest(sales, limit, func(s trade.Sale) time.Time { return s.CreatedAt }) {
		name := fmt.Sprintf("product #%d", s.ProductID)
		if p, ok := index[s.ProductID]; ok {
			name = p.Name
		}
		items = append(items, ActivityItem{
			Type:      ActivitySale,
			ID:        s.ID,
			Title:     fmt.Sprintf("Sold %d × %s", s.Quantity, name),
			Subtitle:  s.PaymentLabel(),
			Amount:    s.Revenue(),
			Timestamp: s.CreatedAt,
		})
	}
	for _, d := range newest(dues, limit, func(d finance.Due) time.Time { return d.CreatedAt }) {
		items = append(items, ActivityItem{
			Type:      ActivityDue,
			ID:        d.ID,
			Title:     "Due: " + d.CustomerName,
			Subtitle:  d.StatusLabel(),
			Amount:    d.Amount,
			Timestamp: d.CreatedAt,
		})
	}

	slices.SortStableFunc(items, func(a, b ActivityItem) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

// newest returns a copy of the limit most recent items, newest first
func newest[T any](items []T, limit int, at func(T) time.Time) []T {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return at(b).Compare(at(a))
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// Summarize computes the dashboard summary as of now
func Summarize(records Records, now time.Time) ReportSummary {
	return ReportSummary{
		TodaySales:  WindowedSalesTotal(records.Sales, TodayWindow(now)),
		WeekSales:   WindowedSalesTotal(records.Sales, WeekWindow(now)),
		MonthSales:  WindowedSalesTotal(records.Sales, MonthWindow(now)),
		PendingDues: PendingDuesTotal(records.Dues),
		LowStock:    LowStockCount(records.Products),
		TopProduct:  TopProductByRevenueInWindow(records.Sales, records.Products, now.Add(-TopProductLookback)),
	}
}
