package report

import "github.com/growai/backend/internal/domain/catalog"

// SeriesPolicy decides which series the forecaster receives for a product.
// It lets callers substitute a baseline when a product has no sales history.
type SeriesPolicy interface {
	Resolve(history TimeSeries, product *catalog.Product) TimeSeries
}

// HistoryOnlyPolicy passes the observed history through unchanged
type HistoryOnlyPolicy struct{}

// Resolve implements SeriesPolicy
func (HistoryOnlyPolicy) Resolve(history TimeSeries, _ *catalog.Product) TimeSeries {
	return history
}

// SyntheticBaselinePolicy substitutes a gently oscillating baseline derived
// from current stock when there is no history.
type SyntheticBaselinePolicy struct {
	// Length is the number of synthetic points
	Length int
	// MinBase is the lowest baseline level
	MinBase int
}

// NewSyntheticBaselinePolicy returns the policy with 60 points and a floor of 8
func NewSyntheticBaselinePolicy() SyntheticBaselinePolicy {
	return SyntheticBaselinePolicy{Length: 60, MinBase: 8}
}

// Resolve implements SeriesPolicy
func (p SyntheticBaselinePolicy) Resolve(history TimeSeries, product *catalog.Product) TimeSeries {
	if len(history) > 0 {
		return history
	}
	stock := 0
	if product != nil {
		stock = product.Stock
	}
	return p.Baseline(stock)
}

// Baseline builds the synthetic series: base = max(MinBase, stock/3),
// value_i = max(0, base + 3*(i mod 5) - 2).
func (p SyntheticBaselinePolicy) Baseline(stock int) TimeSeries {
	base := max(p.MinBase, stock/3)
	series := make(TimeSeries, max(p.Length, 0))
	for i := range series {
		series[i] = float64(max(0, base+3*(i%5)-2))
	}
	return series
}
