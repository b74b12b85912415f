package report

import "github.com/shopspring/decimal"

// groupSum folds items into per-key decimal totals. Items for which key
// reports false are skipped.
func groupSum[T any, K comparable](items []T, key func(T) (K, bool), value func(T) decimal.Decimal) map[K]decimal.Decimal {
	sums := make(map[K]decimal.Decimal)
	for _, item := range items {
		k, ok := key(item)
		if !ok {
			continue
		}
		sums[k] = sums[k].Add(value(item))
	}
	return sums
}

// sumWhere totals value over the items that match keep
func sumWhere[T any](items []T, keep func(T) bool, value func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if keep(item) {
			total = total.Add(value(item))
		}
	}
	return total
}
