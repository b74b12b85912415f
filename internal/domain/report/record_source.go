package report

import (
	"context"

	"github.com/growai/backend/internal/domain/catalog"
	"github.com/growai/backend/internal/domain/finance"
	"github.com/growai/backend/internal/domain/trade"
)

// RecordSource is read access to the records the reports are computed from
type RecordSource interface {
	// ListSales returns sales matching the filter ordered by creation time ascending
	ListSales(ctx context.Context, filter trade.SaleFilter) ([]trade.Sale, error)

	// ListDues returns all dues ordered by creation time ascending
	ListDues(ctx context.Context) ([]finance.Due, error)

	// ListProducts returns all products
	ListProducts(ctx context.Context) ([]catalog.Product, error)
}

// Records is an in-memory snapshot of everything a report needs
type Records struct {
	Sales    []trade.Sale
	Dues     []finance.Due
	Products []catalog.Product
}

// LoadRecords reads a full snapshot from the source
func LoadRecords(ctx context.Context, source RecordSource) (Records, error) {
	sales, err := source.ListSales(ctx, trade.SaleFilter{})
	if err != nil {
		return Records{}, err
	}
	dues, err := source.ListDues(ctx)
	if err != nil {
		return Records{}, err
	}
	products, err := source.ListProducts(ctx)
	if err != nil {
		return Records{}, err
	}
	return Records{Sales: sales, Dues: dues, Products: products}, nil
}
