package report

import (
	"context"

	"github.com/growai/backend/internal/domain/catalog"
	"github.com/growai/backend/internal/domain/finance"
	"github.com/growai/backend/internal/domain/shared"
	"github.com/growai/backend/internal/domain/trade"
	"github.com/stretchr/testify/mock"
)

// memorySource is an in-memory RecordSource
type memorySource struct {
	sales    []trade.Sale
	dues     []finance.Due
	products []catalog.Product
	err      error

	lastFilter trade.SaleFilter
}

func (m *memorySource) ListSales(_ context.Context, filter trade.SaleFilter) ([]trade.Sale, error) {
	m.lastFilter = filter
	if m.err != nil {
		return nil, m.err
	}
	out := make([]trade.Sale, 0, len(m.sales))
	for _, s := range m.sales {
		if filter.ProductID != nil && s.ProductID != *filter.ProductID {
			continue
		}
		if filter.From != nil && s.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && s.CreatedAt.After(*filter.To) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memorySource) ListDues(_ context.Context) ([]finance.Due, error) {
	return m.dues, m.err
}

func (m *memorySource) ListProducts(_ context.Context) ([]catalog.Product, error) {
	return m.products, m.err
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint64) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uint64) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) DecreaseStock(ctx context.Context, id uint64, qty int) error {
	return m.Called(ctx, id, qty).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uint64) (*trade.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter trade.SaleFilter) ([]trade.Sale, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindRecent(ctx context.Context, limit int) ([]trade.Sale, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]trade.Sale), args.Error(1)
}

func (m *MockSaleRepository) QuantitySeries(ctx context.Context, productID uint64) ([]float64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]float64), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	return m.Called(ctx, sale).Error(0)
}
