package persistence

import (
	"context"

	"github.com/growai/backend/internal/domain/catalog"
	"github.com/growai/backend/internal/domain/finance"
	"github.com/growai/backend/internal/domain/report"
	"github.com/growai/backend/internal/domain/shared"
	"github.com/growai/backend/internal/domain/trade"
	"github.com/growai/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReportSource reads the rows reports are computed from
type GormReportSource struct {
	db       *gorm.DB
	sales    *GormSaleRepository
	products *GormProductRepository
}

// NewGormReportSource creates a new GormReportSource
func NewGormReportSource(db *gorm.DB) *GormReportSource {
	return &GormReportSource{
		db:       db,
		sales:    NewGormSaleRepository(db),
		products: NewGormProductRepository(db),
	}
}

// ListSales returns sales matching the filter, oldest first
func (s *GormReportSource) ListSales(ctx context.Context, filter trade.SaleFilter) ([]trade.Sale, error) {
	return s.sales.FindAll(ctx, filter)
}

// ListDues returns all dues, oldest first
func (s *GormReportSource) ListDues(ctx context.Context) ([]finance.Due, error) {
	var ms []models.DueModel
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return models.DuesToDomain(ms), nil
}

// ListProducts returns all products ordered by ID
func (s *GormReportSource) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	filter := shared.DefaultFilter()
	filter.OrderDir = "asc"
	return s.products.FindAll(ctx, filter)
}

// Ensure GormReportSource implements RecordSource
var _ report.RecordSource = (*GormReportSource)(nil)
