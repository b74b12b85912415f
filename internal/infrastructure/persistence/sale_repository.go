package persistence

import (
	"context"

	"github.com/growai/backend/internal/domain/trade"
	"github.com/growai/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by its ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uint64) (*trade.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns sales matching the filter, oldest first
func (r *GormSaleRepository) FindAll(ctx context.Context, filter trade.SaleFilter) ([]trade.Sale, error) {
	query := r.db.WithContext(ctx).Model(&models.SaleModel{})
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var ms []models.SaleModel
	if err := query.Order("created_at ASC, id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return models.SalesToDomain(ms), nil
}

// FindRecent returns up to limit sales, newest first. A limit of 0 returns all.
func (r *GormSaleRepository) FindRecent(ctx context.Context, limit int) ([]trade.Sale, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var ms []models.SaleModel
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return models.SalesToDomain(ms), nil
}

// QuantitySeries returns the quantities sold of a product in the order they were recorded
func (r *GormSaleRepository) QuantitySeries(ctx context.Context, productID uint64) ([]float64, error) {
	var quantities []float64
	if err := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("product_id = ?", productID).
		Order("created_at ASC, id ASC").
		Pluck("quantity", &quantities).Error; err != nil {
		return nil, err
	}
	return quantities, nil
}

// Save persists a new sale and assigns its ID
func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	model := models.SaleModelFromDomain(sale)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	sale.ID = model.ID
	return nil
}

// Ensure GormSaleRepository implements SaleRepository
var _ trade.SaleRepository = (*GormSaleRepository)(nil)
