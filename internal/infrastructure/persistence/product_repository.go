package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/growai/backend/internal/domain/catalog"
	"github.com/growai/backend/internal/domain/shared"
	"github.com/growai/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// ErrProductInUse is returned when deleting a product that sales still reference
var ErrProductInUse = shared.NewDomainError("INVALID_STATE", "Product has recorded sales and cannot be deleted")

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uint64) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindBySKU finds a product by its SKU
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).Where("sku = ?", strings.TrimSpace(sku)).First(&model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var ms []models.ProductModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return models.ProductsToDomain(ms), nil
}

// FindByIDs finds multiple products by their IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uint64) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var ms []models.ProductModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ms).Error; err != nil {
		return nil, err
	}
	return models.ProductsToDomain(ms), nil
}

// FindLowStock finds products at or below their reorder point, smallest margin first
func (r *GormProductRepository) FindLowStock(ctx context.Context) ([]catalog.Product, error) {
	var ms []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("stock <= reorder_point").
		Order("stock - reorder_point ASC, id ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return models.ProductsToDomain(ms), nil
}

// Save creates or updates a product. A new product gets its generated ID back.
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)

	var err error
	if product.IsNew() {
		err = r.db.WithContext(ctx).Create(model).Error
	} else {
		err = r.db.WithContext(ctx).Save(model).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError("ALREADY_EXISTS", "Product with SKU '"+product.SKU+"' already exists")
		}
		return err
	}
	product.ID = model.ID
	return nil
}

// DecreaseStock removes qty units with a single conditional UPDATE so that
// concurrent sales can never drive stock below zero.
func (r *GormProductRepository) DecreaseStock(ctx context.Context, id uint64, qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}

	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ? AND stock >= ?", id, qty).
		Updates(map[string]any{
			"stock":      gorm.Expr("stock - ?", qty),
			"updated_at": r.db.NowFunc(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	return shared.ErrInsufficientStock
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return ErrProductInUse
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsBySKU checks if a product with the given SKU exists
func (r *GormProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("sku = ?", strings.TrimSpace(sku)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies search, field filters and ordering
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "low_stock":
			if value == true {
				query = query.Where("stock <= reorder_point")
			}
		}
	}

	orderBy := ValidateSortField(filter.OrderBy, ProductSortFields, "id")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
