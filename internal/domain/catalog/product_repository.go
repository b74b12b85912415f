package catalog

import (
	"context"

	"github.com/growai/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uint64) (*Product, error)

	// FindBySKU finds a product by its SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uint64) ([]Product, error)

	// FindLowStock finds products with stock at or below their reorder point,
	// most urgent first
	FindLowStock(ctx context.Context) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// DecreaseStock atomically removes qty units if enough stock remains,
	// returning shared.ErrInsufficientStock otherwise
	DecreaseStock(ctx context.Context, id uint64, qty int) error

	// Delete deletes a product
	Delete(ctx context.Context, id uint64) error

	// ExistsBySKU checks if a product with the given SKU exists
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
}
