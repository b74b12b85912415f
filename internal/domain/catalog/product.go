package catalog

import (
	"strings"
	"time"

	"github.com/growai/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultCategory is assigned to products created without a category
const DefaultCategory = "General"

// Product represents a stocked item in the shop catalog
// It is the aggregate root for stock movements
type Product struct {
	shared.BaseEntity
	SKU          string
	Name         string
	Category     string
	Stock        int
	Price        decimal.Decimal
	ReorderPoint int
}

// NewProduct creates a new product
func NewProduct(sku, name, category string, stock int, price decimal.Decimal, reorderPoint int, now time.Time) (*Product, error) {
	sku = strings.TrimSpace(sku)
	name = strings.TrimSpace(name)
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateStock(stock); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}

	return &Product{
		BaseEntity:   shared.NewBaseEntity(now),
		SKU:          sku,
		Name:         name,
		Category:     normalizeCategory(category),
		Stock:        stock,
		Price:        price,
		ReorderPoint: reorderPoint,
	}, nil
}

// ProductPatch carries the optional fields of a partial update.
// Nil fields are left untouched.
type ProductPatch struct {
	SKU          *string
	Name         *string
	Category     *string
	Stock        *int
	Price        *decimal.Decimal
	ReorderPoint *int
}

// Apply validates the patch and applies it to the product
func (p *Product) Apply(patch ProductPatch, now time.Time) error {
	next := *p

	if patch.SKU != nil {
		sku := strings.TrimSpace(*patch.SKU)
		if err := validateSKU(sku); err != nil {
			return err
		}
		next.SKU = sku
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := validateProductName(name); err != nil {
			return err
		}
		next.Name = name
	}
	if patch.Category != nil {
		next.Category = normalizeCategory(*patch.Category)
	}
	if patch.Stock != nil {
		if err := validateStock(*patch.Stock); err != nil {
			return err
		}
		next.Stock = *patch.Stock
	}
	if patch.Price != nil {
		if err := validatePrice(*patch.Price); err != nil {
			return err
		}
		next.Price = *patch.Price
	}
	if patch.ReorderPoint != nil {
		next.ReorderPoint = *patch.ReorderPoint
	}

	next.UpdatedAt = now
	*p = next
	return nil
}

// CanFulfill reports whether qty units are available
func (p *Product) CanFulfill(qty int) bool {
	return qty > 0 && p.Stock >= qty
}

// DecreaseStock removes qty units from stock.
// Stock never goes negative; an oversell returns ErrInsufficientStock.
func (p *Product) DecreaseStock(qty int, now time.Time) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if p.Stock < qty {
		return shared.ErrInsufficientStock
	}
	p.Stock -= qty
	p.UpdatedAt = now
	return nil
}

// IsLowStock returns true when stock has fallen to the reorder point or below
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.ReorderPoint
}

// StockGap is stock minus reorder point; the most urgent products have the lowest gap
func (p *Product) StockGap() int {
	return p.Stock - p.ReorderPoint
}

func normalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return DefaultCategory
	}
	return category
}

// validateSKU validates the stock keeping unit code
func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product SKU cannot be empty")
	}
	if len(sku) > 64 {
		return shared.NewDomainError("INVALID_INPUT", "Product SKU cannot exceed 64 characters")
	}
	return nil
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_INPUT", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validateStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Stock cannot be negative")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Price cannot be negative")
	}
	return nil
}
