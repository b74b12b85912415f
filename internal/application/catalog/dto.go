package catalog

import (
	"time"

	"github.com/growai/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	SKU          string          `json:"sku" binding:"required,min=1,max=64"`
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	Category     string          `json:"category" binding:"max=100"`
	Stock        int             `json:"stock" binding:"min=0"`
	Price        decimal.Decimal `json:"price" binding:"gte=0"`
	ReorderPoint int             `json:"reorder_point" binding:"min=0"`
}

// UpdateProductRequest represents a partial update of a product
type UpdateProductRequest struct {
	SKU          *string          `json:"sku" binding:"omitempty,min=1,max=64"`
	Name         *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Category     *string          `json:"category" binding:"omitempty,max=100"`
	Stock        *int             `json:"stock" binding:"omitempty,min=0"`
	Price        *decimal.Decimal `json:"price" binding:"omitempty,gte=0"`
	ReorderPoint *int             `json:"reorder_point" binding:"omitempty,min=0"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uint64          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Stock        int             `json:"stock"`
	Price        decimal.Decimal `json:"price"`
	ReorderPoint int             `json:"reorder_point"`
	LowStock     bool            `json:"low_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product to a response
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Category:     p.Category,
		Stock:        p.Stock,
		Price:        p.Price,
		ReorderPoint: p.ReorderPoint,
		LowStock:     p.IsLowStock(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
