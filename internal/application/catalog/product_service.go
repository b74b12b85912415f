package catalog

import (
	"context"
	"strings"

	"github.com/growai/backend/internal/domain/catalog"
	"github.com/growai/backend/internal/domain/shared"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	clock       shared.Clock
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, clock shared.Clock) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		clock:       clock,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, strings.TrimSpace(req.SKU))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	product, err := catalog.NewProduct(req.SKU, req.Name, req.Category, req.Stock, req.Price, req.ReorderPoint, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uint64) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List returns all products, newest first
func (s *ProductService) List(ctx context.Context, search string) ([]ProductResponse, error) {
	filter := shared.DefaultFilter()
	filter.Search = strings.TrimSpace(search)

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// ListLowStock returns products at or below their reorder point, most urgent first
func (s *ProductService) ListLowStock(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Update applies a partial update to a product
func (s *ProductService) Update(ctx context.Context, id uint64, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SKU != nil {
		sku := strings.TrimSpace(*req.SKU)
		if sku != product.SKU {
			exists, err := s.productRepo.ExistsBySKU(ctx, sku)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
			}
		}
	}

	patch := catalog.ProductPatch{
		SKU:          req.SKU,
		Name:         req.Name,
		Category:     req.Category,
		Stock:        req.Stock,
		Price:        req.Price,
		ReorderPoint: req.ReorderPoint,
	}
	if err := product.Apply(patch, s.clock.Now()); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}
