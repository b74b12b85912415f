package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/growai/backend/internal/application/catalog"
)

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List returns products newest first, optionally filtered by ?search=
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productService.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, products, len(products))
}

// ListLowStock returns products at or below their reorder point, most urgent first
func (h *ProductHandler) ListLowStock(c *gin.Context) {
	products, err := h.productService.ListLowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, products, len(products))
}

// GetByID returns one product
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Create adds a product to the catalog
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update applies the provided fields to a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	var req catalogapp.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete removes a product that has no recorded sales
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
