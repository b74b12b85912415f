package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	tradeapp "github.com/growai/backend/internal/application/trade"
	"github.com/growai/backend/internal/interfaces/http/dto"
)

// IdempotencyKeyHeader lets clients retry POST /sales safely
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLength = 128

// SaleHandler handles sale endpoints
type SaleHandler struct {
	BaseHandler
	saleService *tradeapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *tradeapp.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// List returns all sales newest first
func (h *SaleHandler) List(c *gin.Context) {
	sales, err := h.saleService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, sales, len(sales))
}

// Create records a sale. Credit sales also open a due for the customer.
func (h *SaleHandler) Create(c *gin.Context) {
	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	if len(key) > maxIdempotencyKeyLength {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Idempotency-Key is too long")
		return
	}

	var req tradeapp.CreateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	req.IdempotencyKey = key

	sale, err := h.saleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}
