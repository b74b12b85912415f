package handler

import (
	"github.com/gin-gonic/gin"
	financeapp "github.com/growai/backend/internal/application/finance"
)

// DueHandler handles customer due endpoints
type DueHandler struct {
	BaseHandler
	dueService *financeapp.DueService
}

// NewDueHandler creates a new DueHandler
func NewDueHandler(dueService *financeapp.DueService) *DueHandler {
	return &DueHandler{dueService: dueService}
}

// List returns unsettled dues first, newest first within each group
func (h *DueHandler) List(c *gin.Context) {
	dues, err := h.dueService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, dues, len(dues))
}

// Create records a due
func (h *DueHandler) Create(c *gin.Context) {
	var req financeapp.CreateDueRequest
	if !h.BindJSON(c, &req) {
		return
	}
	due, err := h.dueService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, due)
}

// Settle marks a due as settled; settling twice is harmless
func (h *DueHandler) Settle(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	due, err := h.dueService.Settle(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, due)
}
