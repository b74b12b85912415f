package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	reportapp "github.com/growai/backend/internal/application/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the dashboard reports
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
	exportService *reportapp.ExportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService, exportService *reportapp.ExportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		exportService: exportService,
	}
}

// Summary returns today/week/month sales, pending dues, low stock count and top product
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// SalesSeries returns daily revenue for ?days= days ending today
func (h *ReportHandler) SalesSeries(c *gin.Context) {
	days, ok := h.QueryInt(c, "days")
	if !ok {
		return
	}
	series, err := h.reportService.SalesSeries(c.Request.Context(), days)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, series)
}

// TopProducts returns the ?limit= best selling products by revenue
func (h *ReportHandler) TopProducts(c *gin.Context) {
	limit, ok := h.QueryInt(c, "limit")
	if !ok {
		return
	}
	top, err := h.reportService.TopProducts(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, top)
}

// CategoryShare returns each category's share of revenue
func (h *ReportHandler) CategoryShare(c *gin.Context) {
	shares, err := h.reportService.CategoryShare(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shares)
}

// RecentActivity returns the newest sales and dues merged
func (h *ReportHandler) RecentActivity(c *gin.Context) {
	limit, ok := h.QueryInt(c, "limit")
	if !ok {
		return
	}
	activity, err := h.reportService.RecentActivity(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, activity)
}

// Export downloads the reports as an XLSX workbook
func (h *ReportHandler) Export(c *gin.Context) {
	days, ok := h.QueryInt(c, "days")
	if !ok {
		return
	}
	limit, ok := h.QueryInt(c, "limit")
	if !ok {
		return
	}
	workbook, err := h.exportService.ExportWorkbook(c.Request.Context(), days, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.exportService.Filename()))
	c.Data(http.StatusOK, xlsxContentType, workbook)
}
