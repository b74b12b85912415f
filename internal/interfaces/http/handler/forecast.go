package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/growai/backend/internal/application/report"
)

// ForecastHandler serves demand forecasts
type ForecastHandler struct {
	BaseHandler
	forecastService *reportapp.ForecastService
}

// NewForecastHandler creates a new ForecastHandler
func NewForecastHandler(forecastService *reportapp.ForecastService) *ForecastHandler {
	return &ForecastHandler{forecastService: forecastService}
}

// Forecast projects daily demand of a product
func (h *ForecastHandler) Forecast(c *gin.Context) {
	var req reportapp.ForecastRequest
	if !h.BindJSON(c, &req) {
		return
	}
	forecast, err := h.forecastService.Forecast(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, forecast)
}
