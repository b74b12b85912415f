package router

import (
	"github.com/gin-gonic/gin"
	"github.com/growai/backend/internal/infrastructure/logger"
	"github.com/growai/backend/internal/interfaces/http/handler"
	"github.com/growai/backend/internal/interfaces/http/middleware"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Handlers groups the API handlers
type Handlers struct {
	Product  *handler.ProductHandler
	Sale     *handler.SaleHandler
	Due      *handler.DueHandler
	Report   *handler.ReportHandler
	Forecast *handler.ForecastHandler
	System   *handler.SystemHandler
}

// EngineConfig configures the middleware chain
type EngineConfig struct {
	ServiceName    string
	TracingEnabled bool
	TracerProvider trace.TracerProvider
	MaxBodySize    int64
	CORS           middleware.CORSConfig
	TrustedProxies []string
}

// NewEngine builds a gin engine with the standard middleware chain.
// RequestID runs before the logger so every log line carries the request ID.
func NewEngine(cfg EngineConfig, log *zap.Logger) (*gin.Engine, error) {
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Tracing(middleware.TracingConfig{
			ServiceName:    cfg.ServiceName,
			Enabled:        cfg.TracingEnabled,
			TracerProvider: cfg.TracerProvider,
		}),
		middleware.SpanEnricher(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORSWithConfig(cfg.CORS),
	)
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}
	middleware.SetupValidator()
	return engine, nil
}

// Setup registers the health check and the /api/v1 groups. It returns the
// API endpoints it mounted.
func Setup(engine *gin.Engine, h Handlers) []gin.RouteInfo {
	engine.GET("/health", h.System.Health)

	return NewRouter(engine).Register(
		NewDomainGroup("system", "/system").
			GET("/info", h.System.GetSystemInfo).
			GET("/ping", h.System.Ping),
		NewDomainGroup("products", "/products").
			GET("", h.Product.List).
			GET("/low-stock", h.Product.ListLowStock).
			GET("/:id", h.Product.GetByID).
			POST("", h.Product.Create).
			PATCH("/:id", h.Product.Update).
			DELETE("/:id", h.Product.Delete),
		NewDomainGroup("sales", "/sales").
			GET("", h.Sale.List).
			POST("", h.Sale.Create),
		NewDomainGroup("dues", "/dues").
			GET("", h.Due.List).
			POST("", h.Due.Create).
			PATCH("/:id", h.Due.Settle),
		NewDomainGroup("reports", "/reports").
			GET("/summary", h.Report.Summary).
			GET("/sales-series", h.Report.SalesSeries).
			GET("/top-products", h.Report.TopProducts).
			GET("/category-share", h.Report.CategoryShare).
			GET("/recent", h.Report.RecentActivity).
			GET("/export", h.Report.Export),
		NewDomainGroup("forecast", "/forecast").
			POST("", h.Forecast.Forecast),
	).Setup()
}
