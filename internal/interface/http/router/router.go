package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/northwind/internal/infrastructure/config"
	"github.com/xiebiao/northwind/internal/interface/http/handler"
	"github.com/xiebiao/northwind/internal/interface/http/middleware"
	"github.com/xiebiao/northwind/pkg/response"
)

// New 创建Gin引擎并注册路由
// 中间件顺序:Recovery → RequestID → Tracing → Metrics → Logger
func New(
	cfg *config.Config,
	customerHandler *handler.CustomerHandler,
	orderHandler *handler.OrderHandler,
	reportHandler *handler.ReportHandler,
	lookupHandler *handler.LookupHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Tracing(),
		middleware.Metrics(),
		middleware.Logger(cfg.Server.SlowRequest),
	)

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档: http://localhost:8080/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 客户
		customers := v1.Group("/customers")
		{
			customers.GET("", customerHandler.List)
			customers.POST("", customerHandler.Create)
			customers.GET("/:id", customerHandler.Get)
			customers.PUT("/:id", customerHandler.Update)
			customers.GET("/:id/orders", reportHandler.CustomerOrders)
			customers.GET("/:id/history", reportHandler.CustomerHistory)
		}

		// 订单
		orders := v1.Group("/orders")
		{
			orders.POST("", orderHandler.Create)
			orders.GET("/:id/summary", orderHandler.DeleteSummary)
			orders.GET("/:id/lines", orderHandler.Lines)
			orders.DELETE("/:id", orderHandler.Delete)
		}

		// 报表
		reports := v1.Group("/reports")
		{
			reports.GET("/sales-by-employee", reportHandler.SalesByEmployee)
			reports.GET("/sales-by-customer-year", reportHandler.SalesByCustomerYear)
			reports.GET("/sales-by-customer-month", reportHandler.SalesByCustomerMonth)
			reports.GET("/average-order-value", reportHandler.AverageOrderValue)
			reports.GET("/total-sales", reportHandler.TotalSales)
			reports.GET("/customers-by-country", reportHandler.CustomersByCountry)
		}

		// 下拉选项
		v1.GET("/lookups/order-options", lookupHandler.OrderOptions)
	}

	return r
}
