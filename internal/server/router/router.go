package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/OmAmbre27/smart-inventory-sub000/internal/auth"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(inv *handlers.InventoryHandler, cat *handlers.CatalogHandler, authorizer *auth.Authorizer, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(auth.RequireRole(authorizer))

	view := api.Group("", auth.RequirePermission(authorizer, auth.PermViewReports))
	{
		view.GET("/stock", inv.GetStock)
		view.GET("/batches", inv.ListBatches)
		view.GET("/alerts/low-stock", inv.LowStockAlerts)
		view.GET("/alerts/expiry", inv.ExpiryReport)
		view.GET("/summaries/:outletID/:date", inv.DailySummary)
		view.GET("/products", cat.ListProducts)
		view.GET("/outlets", cat.ListOutlets)
	}

	api.POST("/receipts", auth.RequirePermission(authorizer, auth.PermReceiveGoods), inv.Receive)
	api.POST("/orders", auth.RequirePermission(authorizer, auth.PermManageOrders), inv.CreateOrder)
	api.DELETE("/orders/:id", auth.RequirePermission(authorizer, auth.PermManageOrders), inv.DeleteOrder)
	api.POST("/transfers", auth.RequirePermission(authorizer, auth.PermTransferStock), inv.Transfer)
	api.POST("/wastage", auth.RequirePermission(authorizer, auth.PermRecordWastage), inv.RecordWastage)
	api.POST("/audits", auth.RequirePermission(authorizer, auth.PermRunAudit), inv.RecordAudit)
	api.POST("/audits/:id/correction", auth.RequirePermission(authorizer, auth.PermApplyCorrection), inv.ApplyAuditCorrection)

	thresholds := api.Group("", auth.RequirePermission(authorizer, auth.PermManageThresholds))
	{
		thresholds.PUT("/thresholds", inv.SetThreshold)
		thresholds.DELETE("/thresholds", inv.DeleteThreshold)
		thresholds.POST("/products", cat.CreateProduct)
		thresholds.POST("/menu-items", cat.CreateMenuItem)
		thresholds.POST("/outlets", cat.CreateOutlet)
	}

	api.POST("/purchase-orders", auth.RequirePermission(authorizer, auth.PermReceiveGoods), cat.CreatePurchaseOrder)
	api.PATCH("/purchase-orders/:id/status", auth.RequirePermission(authorizer, auth.PermReceiveGoods), cat.UpdatePurchaseOrderStatus)
	api.POST("/hygiene-logs", auth.RequirePermission(authorizer, auth.PermRunAudit), cat.CreateHygieneLog)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
