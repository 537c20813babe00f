package routes

import (
	"github.com/KaramYacoub/shopsphere-api/config"
	ordercontrollers "github.com/KaramYacoub/shopsphere-api/controllers/order"
	"github.com/KaramYacoub/shopsphere-api/middleware"
	"github.com/KaramYacoub/shopsphere-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupOrderRoutes registers the checkout and order endpoints. Customer
// routes carry JWT; the status update is admin-only via API key.
func SetupOrderRoutes(r *gin.Engine, svc *services.OrderService, hub *ordercontrollers.Hub, logger *zap.Logger, cfg *config.Config) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken(cfg.JWTSecret))
	{
		orders.POST("", ordercontrollers.CreateOrder(svc, hub, logger))
		orders.GET("", ordercontrollers.ListOrders(svc, logger))
		orders.GET("/:id", ordercontrollers.GetOrder(svc, logger))
		orders.PUT("/:id/cancel", ordercontrollers.CancelOrder(svc, hub, logger))
	}

	adminOrders := r.Group("/orders")
	adminOrders.Use(middleware.ValidateAPIKey(cfg.AdminAPIKey))
	{
		adminOrders.PUT("/:id/status", ordercontrollers.UpdateOrderStatus(svc, hub, logger))
	}
}
