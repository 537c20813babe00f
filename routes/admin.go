package routes

import (
	"github.com/KaramYacoub/shopsphere-api/config"
	cartcontrollers "github.com/KaramYacoub/shopsphere-api/controllers/cart"
	ordercontrollers "github.com/KaramYacoub/shopsphere-api/controllers/order"
	productcontroller "github.com/KaramYacoub/shopsphere-api/controllers/product"
	usercontrollers "github.com/KaramYacoub/shopsphere-api/controllers/user"
	"github.com/KaramYacoub/shopsphere-api/middleware"
	"github.com/KaramYacoub/shopsphere-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, svc *services.OrderService, hub *ordercontrollers.Hub, logger *zap.Logger, cfg *config.Config) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(cfg.AdminAPIKey))
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/users", usercontrollers.GetAllUsers(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.GET("", productcontroller.GetProducts(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(db))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(db))
			categoryAdmin.GET("", productcontroller.GetAllCategories(db))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(db))
		}

		// ─────────── Orders ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", ordercontrollers.ListAllOrders(svc, logger))
			orderAdmin.GET("/export-excel", ordercontrollers.ExportOrdersToExcel(svc, logger))
			orderAdmin.GET("/live", hub.Handler()) // websocket feed of order updates
		}

		// ─────────── Carts ───────────
		cartMgmt := adminGroup.Group("/user-cart")
		{
			cartMgmt.GET("/:user_id", cartcontrollers.GetAdminUserCart(db))
		}
	}
}
