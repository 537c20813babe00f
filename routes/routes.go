package routes

import (
	"github.com/KaramYacoub/shopsphere-api/config"
	ordercontrollers "github.com/KaramYacoub/shopsphere-api/controllers/order"
	"github.com/KaramYacoub/shopsphere-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry point that wires up the public catalog,
// the JWT-protected user area, the order endpoints and the admin group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, svc *services.OrderService, hub *ordercontrollers.Hub, logger *zap.Logger, cfg *config.Config) {
	SetupCatalogRoutes(r, db)
	SetupUserRoutes(r, db, cfg)
	SetupOrderRoutes(r, svc, hub, logger, cfg)
	SetupAdminRoutes(r, db, svc, hub, logger, cfg)
}
