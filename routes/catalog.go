package routes

import (
	productcontroller "github.com/KaramYacoub/shopsphere-api/controllers/product"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupCatalogRoutes registers the public storefront browse endpoints.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", productcontroller.GetProducts(db))
	r.GET("/products/:id", productcontroller.GetProductByID(db))
	r.GET("/categories", productcontroller.GetAllCategories(db))
}
