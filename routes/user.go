package routes

import (
	"github.com/KaramYacoub/shopsphere-api/config"
	cartcontrollers "github.com/KaramYacoub/shopsphere-api/controllers/cart"
	usercontrollers "github.com/KaramYacoub/shopsphere-api/controllers/user"
	wishlistcontrollers "github.com/KaramYacoub/shopsphere-api/controllers/wishlist"
	"github.com/KaramYacoub/shopsphere-api/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(cfg.JWTSecret))
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/", usercontrollers.GetUser(db))    // GET /user/
		userGroup.PUT("/", usercontrollers.UpdateUser(db)) // PUT /user/

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartcontrollers.GetUserCart(db))                  // GET /user/cart
			cartGroup.POST("/", cartcontrollers.UpsertCartItem(db))              // POST /user/cart
			cartGroup.PUT("/:product_id", cartcontrollers.UpdateCartItemQuantity(db)) // PUT /user/cart/:product_id
			cartGroup.DELETE("/:product_id", cartcontrollers.DeleteCartItem(db)) // DELETE /user/cart/:product_id
			cartGroup.DELETE("/", cartcontrollers.ClearUserCart(db))             // DELETE /user/cart
		}

		// ──────────────── Wishlist ────────────────
		wishlistGroup := userGroup.Group("/wishlist")
		{
			wishlistGroup.GET("/", wishlistcontrollers.GetWishlist(db))                       // GET /user/wishlist
			wishlistGroup.POST("/:product_id", wishlistcontrollers.AddWishlistItem(db))       // POST /user/wishlist/:product_id
			wishlistGroup.DELETE("/:product_id", wishlistcontrollers.DeleteWishlistItem(db)) // DELETE /user/wishlist/:product_id
		}
	}
}
