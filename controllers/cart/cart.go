package cartcontrollers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/KaramYacoub/shopsphere-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

func currentUserID(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// findOrCreateCart loads the user's cart with items, creating it lazily.
func findOrCreateCart(db *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	cart = models.Cart{UserID: userID}
	if err := db.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// recomputeAndSaveTotal keeps the denormalized cart total in sync after any
// item mutation.
func recomputeAndSaveTotal(db *gorm.DB, cart *models.Cart) error {
	if err := db.Preload("Items").First(cart, "cart_id = ?", cart.CartID).Error; err != nil {
		return err
	}
	cart.RecomputeTotal()
	return db.Model(&models.Cart{}).Where("cart_id = ?", cart.CartID).Update("total", cart.Total).Error
}

// GET /user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		cart, err := findOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
	}
}

// POST /user/cart — adds a line or replaces the quantity of an existing one.
// Product name, image and price are snapshotted at this moment.
func UpsertCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Product does not exist"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to validate product"})
			}
			return
		}

		cart, err := findOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch cart"})
			return
		}

		var item models.CartItem
		err = db.Where("cart_id = ? AND product_id = ?", cart.CartID, input.ProductID).First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{
				CartID:       cart.CartID,
				ProductID:    product.ID,
				ProductName:  product.Name,
				ProductImage: product.Image,
				UnitPrice:    product.Price,
				Quantity:     input.Quantity,
				AddedAt:      time.Now(),
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add item to cart"})
				return
			}
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch cart item"})
			return
		default:
			item.Quantity = input.Quantity
			item.AddedAt = time.Now()
			if err := db.Save(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart item"})
				return
			}
		}

		if err := recomputeAndSaveTotal(db, cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart total"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "item": item, "total": cart.Total})
	}
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// PUT /user/cart/:product_id — changes the quantity of an existing line.
func UpdateCartItemQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
			return
		}

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Cart not found"})
			return
		}

		result := db.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cart.CartID, productID).
			Update("quantity", input.Quantity)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found"})
			return
		}

		if err := recomputeAndSaveTotal(db, &cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart total"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "total": cart.Total})
	}
}

// DELETE /user/cart/:product_id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Cart not found"})
			return
		}

		result := db.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found"})
			return
		}

		if err := recomputeAndSaveTotal(db, &cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart total"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "total": cart.Total})
	}
}

// DELETE /user/cart — empties the items, keeps the cart row.
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Cart not found"})
			return
		}

		if err := db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to clear cart"})
			return
		}
		if err := db.Model(&models.Cart{}).Where("cart_id = ?", cart.CartID).Update("total", 0).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart total"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// GET /admin/user-cart/:user_id
func GetAdminUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "user_id is required"})
			return
		}

		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Cart not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
	}
}
