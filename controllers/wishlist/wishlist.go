package wishlistcontrollers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/KaramYacoub/shopsphere-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

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

func findOrCreateWishlist(db *gorm.DB, userID string) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := db.Preload("Items").Where("user_id = ?", userID).First(&wishlist).Error
	if err == nil {
		return &wishlist, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	wishlist = models.Wishlist{UserID: userID}
	if err := db.Create(&wishlist).Error; err != nil {
		return nil, err
	}
	return &wishlist, nil
}

// GET /user/wishlist
func GetWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		wishlist, err := findOrCreateWishlist(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "wishlist": wishlist})
	}
}

// POST /user/wishlist/:product_id
func AddWishlistItem(db *gorm.DB) gin.HandlerFunc {
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

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Product does not exist"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to validate product"})
			}
			return
		}

		wishlist, err := findOrCreateWishlist(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch wishlist"})
			return
		}

		// Adding twice is a no-op.
		var existing models.WishlistItem
		err = db.Where("wishlist_id = ? AND product_id = ?", wishlist.ID, product.ID).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "item": existing})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch wishlist item"})
			return
		}

		item := models.WishlistItem{
			WishlistID:   wishlist.ID,
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: product.Image,
			UnitPrice:    product.Price,
			AddedAt:      time.Now(),
		}
		if err := db.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add item to wishlist"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "item": item})
	}
}

// DELETE /user/wishlist/:product_id
func DeleteWishlistItem(db *gorm.DB) gin.HandlerFunc {
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

		var wishlist models.Wishlist
		if err := db.Where("user_id = ?", userID).First(&wishlist).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Wishlist not found"})
			return
		}

		result := db.Where("wishlist_id = ? AND product_id = ?", wishlist.ID, productID).Delete(&models.WishlistItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Wishlist item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
