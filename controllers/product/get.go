package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/KaramYacoub/shopsphere-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetProductByID returns a single product with its categories.
// URL param: /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.Preload("Categories").First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve product"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
	}
}
