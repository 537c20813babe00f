package productcontroller

import (
	"net/http"

	"github.com/KaramYacoub/shopsphere-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DeleteProduct removes a product and its category links (admin). Existing
// order items keep their frozen copies, so history is unaffected.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.Preload("Categories").First(&product, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&product).Association("Categories").Clear(); err != nil {
				return err
			}
			return tx.Delete(&product).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
