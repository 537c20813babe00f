package productcontroller

import (
	"errors"
	"net/http"

	"github.com/KaramYacoub/shopsphere-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	Stock       *int     `json:"stock"`
	CategoryIDs *[]uint  `json:"category_ids"`
}

// UpdateProduct applies a partial update to a product (admin). Only the
// fields present in the body are touched.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.Preload("Categories").First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch product"})
			}
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}
		if input.Price != nil && *input.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Price must be greater than zero"})
			return
		}
		if input.Stock != nil && *input.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Stock cannot be negative"})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Price != nil {
			updates["price"] = *input.Price
		}
		if input.Image != nil {
			updates["image"] = *input.Image
		}
		if input.Stock != nil {
			updates["stock"] = *input.Stock
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if len(updates) > 0 {
				if err := tx.Model(&product).Updates(updates).Error; err != nil {
					return err
				}
			}
			if input.CategoryIDs != nil {
				var categories []models.Category
				if err := tx.Where("id IN ?", *input.CategoryIDs).Find(&categories).Error; err != nil {
					return err
				}
				if err := tx.Model(&product).Association("Categories").Replace(categories); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
	}
}
