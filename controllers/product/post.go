package productcontroller

import (
	"net/http"

	"github.com/KaramYacoub/shopsphere-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Image       string  `json:"image"`
	Stock       int     `json:"stock" binding:"min=0"`
	CategoryIDs []uint  `json:"category_ids"`
}

// CreateProduct creates a new product linked to existing categories (admin).
// The image field is a URL; file handling lives with the upload service.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		var categories []models.Category
		if len(input.CategoryIDs) > 0 {
			if err := db.Where("id IN ?", input.CategoryIDs).Find(&categories).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to resolve categories"})
				return
			}
			if len(categories) != len(input.CategoryIDs) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "One or more category IDs do not exist"})
				return
			}
		}

		product := models.Product{
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			Image:       input.Image,
			Stock:       input.Stock,
			Categories:  categories,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
	}
}
