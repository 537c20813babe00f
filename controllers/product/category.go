package productcontroller

import (
	"errors"
	"net/http"

	"github.com/KaramYacoub/shopsphere-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryInput struct {
	Name  string `json:"name" binding:"required"`
	Image string `json:"image"`
}

// POST /admin/categories
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		category := models.Category{Name: input.Name, Image: input.Image}
		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create category"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "category": category})
	}
}

// PUT /admin/categories/:id
func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var category models.Category
		if err := db.First(&category, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch category"})
			}
			return
		}

		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		category.Name = input.Name
		if input.Image != "" {
			category.Image = input.Image
		}
		if err := db.Save(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update category"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "category": category})
	}
}

// GET /categories — categories with their products, for storefront browsing.
func GetAllCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Preload("Products").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "categories": categories})
	}
}

// DELETE /admin/categories/:id
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var category models.Category
		if err := db.First(&category, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&category).Association("Products").Clear(); err != nil {
				return err
			}
			return tx.Delete(&category).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete category"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
