package productcontroller

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/KaramYacoub/shopsphere-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var sortableColumns = map[string]bool{
	"created_at": true,
	"price":      true,
	"name":       true,
}

// GetProducts lists the catalog with search, category, price-range filters
// and sorting.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")
		categoryID := c.Query("category_id")
		minPriceStr := c.Query("min_price")
		maxPriceStr := c.Query("max_price")
		sortBy := c.DefaultQuery("sort_by", "created_at")
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))

		if !sortableColumns[sortBy] {
			sortBy = "created_at"
		}
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		query := db.Model(&models.Product{}).Preload("Categories")

		if search != "" {
			likePattern := "%" + search + "%"
			query = query.Where("name ILIKE ? OR description ILIKE ?", likePattern, likePattern)
		}

		if minPriceStr != "" {
			mp, err := strconv.ParseFloat(minPriceStr, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid min_price"})
				return
			}
			query = query.Where("price >= ?", mp)
		}
		if maxPriceStr != "" {
			mp, err := strconv.ParseFloat(maxPriceStr, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid max_price"})
				return
			}
			query = query.Where("price <= ?", mp)
		}

		if categoryID != "" {
			cid, err := strconv.ParseUint(categoryID, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category_id"})
				return
			}
			query = query.
				Joins("JOIN product_categories pc ON pc.product_id = products.id").
				Where("pc.category_id = ?", uint(cid))
		}

		var products []models.Product
		if err := query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}
