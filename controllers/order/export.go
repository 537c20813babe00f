package ordercontrollers

import (
	"net/http"

	"github.com/KaramYacoub/shopsphere-api/services"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"go.uber.org/zap"
)

// ExportOrdersToExcel streams every order as an .xlsx download (admin).
func ExportOrdersToExcel(svc *services.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListAll(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"OrderNumber", "UserID", "Status", "PaymentStatus", "PaymentMethod",
			"Subtotal", "Tax", "ShippingCost", "Total", "Items",
			"EstimatedDelivery", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()
			row.AddCell().SetValue(o.OrderNumber)
			row.AddCell().SetValue(o.UserID)
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(string(o.PaymentStatus))
			row.AddCell().SetValue(o.PaymentMethod)
			row.AddCell().SetValue(o.Subtotal)
			row.AddCell().SetValue(o.Tax)
			row.AddCell().SetValue(o.ShippingCost)
			row.AddCell().SetValue(o.Total)
			row.AddCell().SetValue(len(o.Items))
			row.AddCell().SetValue(o.EstimatedDelivery.Format("2006-01-02"))
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			logger.Error("failed to write orders export", zap.Error(err))
		}
	}
}
