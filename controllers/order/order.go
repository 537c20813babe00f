package ordercontrollers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/KaramYacoub/shopsphere-api/models"
	"github.com/KaramYacoub/shopsphere-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// -------- Request Structs --------

type CreateOrderRequest struct {
	ShippingAddress models.Address          `json:"shipping_address" binding:"required"`
	ShippingMethod  services.ShippingMethod `json:"shipping_method" binding:"required"`
	PaymentMethod   string                  `json:"payment_method" binding:"required"`
	OrderNotes      string                  `json:"order_notes"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Helpers --------

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

func orderIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order ID"})
		return 0, false
	}
	return uint(id), true
}

// respondError maps domain errors to HTTP statuses. Unrecognized errors are
// logged with full detail and answered with a generic message only.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var stockErr *services.InsufficientStockError
	switch {
	case errors.Is(err, services.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cart is empty"})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": stockErr.Error()})
	case errors.Is(err, services.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, models.ErrUnknownOrderStatus):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order status"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	default:
		logger.Error("order request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
	}
}

// -------- Handlers --------

// POST /orders
func CreateOrder(svc *services.OrderService, hub *Hub, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
			return
		}

		order, err := svc.Create(c.Request.Context(), services.CreateOrderInput{
			UserID:          userID,
			ShippingAddress: req.ShippingAddress,
			ShippingMethod:  req.ShippingMethod,
			PaymentMethod:   req.PaymentMethod,
			OrderNotes:      req.OrderNotes,
		})
		if err != nil {
			respondError(c, logger, err)
			return
		}

		hub.BroadcastOrder(order)
		c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
	}
}

// GET /orders
func ListOrders(svc *services.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		orders, err := svc.List(c.Request.Context(), userID)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
	}
}

// GET /orders/:id
func GetOrder(svc *services.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		orderID, ok := orderIDParam(c)
		if !ok {
			return
		}

		order, err := svc.Get(c.Request.Context(), userID, orderID)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

// PUT /orders/:id/cancel
func CancelOrder(svc *services.OrderService, hub *Hub, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		orderID, ok := orderIDParam(c)
		if !ok {
			return
		}

		order, err := svc.Cancel(c.Request.Context(), userID, orderID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		hub.BroadcastOrder(order)
		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

// PUT /orders/:id/status (admin)
func UpdateOrderStatus(svc *services.OrderService, hub *Hub, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := orderIDParam(c)
		if !ok {
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
			return
		}
		status, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		order, err := svc.UpdateStatus(c.Request.Context(), orderID, status)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		hub.BroadcastOrder(order)
		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

// GET /admin/orders
func ListAllOrders(svc *services.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListAll(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
	}
}
