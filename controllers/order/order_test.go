package ordercontrollers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KaramYacoub/shopsphere-api/metrics"
	"github.com/KaramYacoub/shopsphere-api/models"
	"github.com/KaramYacoub/shopsphere-api/repository"
	"github.com/KaramYacoub/shopsphere-api/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type noopNotifier struct{}

func (noopNotifier) SendOrderConfirmation(ctx context.Context, user *models.User, order *models.Order) error {
	return nil
}

// asUser fakes the JWT middleware by injecting the claims the handlers read.
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", "customer")
		c.Next()
	}
}

func newTestRouter(t *testing.T) (*gin.Engine, *repository.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	logger := zap.NewNop()
	svc := services.NewOrderService(store, noopNotifier{}, metrics.New(prometheus.NewRegistry()), logger)
	hub := NewHub(logger)

	r := gin.New()
	orders := r.Group("/orders", asUser("u1"))
	{
		orders.POST("", CreateOrder(svc, hub, logger))
		orders.GET("", ListOrders(svc, logger))
		orders.GET("/:id", GetOrder(svc, logger))
		orders.PUT("/:id/cancel", CancelOrder(svc, hub, logger))
	}
	r.PUT("/admin/orders/:id/status", UpdateOrderStatus(svc, hub, logger))
	r.GET("/admin/orders", ListAllOrders(svc, logger))

	store.SeedUser(models.User{ID: "u1", Email: "u1@example.com", Name: "Test User"})
	return r, store
}

func seedCartWithStock(t *testing.T, store *repository.MemoryStore, stock, qty int) {
	t.Helper()
	ctx := context.Background()
	store.SeedProduct(models.Product{ID: 1, Name: "Widget", Price: 10.00, Stock: stock})
	cart, err := store.Carts().FindOneByUser(ctx, "u1")
	require.NoError(t, err)
	cart.Items = []models.CartItem{{
		CartID: cart.CartID, ProductID: 1, ProductName: "Widget",
		UnitPrice: 10.00, Quantity: qty,
	}}
	require.NoError(t, store.Carts().Save(ctx, cart))
}

func createOrderBody() []byte {
	body, _ := json.Marshal(gin.H{
		"shipping_address": gin.H{
			"street": "1 Main St", "city": "Springfield", "state": "IL",
			"postal_code": "62701", "country": "US",
		},
		"shipping_method": gin.H{"name": "Standard", "price": 0, "delivery": "5-7 business days"},
		"payment_method":  "card",
	})
	return body
}

func doJSON(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrderEndpoint(t *testing.T) {
	r, store := newTestRouter(t)
	seedCartWithStock(t, store, 5, 3)

	w := doJSON(r, http.MethodPost, "/orders", createOrderBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool         `json:"success"`
		Order   models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, models.OrderStatusConfirmed, resp.Order.Status)
	assert.InDelta(t, 32.40, resp.Order.Total, 0.001)
	assert.Contains(t, resp.Order.OrderNumber, "ORD-")
}

func TestCreateOrderEndpoint_EmptyCart(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/orders", createOrderBody())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cart is empty")
}

func TestCreateOrderEndpoint_InsufficientStock(t *testing.T) {
	r, store := newTestRouter(t)
	seedCartWithStock(t, store, 2, 5)

	w := doJSON(r, http.MethodPost, "/orders", createOrderBody())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Widget")
}

func TestCreateOrderEndpoint_MissingFields(t *testing.T) {
	r, store := newTestRouter(t)
	seedCartWithStock(t, store, 5, 1)

	body, _ := json.Marshal(gin.H{"order_notes": "no address or method"})
	w := doJSON(r, http.MethodPost, "/orders", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderEndpoint_NotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/orders/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Not found")
}

func TestGetOrderEndpoint_BadID(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/orders/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid order ID")
}

func TestCancelOrderEndpoint(t *testing.T) {
	r, store := newTestRouter(t)
	seedCartWithStock(t, store, 5, 2)

	w := doJSON(r, http.MethodPost, "/orders", createOrderBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(r, http.MethodPut, fmt.Sprintf("/orders/%d/cancel", created.Order.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.OrderStatusCancelled, resp.Order.Status)

	product, err := store.Products().FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 5, product.Stock)
}

func TestUpdateOrderStatusEndpoint(t *testing.T) {
	r, store := newTestRouter(t)
	seedCartWithStock(t, store, 5, 1)

	w := doJSON(r, http.MethodPost, "/orders", createOrderBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	path := fmt.Sprintf("/admin/orders/%d/status", created.Order.ID)

	body, _ := json.Marshal(gin.H{"status": "processing"})
	w = doJSON(r, http.MethodPut, path, body)
	assert.Equal(t, http.StatusOK, w.Code)

	// delivered is not reachable from processing
	body, _ = json.Marshal(gin.H{"status": "delivered"})
	w = doJSON(r, http.MethodPut, path, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown status string
	body, _ = json.Marshal(gin.H{"status": "on-hold"})
	w = doJSON(r, http.MethodPut, path, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid order status")
}

func TestListOrdersEndpoint(t *testing.T) {
	r, store := newTestRouter(t)
	seedCartWithStock(t, store, 10, 1)

	w := doJSON(r, http.MethodPost, "/orders", createOrderBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool           `json:"success"`
		Orders  []models.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Orders, 1)
}
