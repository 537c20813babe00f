package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/KaramYacoub/shopsphere-api/metrics"
	"github.com/KaramYacoub/shopsphere-api/models"
	"github.com/KaramYacoub/shopsphere-api/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeNotifier) SendOrderConfirmation(ctx context.Context, user *models.User, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, order.OrderNumber)
	return f.err
}

func (f *fakeNotifier) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func newTestService(t *testing.T) (*OrderService, *repository.MemoryStore, *fakeNotifier) {
	t.Helper()
	store := repository.NewMemoryStore()
	mailer := &fakeNotifier{}
	m := metrics.New(prometheus.NewRegistry())
	svc := NewOrderService(store, mailer, m, zap.NewNop())
	return svc, store, mailer
}

func seedUser(t *testing.T, store *repository.MemoryStore, id string) {
	t.Helper()
	store.SeedUser(models.User{ID: id, Email: id + "@example.com", Name: "Test User"})
}

func seedCart(t *testing.T, store *repository.MemoryStore, userID string, items ...models.CartItem) *models.Cart {
	t.Helper()
	ctx := context.Background()
	cart, err := store.Carts().FindOneByUser(ctx, userID)
	require.NoError(t, err)
	for i := range items {
		items[i].CartID = cart.CartID
	}
	cart.Items = items
	require.NoError(t, store.Carts().Save(ctx, cart))
	return cart
}

func defaultInput(userID string) CreateOrderInput {
	return CreateOrderInput{
		UserID: userID,
		ShippingAddress: models.Address{
			Street: "1 Main St", City: "Springfield", State: "IL",
			PostalCode: "62701", Country: "US",
		},
		ShippingMethod: ShippingMethod{Name: "Standard", Price: 0, Delivery: "5-7 business days"},
		PaymentMethod:  "card",
	}
}

func TestCreateOrder_TotalsAndStock(t *testing.T) {
	svc, store, mailer := newTestService(t)
	ctx := context.Background()

	seedUser(t, store, "u1")
	store.SeedProduct(models.Product{ID: 1, Name: "Widget", Price: 10.00, Stock: 5})
	seedCart(t, store, "u1", models.CartItem{
		ProductID: 1, ProductName: "Widget", UnitPrice: 10.00, Quantity: 3,
	})

	before := time.Now()
	order, err := svc.Create(ctx, defaultInput("u1"))
	require.NoError(t, err)

	assert.InDelta(t, 30.00, order.Subtotal, 0.001)
	assert.InDelta(t, 2.40, order.Tax, 0.001)
	assert.InDelta(t, 0.00, order.ShippingCost, 0.001)
	assert.InDelta(t, 32.40, order.Total, 0.001)
	assert.InDelta(t, order.Subtotal+order.Tax+order.ShippingCost, order.Total, 0.001)

	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	assert.Equal(t, models.PaymentStatusCompleted, order.PaymentStatus)
	assert.True(t, len(order.OrderNumber) > 4 && order.OrderNumber[:4] == "ORD-")

	// Upper bound of "5-7 business days" is 7 days out.
	wantDelivery := before.AddDate(0, 0, 7)
	assert.WithinDuration(t, wantDelivery, order.EstimatedDelivery, time.Minute)

	product, err := store.Products().FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, product.Stock)

	cart, err := store.Carts().FindOneByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)

	require.Eventually(t, func() bool {
		return mailer.sentCount() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	svc, store, _ := newTestService(t)

	seedUser(t, store, "u1")
	seedCart(t, store, "u1") // no items

	_, err := svc.Create(context.Background(), defaultInput("u1"))
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	svc, store, mailer := newTestService(t)
	ctx := context.Background()

	seedUser(t, store, "u1")
	store.SeedProduct(models.Product{ID: 1, Name: "Widget", Price: 10.00, Stock: 5})
	seedCart(t, store, "u1", models.CartItem{
		ProductID: 1, ProductName: "Widget", UnitPrice: 10.00, Quantity: 10,
	})

	_, err := svc.Create(ctx, defaultInput("u1"))

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Widget", stockErr.ProductName)
	assert.Equal(t, 10, stockErr.Requested)
	assert.Equal(t, 5, stockErr.Available)

	// No writes: stock and cart are untouched.
	product, err := store.Products().FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, product.Stock)

	cart, err := store.Carts().FindOneByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)

	assert.Zero(t, mailer.sentCount())
}

func TestCreateOrder_ProductRemoved(t *testing.T) {
	svc, store, _ := newTestService(t)

	seedUser(t, store, "u1")
	seedCart(t, store, "u1", models.CartItem{
		ProductID: 99, ProductName: "Ghost", UnitPrice: 5.00, Quantity: 1,
	})

	_, err := svc.Create(context.Background(), defaultInput("u1"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrder_NotifierFailureIsNonFatal(t *testing.T) {
	svc, store, mailer := newTestService(t)
	mailer.err = errors.New("smtp connection refused")

	seedUser(t, store, "u1")
	store.SeedProduct(models.Product{ID: 1, Name: "Widget", Price: 10.00, Stock: 5})
	seedCart(t, store, "u1", models.CartItem{
		ProductID: 1, ProductName: "Widget", UnitPrice: 10.00, Quantity: 1,
	})

	order, err := svc.Create(context.Background(), defaultInput("u1"))
	require.NoError(t, err)
	require.NotNil(t, order)

	require.Eventually(t, func() bool {
		return mailer.sentCount() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCreateOrder_ConcurrentCheckoutsCannotOvercommit(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	seedUser(t, store, "u1")
	seedUser(t, store, "u2")
	store.SeedProduct(models.Product{ID: 1, Name: "Widget", Price: 10.00, Stock: 3})
	seedCart(t, store, "u1", models.CartItem{ProductID: 1, ProductName: "Widget", UnitPrice: 10.00, Quantity: 2})
	seedCart(t, store, "u2", models.CartItem{ProductID: 1, ProductName: "Widget", UnitPrice: 10.00, Quantity: 2})

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for _, userID := range []string{"u1", "u2"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := svc.Create(ctx, defaultInput(id))
			results <- err
		}(userID)
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		rejected++
	}
	assert.Equal(t, 1, succeeded, "exactly one checkout must win")
	assert.Equal(t, 1, rejected)

	product, err := store.Products().FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, product.Stock)
	assert.GreaterOrEqual(t, product.Stock, 0)
}

func TestCreateOrder_OrderNumbersAreUnique(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	seedUser(t, store, "u1")
	store.SeedProduct(models.Product{ID: 1, Name: "Widget", Price: 10.00, Stock: 10})

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		seedCart(t, store, "u1", models.CartItem{ProductID: 1, ProductName: "Widget", UnitPrice: 10.00, Quantity: 1})
		order, err := svc.Create(ctx, defaultInput("u1"))
		require.NoError(t, err)
		assert.False(t, seen[order.OrderNumber], "order number %s repeated", order.OrderNumber)
		seen[order.OrderNumber] = true
	}
}

func TestCancelOrder_RestoresStock(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	seedUser(t, store, "u1")
	store.SeedProduct(models.Product{ID: 1, Name: "Widget", Price: 10.00, Stock: 5})
	seedCart(t, store, "u1", models.CartItem{ProductID: 1, ProductName: "Widget", UnitPrice: 10.00, Quantity: 3})

	order, err := svc.Create(ctx, defaultInput("u1"))
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, "u1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	product, err := store.Products().FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, product.Stock)
}

func TestCancelOrder_ShippedIsRejected(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	seedUser(t, store, "u1")
	store.SeedProduct(models.Product{ID: 1, Name: "Widget", Price: 10.00, Stock: 5})
	seedCart(t, store, "u1", models.CartItem{ProductID: 1, ProductName: "Widget", UnitPrice: 10.00, Quantity: 3})

	order, err := svc.Create(ctx, defaultInput("u1"))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, order.ID, models.OrderStatusProcessing)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, order.ID, models.OrderStatusShipped)
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, "u1", order.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	// Neither stock nor status changed.
	product, err := store.Products().FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, product.Stock)

	got, err := svc.Get(ctx, "u1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, got.Status)
}

func TestCancelOrder_NotOwner(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	seedUser(t, store, "u1")
	seedUser(t, store, "u2")
	store.SeedProduct(models.Product{ID: 1, Name: "Widget", Price: 10.00, Stock: 5})
	seedCart(t, store, "u1", models.CartItem{ProductID: 1, ProductName: "Widget", UnitPrice: 10.00, Quantity: 1})

	order, err := svc.Create(ctx, defaultInput("u1"))
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, "u2", order.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatus_IllegalTransition(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	seedUser(t, store, "u1")
	store.SeedProduct(models.Product{ID: 1, Name: "Widget", Price: 10.00, Stock: 5})
	seedCart(t, store, "u1", models.CartItem{ProductID: 1, ProductName: "Widget", UnitPrice: 10.00, Quantity: 1})

	order, err := svc.Create(ctx, defaultInput("u1"))
	require.NoError(t, err)

	// confirmed cannot jump straight to delivered
	_, err = svc.UpdateStatus(ctx, order.ID, models.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestUpdateStatus_AdminCancelRestoresStock(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	seedUser(t, store, "u1")
	store.SeedProduct(models.Product{ID: 1, Name: "Widget", Price: 10.00, Stock: 5})
	seedCart(t, store, "u1", models.CartItem{ProductID: 1, ProductName: "Widget", UnitPrice: 10.00, Quantity: 2})

	order, err := svc.Create(ctx, defaultInput("u1"))
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, updated.Status)

	product, err := store.Products().FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, product.Stock)
}

func TestList_NewestFirst(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	seedUser(t, store, "u1")
	store.SeedProduct(models.Product{ID: 1, Name: "Widget", Price: 10.00, Stock: 10})

	var orderIDs []uint
	for i := 0; i < 3; i++ {
		seedCart(t, store, "u1", models.CartItem{ProductID: 1, ProductName: "Widget", UnitPrice: 10.00, Quantity: 1})
		order, err := svc.Create(ctx, defaultInput("u1"))
		require.NoError(t, err)
		orderIDs = append(orderIDs, order.ID)
	}

	orders, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, orderIDs[2], orders[0].ID)
	assert.Equal(t, orderIDs[0], orders[2].ID)
}

func TestCreateOrder_SubtotalUsesLockedCartPrices(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	seedUser(t, store, "u1")
	// Catalog price went up after the item was added to the cart; the order
	// must keep the add-to-cart price.
	store.SeedProduct(models.Product{ID: 1, Name: "Widget", Price: 15.00, Stock: 5})
	seedCart(t, store, "u1", models.CartItem{ProductID: 1, ProductName: "Widget", UnitPrice: 10.00, Quantity: 2})

	order, err := svc.Create(ctx, defaultInput("u1"))
	require.NoError(t, err)
	assert.InDelta(t, 20.00, order.Subtotal, 0.001)
	require.Len(t, order.Items, 1)
	assert.InDelta(t, 10.00, order.Items[0].UnitPrice, 0.001)
}
