package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KaramYacoub/shopsphere-api/metrics"
	"github.com/KaramYacoub/shopsphere-api/models"
	"github.com/KaramYacoub/shopsphere-api/notifier"
	"github.com/KaramYacoub/shopsphere-api/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService converts a user's cart into a persisted order with consistent
// stock accounting. Order save, stock decrement and cart clear run in one
// store transaction; the confirmation email is fired after commit and never
// fails the request.
type OrderService struct {
	store    repository.Store
	notifier notifier.Notifier
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewOrderService(store repository.Store, n notifier.Notifier, m *metrics.Metrics, logger *zap.Logger) *OrderService {
	return &OrderService{
		store:    store,
		notifier: n,
		metrics:  m,
		logger:   logger,
	}
}

type CreateOrderInput struct {
	UserID          string
	ShippingAddress models.Address
	ShippingMethod  ShippingMethod
	PaymentMethod   string
	OrderNotes      string
}

// Create runs the checkout workflow: load cart, validate stock, compute
// totals, persist the order, decrement stock, clear the cart, then notify.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	user, err := s.store.Users().FindByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	cart, err := s.store.Carts().FindOneByUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		s.metrics.OrdersRejected.Inc()
		return nil, ErrEmptyCart
	}

	// Pre-flight stock check so a bad line is rejected with a useful message
	// before any write. The conditional decrement inside the transaction
	// below stays authoritative under concurrency.
	for _, item := range cart.Items {
		product, err := s.store.Products().FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				s.metrics.OrdersRejected.Inc()
				return nil, fmt.Errorf("product %q: %w", item.ProductName, ErrNotFound)
			}
			return nil, err
		}
		if product.Stock < item.Quantity {
			s.metrics.OrdersRejected.Inc()
			return nil, &InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   item.Quantity,
				Available:   product.Stock,
			}
		}
	}

	now := time.Now()
	subtotal := cart.Total // prices were locked at add-to-cart time
	tax := round2(subtotal * TaxRate)
	shippingCost := in.ShippingMethod.Price
	total := round2(subtotal + tax + shippingCost)

	orderItems := make([]models.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
		})
	}

	order := &models.Order{
		OrderNumber:     generateOrderNumber(),
		UserID:          in.UserID,
		Items:           orderItems,
		ShippingAddress: in.ShippingAddress,
		ShippingMethod:  in.ShippingMethod.Name,
		Subtotal:        subtotal,
		Tax:             tax,
		ShippingCost:    shippingCost,
		Total:           total,
		Status:          models.OrderStatusConfirmed,
		// No payment gateway exists; payment is assumed captured upstream.
		PaymentStatus:     models.PaymentStatusCompleted,
		PaymentMethod:     in.PaymentMethod,
		OrderNotes:        in.OrderNotes,
		EstimatedDelivery: EstimateDelivery(in.ShippingMethod.Delivery, now),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}
		for _, item := range cart.Items {
			if err := tx.Products().DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					stockErr := &InsufficientStockError{
						ProductID:   item.ProductID,
						ProductName: item.ProductName,
						Requested:   item.Quantity,
					}
					if product, lookupErr := tx.Products().FindByID(ctx, item.ProductID); lookupErr == nil {
						stockErr.Available = product.Stock
					}
					return stockErr
				}
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("product %q: %w", item.ProductName, ErrNotFound)
				}
				return err
			}
		}
		return tx.Carts().ClearItems(ctx, cart.CartID)
	})
	if err != nil {
		var stockErr *InsufficientStockError
		if errors.As(err, &stockErr) || errors.Is(err, ErrNotFound) {
			s.metrics.OrdersRejected.Inc()
		}
		return nil, err
	}

	s.metrics.OrdersCreated.Inc()
	s.logger.Info("order created",
		zap.String("order_number", order.OrderNumber),
		zap.String("user_id", in.UserID),
		zap.Float64("total", order.Total),
	)

	s.sendConfirmation(ctx, user, order)
	return order, nil
}

// sendConfirmation fires the email on a goroutine detached from the request
// context. Failures are logged and counted, never surfaced to the caller.
func (s *OrderService) sendConfirmation(ctx context.Context, user *models.User, order *models.Order) {
	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
		defer cancel()

		if err := s.notifier.SendOrderConfirmation(sendCtx, user, order); err != nil {
			s.metrics.EmailFailures.Inc()
			s.logger.Warn("order confirmation email failed",
				zap.String("order_number", order.OrderNumber),
				zap.String("to", user.Email),
				zap.Error(err),
			)
		}
	}()
}

// Cancel transitions an order owned by userID to cancelled and restores the
// stock decremented at creation time. Only pending and confirmed orders can
// be cancelled.
func (s *OrderService) Cancel(ctx context.Context, userID string, orderID uint) (*models.Order, error) {
	var cancelled *models.Order
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		order, err := tx.Orders().FindByIDForUser(ctx, orderID, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !order.Status.Cancellable() {
			return fmt.Errorf("cannot cancel order in status %q: %w", order.Status, ErrInvalidState)
		}
		if err := s.restoreStock(ctx, tx, order); err != nil {
			return err
		}
		order.Status = models.OrderStatusCancelled
		order.UpdatedAt = time.Now()
		if err := tx.Orders().Save(ctx, order); err != nil {
			return err
		}
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.OrdersCancelled.Inc()
	s.logger.Info("order cancelled",
		zap.String("order_number", cancelled.OrderNumber),
		zap.String("user_id", userID),
	)
	return cancelled, nil
}

func (s *OrderService) restoreStock(ctx context.Context, tx repository.Store, order *models.Order) error {
	for _, item := range order.Items {
		err := tx.Products().IncrementStock(ctx, item.ProductID, item.Quantity)
		if errors.Is(err, repository.ErrNotFound) {
			// Product removed from the catalog since purchase; nothing to restore.
			s.logger.Warn("skipping stock restore for removed product",
				zap.Uint("product_id", item.ProductID),
				zap.String("order_number", order.OrderNumber),
			)
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// UpdateStatus applies an admin status change, enforcing the order lifecycle.
// A transition to cancelled goes through the same stock-restore path as a
// customer cancellation.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, next models.OrderStatus) (*models.Order, error) {
	var updated *models.Order
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		order, err := tx.Orders().FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !order.Status.CanTransitionTo(next) {
			return fmt.Errorf("cannot move order from %q to %q: %w", order.Status, next, ErrInvalidState)
		}
		if next == models.OrderStatusCancelled {
			if err := s.restoreStock(ctx, tx, order); err != nil {
				return err
			}
		}
		order.Status = next
		order.UpdatedAt = time.Now()
		if err := tx.Orders().Save(ctx, order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if next == models.OrderStatusCancelled {
		s.metrics.OrdersCancelled.Inc()
	}
	return updated, nil
}

// Get returns a single order, ownership-checked.
func (s *OrderService) Get(ctx context.Context, userID string, orderID uint) (*models.Order, error) {
	order, err := s.store.Orders().FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// List returns the caller's orders, newest first.
func (s *OrderService) List(ctx context.Context, userID string) ([]models.Order, error) {
	return s.store.Orders().ListByUser(ctx, userID)
}

// ListAll returns every order, newest first. Admin only.
func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.store.Orders().ListAll(ctx)
}

// generateOrderNumber builds a human-readable yet guaranteed-unique token.
// The UUID suffix replaces the old 3-digit random tail, which could collide.
func generateOrderNumber() string {
	return "ORD-" + time.Now().Format("20060102150405") + "-" + uuid.NewString()
}
