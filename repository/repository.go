// Package repository defines the data-access boundary consumed by the order
// workflow. Handlers that only read the catalog keep using gorm directly; the
// interfaces here exist so the checkout path can be exercised against test
// doubles and so stock mutations go through one conditional-update choke point.
package repository

import (
	"context"

	"github.com/KaramYacoub/shopsphere-api/models"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type ProductRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Product, error)

	// DecrementStock atomically applies "stock = stock - qty iff stock >= qty".
	// Returns ErrInsufficientStock when the guard fails and ErrNotFound when
	// the product does not exist.
	DecrementStock(ctx context.Context, productID uint, qty int) error

	// IncrementStock restores stock on cancellation.
	IncrementStock(ctx context.Context, productID uint, qty int) error
}

type CartRepository interface {
	// FindOneByUser returns the user's cart, creating an empty one on first use.
	FindOneByUser(ctx context.Context, userID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error

	// ClearItems empties the cart's line items without deleting the cart row.
	ClearItems(ctx context.Context, cartID uint) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	Save(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	FindByIDForUser(ctx context.Context, id uint, userID string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
}

// Store bundles the repositories behind one transactional boundary. Inside
// Transaction the callback receives a Store bound to the same transaction;
// any error rolls everything back.
type Store interface {
	Users() UserRepository
	Products() ProductRepository
	Carts() CartRepository
	Orders() OrderRepository
	Transaction(ctx context.Context, fn func(Store) error) error
}
