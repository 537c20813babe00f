package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/KaramYacoub/shopsphere-api/models"
)

// MemoryStore is an in-memory Store used by tests and local development.
// A single mutex serializes transactions; Transaction snapshots all state and
// restores it when the callback fails, which gives it the same all-or-nothing
// behavior as the gorm implementation.
type MemoryStore struct {
	mu sync.Mutex

	users    map[string]*models.User
	products map[uint]*models.Product
	carts    map[string]*models.Cart // keyed by user ID, one cart each
	orders   map[uint]*models.Order

	nextCartID  uint
	nextOrderID uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]*models.User),
		products: make(map[uint]*models.Product),
		carts:    make(map[string]*models.Cart),
		orders:   make(map[uint]*models.Order),
	}
}

// SeedUser and SeedProduct insert fixtures directly, bypassing any workflow.

func (s *MemoryStore) SeedUser(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = cloneUser(&user)
}

func (s *MemoryStore) SeedProduct(product models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ID] = cloneProduct(&product)
}

func (s *MemoryStore) Users() UserRepository       { return memUsers{s: s, locked: false} }
func (s *MemoryStore) Products() ProductRepository { return memProducts{s: s, locked: false} }
func (s *MemoryStore) Carts() CartRepository       { return memCarts{s: s, locked: false} }
func (s *MemoryStore) Orders() OrderRepository     { return memOrders{s: s, locked: false} }

func (s *MemoryStore) Transaction(ctx context.Context, fn func(Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshot()
	tx := &memTx{s: s}
	if err := fn(tx); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

// memTx exposes the same data without re-locking; the transaction already
// holds the store mutex.
type memTx struct {
	s *MemoryStore
}

func (t *memTx) Users() UserRepository       { return memUsers{s: t.s, locked: true} }
func (t *memTx) Products() ProductRepository { return memProducts{s: t.s, locked: true} }
func (t *memTx) Carts() CartRepository       { return memCarts{s: t.s, locked: true} }
func (t *memTx) Orders() OrderRepository     { return memOrders{s: t.s, locked: true} }

func (t *memTx) Transaction(ctx context.Context, fn func(Store) error) error {
	// Nested transactions just join the outer one.
	return fn(t)
}

type memState struct {
	users    map[string]*models.User
	products map[uint]*models.Product
	carts    map[string]*models.Cart
	orders   map[uint]*models.Order

	nextCartID  uint
	nextOrderID uint
}

func (s *MemoryStore) snapshot() memState {
	st := memState{
		users:       make(map[string]*models.User, len(s.users)),
		products:    make(map[uint]*models.Product, len(s.products)),
		carts:       make(map[string]*models.Cart, len(s.carts)),
		orders:      make(map[uint]*models.Order, len(s.orders)),
		nextCartID:  s.nextCartID,
		nextOrderID: s.nextOrderID,
	}
	for k, v := range s.users {
		st.users[k] = cloneUser(v)
	}
	for k, v := range s.products {
		st.products[k] = cloneProduct(v)
	}
	for k, v := range s.carts {
		st.carts[k] = cloneCart(v)
	}
	for k, v := range s.orders {
		st.orders[k] = cloneOrder(v)
	}
	return st
}

func (s *MemoryStore) restore(st memState) {
	s.users = st.users
	s.products = st.products
	s.carts = st.carts
	s.orders = st.orders
	s.nextCartID = st.nextCartID
	s.nextOrderID = st.nextOrderID
}

// ---- users ----

type memUsers struct {
	s      *MemoryStore
	locked bool
}

func (r memUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	user, ok := r.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(user), nil
}

// ---- products ----

type memProducts struct {
	s      *MemoryStore
	locked bool
}

func (r memProducts) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	product, ok := r.s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneProduct(product), nil
}

func (r memProducts) DecrementStock(ctx context.Context, productID uint, qty int) error {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	product, ok := r.s.products[productID]
	if !ok {
		return ErrNotFound
	}
	if product.Stock < qty {
		return ErrInsufficientStock
	}
	product.Stock -= qty
	return nil
}

func (r memProducts) IncrementStock(ctx context.Context, productID uint, qty int) error {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	product, ok := r.s.products[productID]
	if !ok {
		return ErrNotFound
	}
	product.Stock += qty
	return nil
}

// ---- carts ----

type memCarts struct {
	s      *MemoryStore
	locked bool
}

func (r memCarts) FindOneByUser(ctx context.Context, userID string) (*models.Cart, error) {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	if cart, ok := r.s.carts[userID]; ok {
		return cloneCart(cart), nil
	}
	r.s.nextCartID++
	cart := &models.Cart{
		CartID:    r.s.nextCartID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	r.s.carts[userID] = cart
	return cloneCart(cart), nil
}

func (r memCarts) Save(ctx context.Context, cart *models.Cart) error {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	cart.RecomputeTotal()
	cart.UpdatedAt = time.Now()
	r.s.carts[cart.UserID] = cloneCart(cart)
	return nil
}

func (r memCarts) ClearItems(ctx context.Context, cartID uint) error {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	for _, cart := range r.s.carts {
		if cart.CartID == cartID {
			cart.Items = nil
			cart.Total = 0
			cart.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrNotFound
}

// ---- orders ----

type memOrders struct {
	s      *MemoryStore
	locked bool
}

func (r memOrders) Create(ctx context.Context, order *models.Order) error {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	r.s.nextOrderID++
	order.ID = r.s.nextOrderID
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	r.s.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r memOrders) Save(ctx context.Context, order *models.Order) error {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	if _, ok := r.s.orders[order.ID]; !ok {
		return ErrNotFound
	}
	order.UpdatedAt = time.Now()
	r.s.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r memOrders) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	order, ok := r.s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r memOrders) FindByIDForUser(ctx context.Context, id uint, userID string) (*models.Order, error) {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	order, ok := r.s.orders[id]
	if !ok || order.UserID != userID {
		return nil, ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r memOrders) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	var orders []models.Order
	for _, order := range r.s.orders {
		if order.UserID == userID {
			orders = append(orders, *cloneOrder(order))
		}
	}
	sortOrdersNewestFirst(orders)
	return orders, nil
}

func (r memOrders) ListAll(ctx context.Context) ([]models.Order, error) {
	if !r.locked {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	var orders []models.Order
	for _, order := range r.s.orders {
		orders = append(orders, *cloneOrder(order))
	}
	sortOrdersNewestFirst(orders)
	return orders, nil
}

func sortOrdersNewestFirst(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID > orders[j].ID
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

// ---- clone helpers ----

func cloneUser(u *models.User) *models.User {
	clone := *u
	clone.Orders = nil
	return &clone
}

func cloneProduct(p *models.Product) *models.Product {
	clone := *p
	clone.Categories = append([]models.Category(nil), p.Categories...)
	return &clone
}

func cloneCart(c *models.Cart) *models.Cart {
	clone := *c
	clone.Items = append([]models.CartItem(nil), c.Items...)
	return &clone
}

func cloneOrder(o *models.Order) *models.Order {
	clone := *o
	clone.Items = append([]models.OrderItem(nil), o.Items...)
	return &clone
}
