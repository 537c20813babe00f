package repository

import (
	"context"
	"errors"

	"github.com/KaramYacoub/shopsphere-api/models"
	"gorm.io/gorm"
)

// gormStore implements Store on a gorm connection (or transaction).
type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() UserRepository       { return &gormUsers{db: s.db} }
func (s *gormStore) Products() ProductRepository { return &gormProducts{db: s.db} }
func (s *gormStore) Carts() CartRepository       { return &gormCarts{db: s.db} }
func (s *gormStore) Orders() OrderRepository     { return &gormOrders{db: s.db} }

func (s *gormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// ---- users ----

type gormUsers struct {
	db *gorm.DB
}

func (r *gormUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ---- products ----

type gormProducts struct {
	db *gorm.DB
}

func (r *gormProducts) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *gormProducts) DecrementStock(ctx context.Context, productID uint, qty int) error {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Zero rows means either the guard failed or the product is gone.
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Product{}).
			Where("id = ?", productID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}

func (r *gormProducts) IncrementStock(ctx context.Context, productID uint, qty int) error {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- carts ----

type gormCarts struct {
	db *gorm.DB
}

func (r *gormCarts) FindOneByUser(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Lazily create the user's cart on first access.
	cart = models.Cart{UserID: userID}
	if err := r.db.WithContext(ctx).Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *gormCarts) Save(ctx context.Context, cart *models.Cart) error {
	cart.RecomputeTotal()
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(cart).Error
}

func (r *gormCarts) ClearItems(ctx context.Context, cartID uint) error {
	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("cart_id = ?", cartID).
		Update("total", 0).Error
}

// ---- orders ----

type gormOrders struct {
	db *gorm.DB
}

func (r *gormOrders) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *gormOrders) Save(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *gormOrders) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrders) FindByIDForUser(ctx context.Context, id uint, userID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrders) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *gormOrders) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}
