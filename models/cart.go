package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    string     `gorm:"uniqueIndex" json:"user_id"` // Enforces ONE cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	Total     float64    `json:"total"` // denormalized, recomputed on every mutation
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem snapshots the product at add-to-cart time. Prices are locked here
// and carried onto the order unchanged.
type CartItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CartID       uint      `gorm:"index" json:"cart_id"`
	ProductID    uint      `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductImage string    `json:"product_image"`
	UnitPrice    float64   `json:"unit_price"`
	Quantity     int       `json:"quantity"`
	AddedAt      time.Time `json:"added_at"`
}

// RecomputeTotal restores the invariant total == sum(unit_price * quantity).
func (c *Cart) RecomputeTotal() {
	var total float64
	for _, item := range c.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	c.Total = total
}
