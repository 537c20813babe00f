package models

import "time"

type Wishlist struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    string         `gorm:"uniqueIndex" json:"user_id"` // Enforces ONE wishlist per user
	Items     []WishlistItem `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type WishlistItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	WishlistID   uint      `gorm:"index" json:"wishlist_id"`
	ProductID    uint      `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductImage string    `json:"product_image"`
	UnitPrice    float64   `json:"unit_price"`
	AddedAt      time.Time `json:"added_at"`
}
