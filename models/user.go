package models

import "time"

type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Role      string    `gorm:"type:VARCHAR(20);default:'customer'" json:"role"` // "customer" or "admin"
	Address   Address   `gorm:"embedded" json:"address"`
	Cart      Cart      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	Wishlist  Wishlist  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"wishlist"`
	Orders    []Order   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"orders"`
	CreatedAt time.Time `json:"created_at"`
}

// Address is embedded in User and copied onto every order at checkout.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}
