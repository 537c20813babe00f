package models

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // Order placed, awaiting confirmation
	OrderStatusConfirmed  OrderStatus = "confirmed"  // Confirmed, stock committed
	OrderStatusProcessing OrderStatus = "processing" // Being packed
	OrderStatusShipped    OrderStatus = "shipped"    // Out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // Customer received the item
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled before processing

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// orderTransitions lists the legal next statuses for each status.
// delivered and cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped},
	OrderStatusShipped:    {OrderStatusDelivered},
}

// CanTransitionTo reports whether moving from s to next is a legal
// order lifecycle transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Cancellable reports whether an order in status s may still be cancelled.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed
}

var ErrUnknownOrderStatus = errors.New("invalid order status")

// ParseOrderStatus maps a request string to an OrderStatus.
func ParseOrderStatus(status string) (OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(OrderStatusPending):
		return OrderStatusPending, nil
	case string(OrderStatusConfirmed):
		return OrderStatusConfirmed, nil
	case string(OrderStatusProcessing):
		return OrderStatusProcessing, nil
	case string(OrderStatusShipped):
		return OrderStatusShipped, nil
	case string(OrderStatusDelivered):
		return OrderStatusDelivered, nil
	case string(OrderStatusCancelled):
		return OrderStatusCancelled, nil
	default:
		return "", ErrUnknownOrderStatus
	}
}

type Order struct {
	ID                uint          `gorm:"primaryKey" json:"id"`
	OrderNumber       string        `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID            string        `gorm:"not null;index" json:"user_id"`
	Items             []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	ShippingAddress   Address       `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	ShippingMethod    string        `json:"shipping_method"`
	Subtotal          float64       `json:"subtotal"`
	Tax               float64       `json:"tax"`
	ShippingCost      float64       `json:"shipping_cost"`
	Total             float64       `json:"total"`
	Status            OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus     PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	PaymentMethod     string        `json:"payment_method"` // e.g. "card", "cod"
	OrderNotes        string        `json:"order_notes"`
	EstimatedDelivery time.Time     `json:"estimated_delivery"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// OrderItem is a frozen copy of a cart line at checkout time, never a live
// join against products.
type OrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	OrderID      uint    `gorm:"index" json:"order_id"`
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	UnitPrice    float64 `json:"unit_price"`
	Quantity     int     `json:"quantity"`
}
