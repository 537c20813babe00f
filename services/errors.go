package services

import (
	"errors"
	"fmt"
)

// Domain errors raised by the order workflow. Controllers map these to HTTP
// statuses at the request boundary; anything unrecognized becomes a generic
// 500 with the detail logged server-side only.
var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid status transition")
)

// InsufficientStockError names the offending product so the client can fix
// the cart line.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}
