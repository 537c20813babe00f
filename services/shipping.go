package services

import (
	"math"
	"regexp"
	"strconv"
	"time"
)

// TaxRate is the flat tax applied to the cart subtotal.
const TaxRate = 0.08

// DefaultDeliveryDays is used when a shipping method carries no parseable
// delivery window.
const DefaultDeliveryDays = 5

// ShippingMethod is supplied by the caller at checkout; the service does not
// keep a shipping-method catalog.
type ShippingMethod struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price"`
	Delivery string  `json:"delivery"` // e.g. "5-7 business days"
}

var deliveryWindowRe = regexp.MustCompile(`(\d+)\s*-\s*(\d+)\s*business days`)

// EstimateDelivery parses an "N-M business days" window and returns now plus
// the upper bound M. Anything unparseable falls back to now plus
// DefaultDeliveryDays.
func EstimateDelivery(delivery string, now time.Time) time.Time {
	match := deliveryWindowRe.FindStringSubmatch(delivery)
	if match == nil {
		return now.AddDate(0, 0, DefaultDeliveryDays)
	}
	upper, err := strconv.Atoi(match[2])
	if err != nil || upper <= 0 {
		return now.AddDate(0, 0, DefaultDeliveryDays)
	}
	return now.AddDate(0, 0, upper)
}

// round2 rounds money values to cents.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
