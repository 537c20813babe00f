package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusConfirmed, OrderStatusProcessing, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusDelivered, false},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusProcessing, OrderStatusCancelled, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatusCancellable(t *testing.T) {
	assert.True(t, OrderStatusPending.Cancellable())
	assert.True(t, OrderStatusConfirmed.Cancellable())
	assert.False(t, OrderStatusProcessing.Cancellable())
	assert.False(t, OrderStatusShipped.Cancellable())
	assert.False(t, OrderStatusDelivered.Cancellable())
	assert.False(t, OrderStatusCancelled.Cancellable())
}

func TestParseOrderStatus(t *testing.T) {
	got, err := ParseOrderStatus("Shipped")
	assert.NoError(t, err)
	assert.Equal(t, OrderStatusShipped, got)

	_, err = ParseOrderStatus("on-hold")
	assert.ErrorIs(t, err, ErrUnknownOrderStatus)
}

func TestCartRecomputeTotal(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{UnitPrice: 10.00, Quantity: 3},
		{UnitPrice: 4.50, Quantity: 2},
	}}
	cart.RecomputeTotal()
	assert.InDelta(t, 39.00, cart.Total, 0.001)

	cart.Items = nil
	cart.RecomputeTotal()
	assert.Zero(t, cart.Total)
}
