package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderPending, OrderConfirmed, true},
		{OrderPending, OrderCancelled, true},
		{OrderPending, OrderShipped, false},
		{OrderConfirmed, OrderProcessing, true},
		{OrderConfirmed, OrderPending, false},
		{OrderProcessing, OrderShipped, true},
		{OrderProcessing, OrderCancelled, true},
		{OrderShipped, OrderDelivered, true},
		{OrderShipped, OrderCancelled, false},
		{OrderShipped, OrderRefunded, true},
		{OrderDelivered, OrderRefunded, false},
		{OrderCancelled, OrderConfirmed, false},
		{OrderRefunded, OrderPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, OrderDelivered.IsTerminal())
	assert.True(t, OrderCancelled.IsTerminal())
	assert.True(t, OrderRefunded.IsTerminal())
	assert.False(t, OrderPending.IsTerminal())
	assert.False(t, OrderShipped.IsTerminal())
}

func TestOrderStatusIsValid(t *testing.T) {
	assert.True(t, OrderPending.IsValid())
	assert.False(t, OrderStatus("SOMETHING_ELSE").IsValid())
}

func TestFormatOrderNumber(t *testing.T) {
	day := time.Date(2025, 9, 1, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, "ISL-20250901-0001", FormatOrderNumber("ISL", day, 1))
	assert.Equal(t, "ISL-20250901-0042", FormatOrderNumber("ISL", day, 42))
	// Sequence wider than four digits keeps all digits
	assert.Equal(t, "ISL-20250901-12345", FormatOrderNumber("ISL", day, 12345))
}

func TestOrderCanBeCancelled(t *testing.T) {
	for _, s := range []OrderStatus{OrderPending, OrderConfirmed, OrderProcessing} {
		o := &Order{Status: s}
		assert.True(t, o.CanBeCancelled(), string(s))
	}
	for _, s := range []OrderStatus{OrderShipped, OrderDelivered, OrderCancelled, OrderRefunded} {
		o := &Order{Status: s}
		assert.False(t, o.CanBeCancelled(), string(s))
	}
}

func TestOrderItemCount(t *testing.T) {
	o := &Order{Items: []OrderItem{
		{Quantity: 2},
		{Quantity: 1},
	}}
	assert.Equal(t, 3, o.ItemCount())
}

func TestInvalidTransitionError(t *testing.T) {
	err := &InvalidTransitionError{From: OrderDelivered, To: OrderPending}
	assert.Contains(t, err.Error(), "DELIVERED")
	assert.Contains(t, err.Error(), "PENDING")
}
