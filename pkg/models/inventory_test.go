package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockAvailable(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		reserved int
		want     int
	}{
		{"nothing reserved", 10, 0, 10},
		{"partially reserved", 10, 3, 7},
		{"fully reserved", 10, 10, 0},
		{"reserved exceeds quantity", 5, 8, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Stock{Quantity: tt.quantity, ReservedQuantity: tt.reserved}
			assert.Equal(t, tt.want, s.Available())
		})
	}
}

func TestStockIsLowStock(t *testing.T) {
	s := &Stock{Quantity: 5, LowStockThreshold: 5}
	assert.True(t, s.IsLowStock())

	s.Quantity = 6
	assert.False(t, s.IsLowStock())

	// Reserved stock counts against availability
	s.ReservedQuantity = 2
	assert.True(t, s.IsLowStock())
}

func TestStockMovementDirection(t *testing.T) {
	in := &StockMovement{QuantityChange: 20, Reason: MovementPurchase}
	assert.True(t, in.IsInbound())
	assert.False(t, in.IsOutbound())

	out := &StockMovement{QuantityChange: -2, Reason: MovementSale}
	assert.True(t, out.IsOutbound())
	assert.False(t, out.IsInbound())
}
