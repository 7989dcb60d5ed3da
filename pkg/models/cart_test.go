package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartItemCount(t *testing.T) {
	cart := &Cart{Items: []CartItem{
		{SKU: "CLK-M", Quantity: 2},
		{SKU: "BPS-S", Quantity: 1},
	}}
	assert.Equal(t, 3, cart.ItemCount())
	assert.Equal(t, 0, (&Cart{}).ItemCount())
}

func TestCartFindItem(t *testing.T) {
	cart := &Cart{Items: []CartItem{
		{SKU: "CLK-M", Quantity: 2},
	}}

	item := cart.FindItem("CLK-M")
	assert.NotNil(t, item)
	assert.Equal(t, 2, item.Quantity)

	assert.Nil(t, cart.FindItem("BPS-S"))
}
