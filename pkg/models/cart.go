package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CartItem is one line in a user's cart. A cart holds at most one item
// per variant SKU; adding the same SKU again increments the quantity.
type CartItem struct {
	SKU      string    `json:"sku" bson:"sku" validate:"required,min=3,max=50"`
	Quantity int       `json:"quantity" bson:"quantity" validate:"required,gt=0"`
	AddedAt  time.Time `json:"added_at" bson:"added_at"`
}

// Cart is the per-user mutable cart stored in MongoDB. Line totals are
// never stored: they are computed live against the current catalog, so
// prices shown in the cart follow catalog changes until checkout freezes
// them. Guest session carts live in Redis instead (see pkg/redis).
type Cart struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    bson.ObjectID `json:"user_id" bson:"user_id"`
	Items     []CartItem    `json:"items" bson:"items"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
}

// ItemCount returns the sum of quantities across all lines
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// FindItem returns the line for the given SKU, or nil
func (c *Cart) FindItem(sku string) *CartItem {
	for i := range c.Items {
		if c.Items[i].SKU == sku {
			return &c.Items[i]
		}
	}
	return nil
}

// CartView is a cart decorated with live pricing for API responses
type CartView struct {
	ID        bson.ObjectID  `json:"id"`
	Items     []CartItemView `json:"items"`
	Total     float64        `json:"total"`
	ItemCount int            `json:"item_count"`
}

type CartItemView struct {
	SKU         string  `json:"sku"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

type AddToCartRequest struct {
	SKU      string `json:"sku" binding:"required,min=3,max=50"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

type CheckoutRequest struct {
	ShippingAddress  Address `json:"shipping_address" binding:"required"`
	ShippingMethodID string  `json:"shipping_method_id"`
	CouponCode       string  `json:"coupon_code"`
	Notes            string  `json:"notes" binding:"max=2000"`
}
