package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CouponType is the closed set of discount kinds
type CouponType string

const (
	CouponPercentage   CouponType = "PERCENTAGE"
	CouponFixedAmount  CouponType = "FIXED_AMOUNT"
	CouponFreeShipping CouponType = "FREE_SHIPPING"
)

type Coupon struct {
	ID                 bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Code               string        `json:"code" bson:"code" validate:"required,min=2,max=50"`
	Description        string        `json:"description,omitempty" bson:"description,omitempty" validate:"max=300"`
	Type               CouponType    `json:"type" bson:"type" validate:"required,oneof=PERCENTAGE FIXED_AMOUNT FREE_SHIPPING"`
	Value              float64       `json:"value" bson:"value" validate:"gte=0"`
	MinimumOrderAmount float64       `json:"minimum_order_amount" bson:"minimum_order_amount" validate:"gte=0"`
	MaxUses            int           `json:"max_uses" bson:"max_uses" validate:"gte=0"` // 0 = unlimited
	UsedCount          int           `json:"used_count" bson:"used_count" validate:"gte=0"`
	ValidFrom          time.Time     `json:"valid_from" bson:"valid_from"`
	ValidUntil         *time.Time    `json:"valid_until,omitempty" bson:"valid_until,omitempty"`
	IsActive           bool          `json:"is_active" bson:"is_active"`
	CreatedAt          time.Time     `json:"created_at" bson:"created_at"`
}

// IsValid checks the coupon against the given instant. Checks run in a
// fixed order and the first failing check wins, so exactly one reason is
// ever reported: active flag, not-yet-valid, expired, usage limit.
func (c *Coupon) IsValid(now time.Time) (bool, string) {
	if !c.IsActive {
		return false, "Coupon is not active"
	}
	if now.Before(c.ValidFrom) {
		return false, "Coupon is not yet valid"
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return false, "Coupon has expired"
	}
	if c.MaxUses > 0 && c.UsedCount >= c.MaxUses {
		return false, "Coupon has reached its maximum usage limit"
	}
	return true, "Valid"
}

// Discount returns the discount amount and the shipping cost after
// applying the coupon to the given subtotal and shipping cost. The
// discount never exceeds the subtotal.
func (c *Coupon) Discount(subtotal, shippingCost float64) (discount, shippingOut float64) {
	switch c.Type {
	case CouponPercentage:
		discount = subtotal * c.Value / 100
	case CouponFixedAmount:
		discount = c.Value
	case CouponFreeShipping:
		return 0, 0
	}
	if discount > subtotal {
		discount = subtotal
	}
	return discount, shippingCost
}

type CreateCouponRequest struct {
	Code               string     `json:"code" binding:"required,min=2,max=50"`
	Description        string     `json:"description" binding:"max=300"`
	Type               string     `json:"type" binding:"required,oneof=PERCENTAGE FIXED_AMOUNT FREE_SHIPPING"`
	Value              float64    `json:"value" binding:"gte=0"`
	MinimumOrderAmount float64    `json:"minimum_order_amount" binding:"gte=0"`
	MaxUses            int        `json:"max_uses" binding:"gte=0"`
	ValidFrom          time.Time  `json:"valid_from" binding:"required"`
	ValidUntil         *time.Time `json:"valid_until"`
}

// FlashSale is a time-boxed product-level discount window
type FlashSale struct {
	ID                 bson.ObjectID `json:"id" bson:"_id,omitempty"`
	ProductID          bson.ObjectID `json:"product_id" bson:"product_id" validate:"required"`
	DiscountPercentage int           `json:"discount_percentage" bson:"discount_percentage" validate:"required,gte=1,lte=100"`
	StartsAt           time.Time     `json:"starts_at" bson:"starts_at"`
	EndsAt             time.Time     `json:"ends_at" bson:"ends_at"`
	IsActive           bool          `json:"is_active" bson:"is_active"`
	CreatedAt          time.Time     `json:"created_at" bson:"created_at"`
}

// IsLive reports whether the sale window covers the given instant
func (f *FlashSale) IsLive(now time.Time) bool {
	return f.IsActive && !now.Before(f.StartsAt) && !now.After(f.EndsAt)
}
