package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestCouponIsValid(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		coupon     Coupon
		wantValid  bool
		wantReason string
	}{
		{
			"valid coupon",
			Coupon{IsActive: true, ValidFrom: now.Add(-time.Hour)},
			true, "Valid",
		},
		{
			"inactive",
			Coupon{IsActive: false, ValidFrom: now.Add(-time.Hour)},
			false, "Coupon is not active",
		},
		{
			"not yet valid",
			Coupon{IsActive: true, ValidFrom: now.Add(time.Hour)},
			false, "Coupon is not yet valid",
		},
		{
			"expired",
			Coupon{IsActive: true, ValidFrom: now.Add(-48 * time.Hour), ValidUntil: timePtr(now.Add(-time.Hour))},
			false, "Coupon has expired",
		},
		{
			"usage limit reached",
			Coupon{IsActive: true, ValidFrom: now.Add(-time.Hour), MaxUses: 100, UsedCount: 100},
			false, "Coupon has reached its maximum usage limit",
		},
		{
			"zero max uses means unlimited",
			Coupon{IsActive: true, ValidFrom: now.Add(-time.Hour), MaxUses: 0, UsedCount: 5000},
			true, "Valid",
		},
		{
			// First failing check wins when several apply
			"inactive and expired reports inactive",
			Coupon{IsActive: false, ValidFrom: now.Add(-48 * time.Hour), ValidUntil: timePtr(now.Add(-time.Hour))},
			false, "Coupon is not active",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, reason := tt.coupon.IsValid(now)
			assert.Equal(t, tt.wantValid, valid)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestCouponDiscount(t *testing.T) {
	t.Run("percentage", func(t *testing.T) {
		c := &Coupon{Type: CouponPercentage, Value: 10}
		discount, shipping := c.Discount(10800, 450)
		assert.Equal(t, 1080.0, discount)
		assert.Equal(t, 450.0, shipping)
	})

	t.Run("fixed amount", func(t *testing.T) {
		c := &Coupon{Type: CouponFixedAmount, Value: 500}
		discount, shipping := c.Discount(10800, 450)
		assert.Equal(t, 500.0, discount)
		assert.Equal(t, 450.0, shipping)
	})

	t.Run("fixed amount capped at subtotal", func(t *testing.T) {
		c := &Coupon{Type: CouponFixedAmount, Value: 5000}
		discount, _ := c.Discount(3200, 450)
		assert.Equal(t, 3200.0, discount)
	})

	t.Run("free shipping", func(t *testing.T) {
		c := &Coupon{Type: CouponFreeShipping}
		discount, shipping := c.Discount(10800, 450)
		assert.Equal(t, 0.0, discount)
		assert.Equal(t, 0.0, shipping)
	})
}

func TestFlashSaleIsLive(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	sale := FlashSale{
		IsActive: true,
		StartsAt: now.Add(-time.Hour),
		EndsAt:   now.Add(time.Hour),
	}

	assert.True(t, sale.IsLive(now))
	assert.True(t, sale.IsLive(sale.StartsAt))
	assert.True(t, sale.IsLive(sale.EndsAt))
	assert.False(t, sale.IsLive(now.Add(2*time.Hour)))

	sale.IsActive = false
	assert.False(t, sale.IsLive(now))
}
