package checkout

import (
	"errors"
	"fmt"
)

// ErrEmptyCart is returned when checkout is attempted with no cart items
var ErrEmptyCart = errors.New("cart is empty")

type VariantNotFoundError struct {
	SKU string
}

func (e *VariantNotFoundError) Error() string {
	return fmt.Sprintf("variant %s not found or inactive", e.SKU)
}

type InsufficientStockError struct {
	SKU       string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.SKU, e.Requested, e.Available)
}

type InvalidCouponError struct {
	Code   string
	Reason string
}

func (e *InvalidCouponError) Error() string {
	return fmt.Sprintf("coupon %s rejected: %s", e.Code, e.Reason)
}
