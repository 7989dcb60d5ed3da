package mongo

import "errors"

// Sentinel errors surfaced by the data layer. Handlers map these to HTTP
// status codes with errors.Is; anything else is a server error.
var (
	ErrProductNotFound        = errors.New("product not found")
	ErrVariantNotFound        = errors.New("variant not found")
	ErrCartItemNotFound       = errors.New("cart item not found")
	ErrOrderNotFound          = errors.New("order not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailTaken             = errors.New("email already exists")
	ErrStockNotFound          = errors.New("stock record not found")
	ErrCouponNotFound         = errors.New("coupon not found")
	ErrCouponCodeTaken        = errors.New("coupon code already exists")
	ErrShippingMethodNotFound = errors.New("shipping method not found")
	ErrZoneNotServed          = errors.New("shipping method does not serve the destination district")
	ErrReviewExists           = errors.New("review already exists for this product")
	ErrReviewNotFound         = errors.New("review not found")
	ErrNotCancellable         = errors.New("order can no longer be cancelled")
	ErrStockWouldGoNegative   = errors.New("adjustment would make stock negative")
)
