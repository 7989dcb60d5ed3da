package models

// Session cart models for guest (not logged in) shoppers, stored in Redis.
// Guest carts never reach the checkout path; a guest must register or log
// in first, at which point the session cart is merged into the user cart.

type SessionCartItem struct {
	SKU         string  `json:"sku" redis:"sku"`
	ProductName string  `json:"product_name" redis:"product_name"`
	UnitPrice   float64 `json:"unit_price" redis:"unit_price"`
	Quantity    int     `json:"quantity" redis:"quantity"`
	LineTotal   float64 `json:"line_total" redis:"line_total"`
	AddedAt     string  `json:"added_at" redis:"added_at"`
}

type SessionCart struct {
	SessionID   string                      `json:"session_id"`
	Items       map[string]*SessionCartItem `json:"items"` // keyed by SKU
	Subtotal    float64                     `json:"subtotal"`
	ItemCount   int                         `json:"item_count"`
	LastUpdated string                      `json:"last_updated"`
	ExpiresAt   string                      `json:"expires_at"`
}
