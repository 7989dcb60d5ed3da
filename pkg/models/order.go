package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// OrderStatus is the closed set of order lifecycle states
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderConfirmed  OrderStatus = "CONFIRMED"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
	OrderRefunded   OrderStatus = "REFUNDED"
)

// allowedTransitions is the enforced lifecycle: the linear chain
// PENDING → CONFIRMED → PROCESSING → SHIPPED → DELIVERED, with CANCELLED
// reachable before shipment and REFUNDED from any non-terminal state.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderConfirmed, OrderCancelled, OrderRefunded},
	OrderConfirmed:  {OrderProcessing, OrderCancelled, OrderRefunded},
	OrderProcessing: {OrderShipped, OrderCancelled, OrderRefunded},
	OrderShipped:    {OrderDelivered, OrderRefunded},
	OrderDelivered:  {},
	OrderCancelled:  {},
	OrderRefunded:   {},
}

// CanTransitionTo reports whether moving from s to next is allowed
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

func (s OrderStatus) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// ProductSnapshot is the product data frozen into an order item at
// purchase time, so later catalog changes never alter historical orders.
type ProductSnapshot struct {
	Name string `json:"name" bson:"name"`
	SKU  string `json:"sku" bson:"sku"`
}

// OrderItem is one immutable line of an order. UnitPrice and the snapshot
// are captured at checkout and never re-derived from the current catalog.
type OrderItem struct {
	ProductID  bson.ObjectID   `json:"product_id" bson:"product_id"`
	VariantSKU string          `json:"variant_sku" bson:"variant_sku"`
	Snapshot   ProductSnapshot `json:"product_snapshot" bson:"product_snapshot"`
	Quantity   int             `json:"quantity" bson:"quantity" validate:"required,gt=0"`
	UnitPrice  float64         `json:"unit_price" bson:"unit_price" validate:"gte=0"`
	TotalPrice float64         `json:"total_price" bson:"total_price" validate:"gte=0"`
}

// StatusChange is one append-only entry in an order's status history
type StatusChange struct {
	Status    OrderStatus `json:"status" bson:"status"`
	Note      string      `json:"note,omitempty" bson:"note,omitempty"`
	ChangedBy string      `json:"changed_by,omitempty" bson:"changed_by,omitempty"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
}

// Order is immutable after creation apart from status, tracking number and
// the append-only status history. Address, shipping cost and all financial
// totals are frozen at checkout.
type Order struct {
	ID              bson.ObjectID  `json:"id" bson:"_id,omitempty"`
	OrderNumber     string         `json:"order_number" bson:"order_number" validate:"required"`
	UserID          bson.ObjectID  `json:"user_id" bson:"user_id"`
	Status          OrderStatus    `json:"status" bson:"status" validate:"required,oneof=PENDING CONFIRMED PROCESSING SHIPPED DELIVERED CANCELLED REFUNDED"`
	ShippingAddress Address        `json:"shipping_address" bson:"shipping_address"`
	ShippingMethod  string         `json:"shipping_method" bson:"shipping_method"`
	ShippingCost    float64        `json:"shipping_cost" bson:"shipping_cost" validate:"gte=0"`
	Subtotal        float64        `json:"subtotal" bson:"subtotal" validate:"gte=0"`
	DiscountTotal   float64        `json:"discount_total" bson:"discount_total" validate:"gte=0"`
	TaxTotal        float64        `json:"tax_total" bson:"tax_total" validate:"gte=0"`
	GrandTotal      float64        `json:"grand_total" bson:"grand_total" validate:"gte=0"`
	CouponCode      string         `json:"coupon_code,omitempty" bson:"coupon_code,omitempty"`
	Items           []OrderItem    `json:"items" bson:"items" validate:"required,min=1,dive"`
	StatusHistory   []StatusChange `json:"status_history" bson:"status_history"`
	Notes           string         `json:"notes,omitempty" bson:"notes,omitempty"`
	TrackingNumber  string         `json:"tracking_number,omitempty" bson:"tracking_number,omitempty"`
	CreatedAt       time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" bson:"updated_at"`
}

// InvalidTransitionError reports a rejected status change
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

// FormatOrderNumber builds an order number from the per-day sequence,
// e.g. ISL-20250901-0001.
func FormatOrderNumber(prefix string, day time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, day.Format("20060102"), seq)
}

func (o *Order) ItemCount() int {
	var count int
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// CanBeCancelled reports whether a customer may still cancel the order
func (o *Order) CanBeCancelled() bool {
	return o.Status.CanTransitionTo(OrderCancelled)
}

type UpdateOrderStatusRequest struct {
	Status         string `json:"status" binding:"required,oneof=PENDING CONFIRMED PROCESSING SHIPPED DELIVERED CANCELLED REFUNDED"`
	Note           string `json:"note" binding:"max=1000"`
	TrackingNumber string `json:"tracking_number" binding:"max=200"`
}
