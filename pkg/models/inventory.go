package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MovementReason classifies a stock movement for the audit trail
type MovementReason string

const (
	MovementPurchase    MovementReason = "PURCHASE"
	MovementSale        MovementReason = "SALE"
	MovementReturn      MovementReason = "RETURN"
	MovementReservation MovementReason = "RESERVATION"
	MovementRelease     MovementReason = "RELEASE"
	MovementAdjustment  MovementReason = "ADJUSTMENT"
	MovementDamage      MovementReason = "DAMAGE"
)

// Stock tracks on-hand and reserved quantity for exactly one variant SKU
type Stock struct {
	ID                bson.ObjectID `json:"id" bson:"_id,omitempty"`
	SKU               string        `json:"sku" bson:"sku" validate:"required,min=3,max=50"`
	Quantity          int           `json:"quantity" bson:"quantity" validate:"gte=0"`
	ReservedQuantity  int           `json:"reserved_quantity" bson:"reserved_quantity" validate:"gte=0"`
	LowStockThreshold int           `json:"low_stock_threshold" bson:"low_stock_threshold" validate:"gte=0"`
	UpdatedAt         time.Time     `json:"updated_at" bson:"updated_at"`
}

// Available returns the quantity available to sell. Reserved stock is held
// against unconfirmed carts and orders; the result never goes below zero
// even when reservations exceed on-hand quantity.
func (s *Stock) Available() int {
	available := s.Quantity - s.ReservedQuantity
	if available < 0 {
		return 0
	}
	return available
}

func (s *Stock) IsLowStock() bool {
	return s.Available() <= s.LowStockThreshold
}

func (s *Stock) IsInStock() bool {
	return s.Available() > 0
}

// StockMovement is one append-only ledger entry. QuantityChange is signed:
// positive moves stock in, negative moves stock out.
type StockMovement struct {
	ID             bson.ObjectID  `json:"id" bson:"_id,omitempty"`
	SKU            string         `json:"sku" bson:"sku" validate:"required,min=3,max=50"`
	QuantityChange int            `json:"quantity_change" bson:"quantity_change"`
	Reason         MovementReason `json:"reason" bson:"reason" validate:"required,oneof=PURCHASE SALE RETURN RESERVATION RELEASE ADJUSTMENT DAMAGE"`
	ReferenceID    string         `json:"reference_id,omitempty" bson:"reference_id,omitempty"` // order number or PO number
	Note           string         `json:"note,omitempty" bson:"note,omitempty" validate:"max=1000"`
	CreatedBy      string         `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt      time.Time      `json:"created_at" bson:"created_at"`
}

func (m *StockMovement) IsInbound() bool {
	return m.QuantityChange > 0
}

func (m *StockMovement) IsOutbound() bool {
	return m.QuantityChange < 0
}

type AdjustStockRequest struct {
	QuantityChange int    `json:"quantity_change" binding:"required"`
	Reason         string `json:"reason" binding:"required,oneof=PURCHASE SALE RETURN RESERVATION RELEASE ADJUSTMENT DAMAGE"`
	Note           string `json:"note" binding:"max=1000"`
}
