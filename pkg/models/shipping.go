package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ShippingZone groups destination districts served by the same methods
type ShippingZone struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string        `json:"name" bson:"name" validate:"required,max=200"`
	Districts []string      `json:"districts" bson:"districts" validate:"required,min=1"`
	IsActive  bool          `json:"is_active" bson:"is_active"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
}

// Covers reports whether the zone serves the given district
func (z *ShippingZone) Covers(district string) bool {
	for _, d := range z.Districts {
		if d == district {
			return true
		}
	}
	return false
}

// ShippingMethod is a carrier offering within a zone
type ShippingMethod struct {
	ID                bson.ObjectID `json:"id" bson:"_id,omitempty"`
	ZoneID            bson.ObjectID `json:"zone_id" bson:"zone_id" validate:"required"`
	Name              string        `json:"name" bson:"name" validate:"required,max=200"`
	Carrier           string        `json:"carrier" bson:"carrier" validate:"max=200"`
	BaseRate          float64       `json:"base_rate" bson:"base_rate" validate:"gte=0"`
	PerKgRate         float64       `json:"per_kg_rate" bson:"per_kg_rate" validate:"gte=0"`
	EstimatedDaysMin  int           `json:"estimated_days_min" bson:"estimated_days_min" validate:"gte=0"`
	EstimatedDaysMax  int           `json:"estimated_days_max" bson:"estimated_days_max" validate:"gte=0"`
	IsActive          bool          `json:"is_active" bson:"is_active"`
	CreatedAt         time.Time     `json:"created_at" bson:"created_at"`
}

// Rate returns the shipping cost for the given package weight
func (m *ShippingMethod) Rate(weightKg float64) float64 {
	if weightKg < 0 {
		weightKg = 0
	}
	return m.BaseRate + m.PerKgRate*weightKg
}

// DefaultShippingCost is the flat rate charged when no shipping method is
// selected ("standard" delivery).
const DefaultShippingCost = 450.00
