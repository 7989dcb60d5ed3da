package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Review represents a customer review for a product
type Review struct {
	ID               bson.ObjectID `json:"id" bson:"_id,omitempty"`
	ProductID        bson.ObjectID `json:"product_id" bson:"product_id" validate:"required"`
	UserID           bson.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	OrderNumber      string        `json:"order_number,omitempty" bson:"order_number,omitempty"`
	Rating           int           `json:"rating" bson:"rating" validate:"required,gte=1,lte=5"`
	Title            string        `json:"title" bson:"title" validate:"required,min=2,max=200"`
	Comment          string        `json:"comment,omitempty" bson:"comment,omitempty" validate:"max=2000"`
	VerifiedPurchase bool          `json:"verified_purchase" bson:"verified_purchase"`
	HelpfulCount     int           `json:"helpful_count" bson:"helpful_count" validate:"gte=0"`
	CreatedAt        time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" bson:"updated_at"`
}

func (r *Review) SetTimestamps() {
	now := time.Now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
}

// IsPositive checks if the review is positive (4-5 stars)
func (r *Review) IsPositive() bool {
	return r.Rating >= 4
}

type CreateReviewRequest struct {
	Rating      int    `json:"rating" binding:"required,gte=1,lte=5"`
	Title       string `json:"title" binding:"required,min=2,max=200"`
	Comment     string `json:"comment" binding:"max=2000"`
	OrderNumber string `json:"order_number"`
}
