package models

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Variant represents a purchasable SKU-level unit of a Product, e.g. a
// specific size. Variants are embedded in their product document.
type Variant struct {
	SKU           string            `json:"sku" bson:"sku" validate:"required,min=3,max=50"`
	Attributes    map[string]string `json:"attributes,omitempty" bson:"attributes,omitempty"` // e.g. {"size": "M"}
	PriceOverride *float64          `json:"price_override,omitempty" bson:"price_override,omitempty" validate:"omitempty,gte=0"`
	WeightKg      float64           `json:"weight_kg" bson:"weight_kg" validate:"gte=0"`
	IsActive      bool              `json:"is_active" bson:"is_active"`
	CreatedAt     time.Time         `json:"created_at" bson:"created_at"`
}

// Product represents a catalog product with its embedded variants
type Product struct {
	ID               bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Name             string        `json:"name" bson:"name" validate:"required,min=2,max=400"`
	Slug             string        `json:"slug" bson:"slug" validate:"required"`
	Category         string        `json:"category" bson:"category" validate:"required,min=2,max=100"`
	Brand            string        `json:"brand" bson:"brand" validate:"max=100"`
	Description      string        `json:"description" bson:"description" validate:"max=5000"`
	ShortDescription string        `json:"short_description" bson:"short_description" validate:"max=500"`
	BasePrice        float64       `json:"base_price" bson:"base_price" validate:"required,gt=0"`
	SalePrice        *float64      `json:"sale_price,omitempty" bson:"sale_price,omitempty" validate:"omitempty,gte=0"`
	Variants         []Variant     `json:"variants" bson:"variants" validate:"required,min=1,dive"`
	Images           []string      `json:"images,omitempty" bson:"images,omitempty" validate:"dive,url"`
	IsActive         bool          `json:"is_active" bson:"is_active"`
	IsFeatured       bool          `json:"is_featured" bson:"is_featured"`
	IsNewArrival     bool          `json:"is_new_arrival" bson:"is_new_arrival"`
	CreatedAt        time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" bson:"updated_at"`
}

// EffectivePrice returns the product-level price: the sale price when one
// is set below the base price, otherwise the base price.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice != nil && *p.SalePrice < p.BasePrice {
		return clampPrice(*p.SalePrice)
	}
	return clampPrice(p.BasePrice)
}

// IsOnSale reports whether the product currently has a discounted price
func (p *Product) IsOnSale() bool {
	return p.SalePrice != nil && *p.SalePrice < p.BasePrice
}

// EffectivePrice returns the price actually charged for this variant:
// the variant override when set, otherwise the product's effective price.
func (v *Variant) EffectivePrice(p *Product) float64 {
	if v.PriceOverride != nil {
		return clampPrice(*v.PriceOverride)
	}
	return p.EffectivePrice()
}

func clampPrice(price float64) float64 {
	if price < 0 {
		return 0
	}
	return price
}

// FindVariant returns the embedded variant with the given SKU, or nil
func (p *Product) FindVariant(sku string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].SKU == sku {
			return &p.Variants[i]
		}
	}
	return nil
}

func (p *Product) SetTimestamps() {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a product name into a URL-safe slug
func Slugify(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

type CreateProductRequest struct {
	Name             string    `json:"name" binding:"required,min=2,max=400"`
	Category         string    `json:"category" binding:"required,min=2,max=100"`
	Brand            string    `json:"brand" binding:"max=100"`
	Description      string    `json:"description" binding:"max=5000"`
	ShortDescription string    `json:"short_description" binding:"max=500"`
	BasePrice        float64   `json:"base_price" binding:"required,gt=0"`
	SalePrice        *float64  `json:"sale_price" binding:"omitempty,gte=0"`
	Variants         []Variant `json:"variants" binding:"required,min=1,dive"`
	Images           []string  `json:"images" binding:"omitempty,dive,url"`
	IsFeatured       bool      `json:"is_featured"`
	IsNewArrival     bool      `json:"is_new_arrival"`
}

func (req *CreateProductRequest) ToProduct() *Product {
	now := time.Now()
	product := &Product{
		ID:               bson.NewObjectID(),
		Name:             req.Name,
		Slug:             Slugify(req.Name),
		Category:         req.Category,
		Brand:            req.Brand,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		BasePrice:        req.BasePrice,
		SalePrice:        req.SalePrice,
		Variants:         req.Variants,
		Images:           req.Images,
		IsActive:         true,
		IsFeatured:       req.IsFeatured,
		IsNewArrival:     req.IsNewArrival,
	}
	for i := range product.Variants {
		product.Variants[i].IsActive = true
		product.Variants[i].CreatedAt = now
	}
	product.SetTimestamps()
	return product
}
