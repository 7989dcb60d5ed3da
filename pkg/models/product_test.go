package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

func TestProductEffectivePrice(t *testing.T) {
	tests := []struct {
		name      string
		basePrice float64
		salePrice *float64
		want      float64
	}{
		{"base price only", 3800, nil, 3800},
		{"sale price below base wins", 3800, floatPtr(2999), 2999},
		{"sale price above base ignored", 3800, floatPtr(4200), 3800},
		{"sale price equal to base ignored", 3800, floatPtr(3800), 3800},
		{"negative sale price clamped to zero", 3800, floatPtr(-100), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{BasePrice: tt.basePrice, SalePrice: tt.salePrice}
			assert.Equal(t, tt.want, p.EffectivePrice())
		})
	}
}

func TestVariantEffectivePrice(t *testing.T) {
	p := &Product{BasePrice: 3800, SalePrice: floatPtr(3500)}

	t.Run("override wins over sale price", func(t *testing.T) {
		v := &Variant{SKU: "CLK-M", PriceOverride: floatPtr(4100)}
		assert.Equal(t, 4100.0, v.EffectivePrice(p))
	})

	t.Run("falls back to product price", func(t *testing.T) {
		v := &Variant{SKU: "CLK-M"}
		assert.Equal(t, 3500.0, v.EffectivePrice(p))
	})

	t.Run("negative override clamped", func(t *testing.T) {
		v := &Variant{SKU: "CLK-M", PriceOverride: floatPtr(-50)}
		assert.Equal(t, 0.0, v.EffectivePrice(p))
	})
}

func TestFindVariant(t *testing.T) {
	p := &Product{
		Variants: []Variant{
			{SKU: "CLK-S"},
			{SKU: "CLK-M"},
		},
	}

	found := p.FindVariant("CLK-M")
	assert.NotNil(t, found)
	assert.Equal(t, "CLK-M", found.SKU)

	assert.Nil(t, p.FindVariant("CLK-XL"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "classic-linen-kurta", Slugify("Classic Linen Kurta"))
	assert.Equal(t, "batik-print-shirt-2024", Slugify("  Batik Print Shirt (2024)! "))
	assert.Equal(t, "a-b", Slugify("A---B"))
}

func TestToProductActivatesVariants(t *testing.T) {
	req := &CreateProductRequest{
		Name:      "Classic Linen Kurta",
		Category:  "Clothing",
		BasePrice: 3800,
		Variants:  []Variant{{SKU: "CLK-M"}, {SKU: "CLK-L"}},
	}

	p := req.ToProduct()
	assert.True(t, p.IsActive)
	assert.Equal(t, "classic-linen-kurta", p.Slug)
	for _, v := range p.Variants {
		assert.True(t, v.IsActive)
		assert.False(t, v.CreatedAt.IsZero())
	}
}
