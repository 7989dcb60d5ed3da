package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/inslanka/shop-api/pkg/models"
)

var quoteTime = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func testProduct(name string, basePrice float64, skus ...string) *models.Product {
	p := &models.Product{
		ID:        bson.NewObjectID(),
		Name:      name,
		BasePrice: basePrice,
		IsActive:  true,
	}
	for _, sku := range skus {
		p.Variants = append(p.Variants, models.Variant{SKU: sku, WeightKg: 0.5, IsActive: true})
	}
	return p
}

func testFixtures() (*models.Cart, map[string]*models.Product, map[string]*models.Stock) {
	kurta := testProduct("Classic Linen Kurta", 3800, "CLK-S", "CLK-M")
	shirt := testProduct("Batik Print Shirt", 3200, "BPS-S")

	cart := &models.Cart{
		Items: []models.CartItem{
			{SKU: "CLK-M", Quantity: 2},
			{SKU: "BPS-S", Quantity: 1},
		},
	}

	products := map[string]*models.Product{
		"CLK-M": kurta,
		"BPS-S": shirt,
	}
	stocks := map[string]*models.Stock{
		"CLK-M": {SKU: "CLK-M", Quantity: 10},
		"BPS-S": {SKU: "BPS-S", Quantity: 5},
	}
	return cart, products, stocks
}

func TestBuildQuoteTotals(t *testing.T) {
	cart, products, stocks := testFixtures()

	quote, err := BuildQuote(cart, products, stocks, models.DefaultShippingCost, nil, quoteTime)
	require.NoError(t, err)

	require.Len(t, quote.Lines, 2)
	assert.Equal(t, 10800.0, quote.Subtotal)
	assert.Equal(t, 0.0, quote.DiscountTotal)
	assert.Equal(t, 450.0, quote.ShippingCost)
	assert.Equal(t, 11250.0, quote.GrandTotal)

	assert.Equal(t, "CLK-M", quote.Lines[0].SKU)
	assert.Equal(t, 3800.0, quote.Lines[0].UnitPrice)
	assert.Equal(t, 7600.0, quote.Lines[0].Total())
	assert.Equal(t, "BPS-S", quote.Lines[1].SKU)
	assert.Equal(t, 3200.0, quote.Lines[1].UnitPrice)
}

func TestBuildQuoteEmptyCart(t *testing.T) {
	_, products, stocks := testFixtures()

	_, err := BuildQuote(&models.Cart{}, products, stocks, 450, nil, quoteTime)
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = BuildQuote(nil, products, stocks, 450, nil, quoteTime)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestBuildQuoteUnknownVariant(t *testing.T) {
	cart, products, stocks := testFixtures()
	cart.Items = append(cart.Items, models.CartItem{SKU: "NOPE-1", Quantity: 1})

	_, err := BuildQuote(cart, products, stocks, 450, nil, quoteTime)

	var variantErr *VariantNotFoundError
	require.ErrorAs(t, err, &variantErr)
	assert.Equal(t, "NOPE-1", variantErr.SKU)
}

func TestBuildQuoteInactiveVariant(t *testing.T) {
	cart, products, stocks := testFixtures()
	products["CLK-M"].Variants[1].IsActive = false

	_, err := BuildQuote(cart, products, stocks, 450, nil, quoteTime)

	var variantErr *VariantNotFoundError
	require.ErrorAs(t, err, &variantErr)
	assert.Equal(t, "CLK-M", variantErr.SKU)
}

func TestBuildQuoteInsufficientStock(t *testing.T) {
	cart, products, stocks := testFixtures()
	stocks["CLK-M"].Quantity = 1

	_, err := BuildQuote(cart, products, stocks, 450, nil, quoteTime)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "CLK-M", stockErr.SKU)
	assert.Equal(t, 2, stockErr.Requested)
	assert.Equal(t, 1, stockErr.Available)
}

func TestBuildQuoteReservedStockCounts(t *testing.T) {
	cart, products, stocks := testFixtures()
	stocks["CLK-M"].ReservedQuantity = 9 // leaves 1 available against a request of 2

	_, err := BuildQuote(cart, products, stocks, 450, nil, quoteTime)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 1, stockErr.Available)
}

func TestBuildQuoteWithCoupon(t *testing.T) {
	cart, products, stocks := testFixtures()
	coupon := &models.Coupon{
		Code:      "SAVE10",
		Type:      models.CouponPercentage,
		Value:     10,
		IsActive:  true,
		ValidFrom: quoteTime.Add(-time.Hour),
	}

	quote, err := BuildQuote(cart, products, stocks, 450, coupon, quoteTime)
	require.NoError(t, err)

	assert.Equal(t, 10800.0, quote.Subtotal)
	assert.Equal(t, 1080.0, quote.DiscountTotal)
	assert.Equal(t, 450.0, quote.ShippingCost)
	assert.Equal(t, 10170.0, quote.GrandTotal)
	assert.Equal(t, "SAVE10", quote.CouponCode)
}

func TestBuildQuoteFreeShippingCoupon(t *testing.T) {
	cart, products, stocks := testFixtures()
	coupon := &models.Coupon{
		Code:      "SHIPFREE",
		Type:      models.CouponFreeShipping,
		IsActive:  true,
		ValidFrom: quoteTime.Add(-time.Hour),
	}

	quote, err := BuildQuote(cart, products, stocks, 450, coupon, quoteTime)
	require.NoError(t, err)

	assert.Equal(t, 0.0, quote.ShippingCost)
	assert.Equal(t, 10800.0, quote.GrandTotal)
}

func TestBuildQuoteInvalidCoupon(t *testing.T) {
	cart, products, stocks := testFixtures()
	coupon := &models.Coupon{
		Code:      "OLD",
		Type:      models.CouponPercentage,
		Value:     10,
		IsActive:  false,
		ValidFrom: quoteTime.Add(-time.Hour),
	}

	_, err := BuildQuote(cart, products, stocks, 450, coupon, quoteTime)

	var couponErr *InvalidCouponError
	require.ErrorAs(t, err, &couponErr)
	assert.Equal(t, "Coupon is not active", couponErr.Reason)
}

func TestBuildQuoteCouponBelowMinimum(t *testing.T) {
	cart, products, stocks := testFixtures()
	coupon := &models.Coupon{
		Code:               "BIG",
		Type:               models.CouponFixedAmount,
		Value:              1000,
		MinimumOrderAmount: 20000,
		IsActive:           true,
		ValidFrom:          quoteTime.Add(-time.Hour),
	}

	_, err := BuildQuote(cart, products, stocks, 450, coupon, quoteTime)

	var couponErr *InvalidCouponError
	require.ErrorAs(t, err, &couponErr)
	assert.Equal(t, "Order subtotal is below the coupon minimum", couponErr.Reason)
}

func TestBuildQuoteFreezesPrice(t *testing.T) {
	cart, products, stocks := testFixtures()

	quote, err := BuildQuote(cart, products, stocks, 450, nil, quoteTime)
	require.NoError(t, err)

	// A catalog price change after the quote must not reach the lines
	products["CLK-M"].BasePrice = 9999
	assert.Equal(t, 3800.0, quote.Lines[0].UnitPrice)
	assert.Equal(t, 10800.0, quote.Subtotal)
}

func TestTotalWeight(t *testing.T) {
	cart, products, _ := testFixtures()
	// 2 x 0.5kg + 1 x 0.5kg
	assert.Equal(t, 1.5, TotalWeight(cart, products))
}

func TestAssembleOrder(t *testing.T) {
	cart, products, stocks := testFixtures()

	quote, err := BuildQuote(cart, products, stocks, 450, nil, quoteTime)
	require.NoError(t, err)

	userID := bson.NewObjectID()
	req := &models.CheckoutRequest{
		ShippingAddress: models.Address{
			FullName: "Nimal Perera",
			Phone:    "0771234567",
			Line1:    "12 Galle Road",
			City:     "Colombo",
			District: "Colombo",
		},
		Notes: "Leave at the gate",
	}

	order := AssembleOrder(quote, userID, "ISL-20250901-0007", req, quoteTime)

	assert.Equal(t, "ISL-20250901-0007", order.OrderNumber)
	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, "standard", order.ShippingMethod)
	assert.Equal(t, 10800.0, order.Subtotal)
	assert.Equal(t, 450.0, order.ShippingCost)
	assert.Equal(t, 11250.0, order.GrandTotal)
	assert.Equal(t, "Colombo", order.ShippingAddress.District)
	assert.Equal(t, "Leave at the gate", order.Notes)

	require.Len(t, order.Items, 2)
	assert.Equal(t, "Classic Linen Kurta", order.Items[0].Snapshot.Name)
	assert.Equal(t, "CLK-M", order.Items[0].VariantSKU)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 7600.0, order.Items[0].TotalPrice)

	require.Len(t, order.StatusHistory, 1)
	assert.Equal(t, models.OrderPending, order.StatusHistory[0].Status)
	assert.Equal(t, "Order placed", order.StatusHistory[0].Note)
}
