// Package checkout holds the cart-to-order conversion core. Everything
// here is pure computation over already-loaded documents; the surrounding
// MongoDB transaction lives in pkg/mongo.
package checkout

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/inslanka/shop-api/pkg/models"
)

// Line is one cart line with its price frozen at quote time. The same
// frozen UnitPrice feeds both the order subtotal and the order item, so
// a catalog change mid-checkout can never split the two.
type Line struct {
	ProductID   bson.ObjectID
	SKU         string
	ProductName string
	Quantity    int
	UnitPrice   float64
}

func (l Line) Total() float64 {
	return float64(l.Quantity) * l.UnitPrice
}

// Quote is the fully priced result of a checkout attempt, computed at a
// single instant before anything is written.
type Quote struct {
	Lines         []Line
	Subtotal      float64
	DiscountTotal float64
	ShippingCost  float64
	GrandTotal    float64
	CouponCode    string
}

// BuildQuote freezes prices for every cart line and computes the order
// totals. products and stocks are keyed by variant SKU. coupon may be nil.
//
// Fails without side effects when the cart is empty, a line references an
// unknown or inactive variant, any line exceeds available stock, or the
// coupon does not validate. The caller re-enforces the stock check with a
// guarded decrement inside the transaction; this check exists so a doomed
// checkout aborts before the session starts.
func BuildQuote(
	cart *models.Cart,
	products map[string]*models.Product,
	stocks map[string]*models.Stock,
	shippingCost float64,
	coupon *models.Coupon,
	now time.Time,
) (*Quote, error) {
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	quote := &Quote{ShippingCost: shippingCost}
	for _, item := range cart.Items {
		product, ok := products[item.SKU]
		if !ok {
			return nil, &VariantNotFoundError{SKU: item.SKU}
		}
		variant := product.FindVariant(item.SKU)
		if variant == nil || !variant.IsActive || !product.IsActive {
			return nil, &VariantNotFoundError{SKU: item.SKU}
		}

		stock, ok := stocks[item.SKU]
		if !ok || stock.Available() < item.Quantity {
			available := 0
			if ok {
				available = stock.Available()
			}
			return nil, &InsufficientStockError{
				SKU:       item.SKU,
				Requested: item.Quantity,
				Available: available,
			}
		}

		line := Line{
			ProductID:   product.ID,
			SKU:         item.SKU,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   variant.EffectivePrice(product),
		}
		quote.Lines = append(quote.Lines, line)
		quote.Subtotal += line.Total()
	}

	if coupon != nil {
		if valid, reason := coupon.IsValid(now); !valid {
			return nil, &InvalidCouponError{Code: coupon.Code, Reason: reason}
		}
		if quote.Subtotal < coupon.MinimumOrderAmount {
			return nil, &InvalidCouponError{Code: coupon.Code, Reason: "Order subtotal is below the coupon minimum"}
		}
		quote.DiscountTotal, quote.ShippingCost = coupon.Discount(quote.Subtotal, quote.ShippingCost)
		quote.CouponCode = coupon.Code
	}

	quote.GrandTotal = quote.Subtotal - quote.DiscountTotal + quote.ShippingCost
	return quote, nil
}

// TotalWeight sums variant weights across the cart for shipping-rate
// lookups. Lines whose variant is missing contribute nothing; BuildQuote
// rejects them anyway.
func TotalWeight(cart *models.Cart, products map[string]*models.Product) float64 {
	var weight float64
	for _, item := range cart.Items {
		product, ok := products[item.SKU]
		if !ok {
			continue
		}
		if variant := product.FindVariant(item.SKU); variant != nil {
			weight += variant.WeightKg * float64(item.Quantity)
		}
	}
	return weight
}

// AssembleOrder builds the immutable order document from a quote. Every
// line becomes one order item carrying the frozen snapshot and unit price.
func AssembleOrder(
	quote *Quote,
	userID bson.ObjectID,
	orderNumber string,
	req *models.CheckoutRequest,
	now time.Time,
) *models.Order {
	items := make([]models.OrderItem, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		items = append(items, models.OrderItem{
			ProductID:  line.ProductID,
			VariantSKU: line.SKU,
			Snapshot:   models.ProductSnapshot{Name: line.ProductName, SKU: line.SKU},
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.Total(),
		})
	}

	shippingMethod := req.ShippingMethodID
	if shippingMethod == "" {
		shippingMethod = "standard"
	}

	return &models.Order{
		ID:              bson.NewObjectID(),
		OrderNumber:     orderNumber,
		UserID:          userID,
		Status:          models.OrderPending,
		ShippingAddress: req.ShippingAddress,
		ShippingMethod:  shippingMethod,
		ShippingCost:    quote.ShippingCost,
		Subtotal:        quote.Subtotal,
		DiscountTotal:   quote.DiscountTotal,
		GrandTotal:      quote.GrandTotal,
		CouponCode:      quote.CouponCode,
		Items:           items,
		StatusHistory: []models.StatusChange{
			{Status: models.OrderPending, Note: "Order placed", CreatedAt: now},
		},
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
