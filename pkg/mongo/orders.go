package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/inslanka/shop-api/pkg/checkout"
	"github.com/inslanka/shop-api/pkg/global"
	"github.com/inslanka/shop-api/pkg/models"
)

// nextOrderSequence atomically increments and returns the per-day order
// counter. Two concurrent checkouts on the same day can never observe the
// same value, which makes the generated order numbers collision-free
// without retry loops.
func nextOrderSequence(ctx context.Context, day time.Time) (int64, error) {
	counterID := fmt.Sprintf("orders-%s", day.Format("20060102"))

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := GetCollection("counters").FindOneAndUpdate(
		ctx,
		bson.M{"_id": counterID},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// resolveShipping returns the shipping cost and method name for the
// request. An empty or "standard" method id falls back to the flat
// default rate; anything else must name an active method whose zone
// covers the destination district, priced base_rate + per_kg_rate*weight.
func resolveShipping(ctx context.Context, req *models.CheckoutRequest, cart *models.Cart, products map[string]*models.Product) (float64, string, error) {
	if req.ShippingMethodID == "" || req.ShippingMethodID == "standard" {
		return models.DefaultShippingCost, "standard", nil
	}

	method, err := GetShippingMethod(ctx, req.ShippingMethodID)
	if err != nil {
		return 0, "", err
	}
	zone, err := getShippingZone(ctx, method.ZoneID)
	if err != nil {
		return 0, "", err
	}
	if !zone.IsActive || !zone.Covers(req.ShippingAddress.District) {
		return 0, "", ErrZoneNotServed
	}

	weight := checkout.TotalWeight(cart, products)
	return method.Rate(weight), method.Name, nil
}

// Checkout converts the user's cart into an order inside a single
// MongoDB transaction. Either the order exists, stock is decremented,
// the movements and coupon usage are recorded and the cart is empty, or
// none of it happened.
func Checkout(ctx context.Context, userID bson.ObjectID, req *models.CheckoutRequest) (*models.Order, error) {
	session, err := GetMongoClient().StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(ctx context.Context) (interface{}, error) {
		return checkoutTxn(ctx, userID, req)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Order), nil
}

func checkoutTxn(ctx context.Context, userID bson.ObjectID, req *models.CheckoutRequest) (*models.Order, error) {
	cart, err := getCartByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, checkout.ErrEmptyCart
	}

	skus := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		skus = append(skus, item.SKU)
	}
	products, err := GetProductsByVariantSKUs(ctx, skus)
	if err != nil {
		return nil, err
	}
	stocks, err := getStocksBySKUs(ctx, skus)
	if err != nil {
		return nil, err
	}

	shippingCost, methodName, err := resolveShipping(ctx, req, cart, products)
	if err != nil {
		return nil, err
	}

	var coupon *models.Coupon
	if req.CouponCode != "" {
		coupon, err = GetCouponByCode(ctx, req.CouponCode)
		if errors.Is(err, ErrCouponNotFound) {
			return nil, &checkout.InvalidCouponError{Code: req.CouponCode, Reason: "Coupon code not found"}
		}
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	quote, err := checkout.BuildQuote(cart, products, stocks, shippingCost, coupon, now)
	if err != nil {
		return nil, err
	}

	seq, err := nextOrderSequence(ctx, now)
	if err != nil {
		return nil, err
	}
	orderNumber := models.FormatOrderNumber(global.GetOrderPrefix(), now, seq)

	// Guarded decrement per line: available >= quantity or the whole
	// transaction aborts. The quote already checked availability, but
	// only this write is authoritative under concurrency.
	stockColl := GetCollection("stock")
	for _, line := range quote.Lines {
		res, err := stockColl.UpdateOne(
			ctx,
			bson.M{
				"sku": line.SKU,
				"$expr": bson.M{"$gte": bson.A{
					bson.M{"$subtract": bson.A{"$quantity", "$reserved_quantity"}},
					line.Quantity,
				}},
			},
			bson.M{
				"$inc": bson.M{"quantity": -line.Quantity},
				"$set": bson.M{"updated_at": now},
			},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			available := 0
			if stock, ok := stocks[line.SKU]; ok {
				available = stock.Available()
			}
			return nil, &checkout.InsufficientStockError{
				SKU:       line.SKU,
				Requested: line.Quantity,
				Available: available,
			}
		}

		if err := recordMovement(ctx, line.SKU, -line.Quantity, models.MovementSale, orderNumber, "", userID.Hex()); err != nil {
			return nil, err
		}
	}

	if coupon != nil {
		if err := redeemCoupon(ctx, coupon); err != nil {
			return nil, err
		}
	}

	req.ShippingMethodID = methodName
	order := checkout.AssembleOrder(quote, userID, orderNumber, req, now)
	if err := models.Validate(order); err != nil {
		return nil, err
	}
	if _, err := GetCollection("orders").InsertOne(ctx, order); err != nil {
		return nil, err
	}

	if err := ClearCartItems(ctx, userID); err != nil {
		return nil, err
	}
	return order, nil
}

func ListOrdersForUser(ctx context.Context, userID bson.ObjectID, page, limit int) ([]models.Order, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := GetCollection("orders").Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := GetCollection("orders").FindOne(ctx, bson.M{"order_number": orderNumber}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderForUser fetches an order only when the user owns it
func GetOrderForUser(ctx context.Context, userID bson.ObjectID, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := GetCollection("orders").FindOne(ctx, bson.M{
		"order_number": orderNumber,
		"user_id":      userID,
	}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus applies a lifecycle transition and appends it to the
// order's status history. Transitions outside the allowed lifecycle are
// rejected.
func UpdateOrderStatus(ctx context.Context, orderNumber string, newStatus models.OrderStatus, note, changedBy, trackingNumber string) (*models.Order, error) {
	order, err := GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(newStatus) {
		return nil, &models.InvalidTransitionError{From: order.Status, To: newStatus}
	}

	now := time.Now()
	set := bson.M{"status": newStatus, "updated_at": now}
	if trackingNumber != "" {
		set["tracking_number"] = trackingNumber
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Order
	err = GetCollection("orders").FindOneAndUpdate(
		ctx,
		// re-check the current status so a concurrent transition cannot
		// slip an invalid hop through
		bson.M{"order_number": orderNumber, "status": order.Status},
		bson.M{
			"$set": set,
			"$push": bson.M{"status_history": models.StatusChange{
				Status:    newStatus,
				Note:      note,
				ChangedBy: changedBy,
				CreatedAt: now,
			}},
		},
		opts,
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &models.InvalidTransitionError{From: order.Status, To: newStatus}
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// CancelOrder is the customer-facing cancellation: the order must belong
// to the user and still be cancellable. Sold stock is returned to the
// shelf in the same transaction that flips the status.
func CancelOrder(ctx context.Context, userID bson.ObjectID, orderNumber, note string) (*models.Order, error) {
	session, err := GetMongoClient().StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(ctx context.Context) (interface{}, error) {
		order, err := GetOrderForUser(ctx, userID, orderNumber)
		if err != nil {
			return nil, err
		}
		if !order.CanBeCancelled() {
			return nil, ErrNotCancellable
		}

		updated, err := UpdateOrderStatus(ctx, orderNumber, models.OrderCancelled, note, userID.Hex(), "")
		if err != nil {
			return nil, err
		}

		for _, item := range order.Items {
			if _, err := AdjustStock(ctx, item.VariantSKU, item.Quantity, models.MovementReturn, "order cancelled", userID.Hex()); err != nil {
				// stock record may have been removed since purchase
				if errors.Is(err, ErrStockNotFound) {
					continue
				}
				return nil, err
			}
		}
		return updated, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Order), nil
}
