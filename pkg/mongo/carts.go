package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/inslanka/shop-api/pkg/models"
)

// GetOrCreateCart returns the user's cart, creating an empty one on first
// use. Every user has exactly one cart; the unique index on user_id keeps
// concurrent first requests from creating two.
func GetOrCreateCart(ctx context.Context, userID bson.ObjectID) (*models.Cart, error) {
	now := time.Now()
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var cart models.Cart
	err := GetCollection("carts").FindOneAndUpdate(
		ctx,
		bson.M{"user_id": userID},
		bson.M{"$setOnInsert": bson.M{
			"user_id":    userID,
			"items":      []models.CartItem{},
			"created_at": now,
			"updated_at": now,
		}},
		opts,
	).Decode(&cart)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem upserts a line: if the SKU is already in the cart its
// quantity is incremented, otherwise a new line is appended.
func AddCartItem(ctx context.Context, userID bson.ObjectID, sku string, quantity int) (*models.Cart, error) {
	if _, err := GetProductByVariantSKU(ctx, sku); err != nil {
		return nil, err
	}
	if _, err := GetOrCreateCart(ctx, userID); err != nil {
		return nil, err
	}

	collection := GetCollection("carts")
	now := time.Now()

	// Try incrementing an existing line first
	result, err := collection.UpdateOne(
		ctx,
		bson.M{"user_id": userID, "items.sku": sku},
		bson.M{
			"$inc": bson.M{"items.$.quantity": quantity},
			"$set": bson.M{"updated_at": now},
		},
	)
	if err != nil {
		return nil, err
	}

	if result.MatchedCount == 0 {
		_, err = collection.UpdateOne(
			ctx,
			bson.M{"user_id": userID},
			bson.M{
				"$push": bson.M{"items": models.CartItem{SKU: sku, Quantity: quantity, AddedAt: now}},
				"$set":  bson.M{"updated_at": now},
			},
		)
		if err != nil {
			return nil, err
		}
	}

	return getCartByUser(ctx, userID)
}

// UpdateCartItem sets the quantity of an existing line; a quantity of
// zero (or less) deletes the line. Referencing a SKU that is not in the
// cart is an error.
func UpdateCartItem(ctx context.Context, userID bson.ObjectID, sku string, quantity int) (*models.Cart, error) {
	collection := GetCollection("carts")
	now := time.Now()

	var result *mongo.UpdateResult
	var err error
	if quantity <= 0 {
		result, err = collection.UpdateOne(
			ctx,
			bson.M{"user_id": userID, "items.sku": sku},
			bson.M{
				"$pull": bson.M{"items": bson.M{"sku": sku}},
				"$set":  bson.M{"updated_at": now},
			},
		)
	} else {
		result, err = collection.UpdateOne(
			ctx,
			bson.M{"user_id": userID, "items.sku": sku},
			bson.M{
				"$set": bson.M{"items.$.quantity": quantity, "updated_at": now},
			},
		)
	}
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrCartItemNotFound
	}

	return getCartByUser(ctx, userID)
}

// RemoveCartItem deletes a line unconditionally; removing an absent SKU
// is a no-op.
func RemoveCartItem(ctx context.Context, userID bson.ObjectID, sku string) (*models.Cart, error) {
	_, err := GetCollection("carts").UpdateOne(
		ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"sku": sku}},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return nil, err
	}
	return getCartByUser(ctx, userID)
}

// ClearCartItems empties the cart; the cart document itself persists
func ClearCartItems(ctx context.Context, userID bson.ObjectID) error {
	_, err := GetCollection("carts").UpdateOne(
		ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$set": bson.M{"items": []models.CartItem{}, "updated_at": time.Now()},
		},
	)
	return err
}

func getCartByUser(ctx context.Context, userID bson.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := GetCollection("carts").FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetCartView loads the cart and decorates it with live pricing from the
// current catalog. Prices here are display-only: checkout resolves and
// freezes them again inside the transaction.
func GetCartView(ctx context.Context, userID bson.ObjectID) (*models.CartView, error) {
	cart, err := GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &models.CartView{ID: cart.ID, Items: []models.CartItemView{}}
	if len(cart.Items) == 0 {
		return view, nil
	}

	skus := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		skus = append(skus, item.SKU)
	}
	products, err := GetProductsByVariantSKUs(ctx, skus)
	if err != nil {
		return nil, err
	}

	for _, item := range cart.Items {
		product, ok := products[item.SKU]
		if !ok {
			// variant removed from catalog after it was carted
			continue
		}
		variant := product.FindVariant(item.SKU)
		if variant == nil {
			continue
		}
		unitPrice := variant.EffectivePrice(product)
		lineTotal := unitPrice * float64(item.Quantity)
		view.Items = append(view.Items, models.CartItemView{
			SKU:         item.SKU,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
			LineTotal:   lineTotal,
		})
		view.Total += lineTotal
		view.ItemCount += item.Quantity
	}
	return view, nil
}
