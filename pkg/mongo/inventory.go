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

func GetStockBySKU(ctx context.Context, sku string) (*models.Stock, error) {
	var stock models.Stock
	err := GetCollection("stock").FindOne(ctx, bson.M{"sku": sku}).Decode(&stock)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrStockNotFound
	}
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

func getStocksBySKUs(ctx context.Context, skus []string) (map[string]*models.Stock, error) {
	cursor, err := GetCollection("stock").Find(ctx, bson.M{"sku": bson.M{"$in": skus}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stocks []models.Stock
	if err := cursor.All(ctx, &stocks); err != nil {
		return nil, err
	}

	bySKU := make(map[string]*models.Stock, len(stocks))
	for i := range stocks {
		bySKU[stocks[i].SKU] = &stocks[i]
	}
	return bySKU, nil
}

func ListStock(ctx context.Context, page, limit int) ([]models.Stock, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "sku", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := GetCollection("stock").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stocks []models.Stock
	if err := cursor.All(ctx, &stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}

// EnsureStock creates or replaces the stock record for a variant SKU
func EnsureStock(ctx context.Context, sku string, quantity, lowStockThreshold int) (*models.Stock, error) {
	if _, err := GetProductByVariantSKU(ctx, sku); err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stock models.Stock
	err := GetCollection("stock").FindOneAndUpdate(
		ctx,
		bson.M{"sku": sku},
		bson.M{
			"$set": bson.M{
				"quantity":            quantity,
				"low_stock_threshold": lowStockThreshold,
				"updated_at":          time.Now(),
			},
			"$setOnInsert": bson.M{"reserved_quantity": 0},
		},
		opts,
	).Decode(&stock)
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// AdjustStock applies a signed quantity change and records the matching
// ledger movement. The guarded filter keeps the stored quantity from
// going negative even under concurrent adjustments.
func AdjustStock(ctx context.Context, sku string, change int, reason models.MovementReason, note, actor string) (*models.Stock, error) {
	filter := bson.M{"sku": sku}
	if change < 0 {
		filter["quantity"] = bson.M{"$gte": -change}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var stock models.Stock
	err := GetCollection("stock").FindOneAndUpdate(
		ctx,
		filter,
		bson.M{
			"$inc": bson.M{"quantity": change},
			"$set": bson.M{"updated_at": time.Now()},
		},
		opts,
	).Decode(&stock)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// distinguish a missing record from a rejected decrement
		if _, lookupErr := GetStockBySKU(ctx, sku); lookupErr != nil {
			return nil, lookupErr
		}
		return nil, ErrStockWouldGoNegative
	}
	if err != nil {
		return nil, err
	}

	if err := recordMovement(ctx, sku, change, reason, "", note, actor); err != nil {
		return nil, err
	}
	return &stock, nil
}

func recordMovement(ctx context.Context, sku string, change int, reason models.MovementReason, referenceID, note, actor string) error {
	movement := &models.StockMovement{
		SKU:            sku,
		QuantityChange: change,
		Reason:         reason,
		ReferenceID:    referenceID,
		Note:           note,
		CreatedBy:      actor,
		CreatedAt:      time.Now(),
	}
	if err := models.Validate(movement); err != nil {
		return err
	}
	_, err := GetCollection("stock_movements").InsertOne(ctx, movement)
	return err
}

func ListMovements(ctx context.Context, sku string, page, limit int) ([]models.StockMovement, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := bson.M{}
	if sku != "" {
		filter["sku"] = sku
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := GetCollection("stock_movements").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var movements []models.StockMovement
	if err := cursor.All(ctx, &movements); err != nil {
		return nil, err
	}
	return movements, nil
}
