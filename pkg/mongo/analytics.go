package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/inslanka/shop-api/pkg/models"
)

type SalesBucket struct {
	Period     string  `json:"period" bson:"_id"`
	OrderCount int     `json:"order_count" bson:"order_count"`
	Revenue    float64 `json:"revenue" bson:"revenue"`
	AvgOrder   float64 `json:"avg_order_value" bson:"avg_order_value"`
	ItemsSold  int     `json:"items_sold" bson:"items_sold"`
}

type SalesAnalyticsResult struct {
	Buckets      []SalesBucket `json:"buckets"`
	TotalRevenue float64       `json:"total_revenue"`
	TotalOrders  int           `json:"total_orders"`
}

var dateFormats = map[string]string{
	"day":   "%Y-%m-%d",
	"week":  "%Y-W%V",
	"month": "%Y-%m",
}

// GetSalesAnalytics aggregates revenue over orders that were not
// cancelled or refunded, bucketed by day, week or month.
func GetSalesAnalytics(ctx context.Context, start, end time.Time, groupBy string) (*SalesAnalyticsResult, error) {
	format, ok := dateFormats[groupBy]
	if !ok {
		format = dateFormats["day"]
	}

	pipeline := bson.A{
		bson.D{
			{Key: "$match", Value: bson.D{
				{Key: "created_at", Value: bson.D{
					{Key: "$gte", Value: start},
					{Key: "$lte", Value: end},
				}},
				{Key: "status", Value: bson.D{
					{Key: "$nin", Value: bson.A{models.OrderCancelled, models.OrderRefunded}},
				}},
			}},
		},
		bson.D{
			{Key: "$addFields", Value: bson.D{
				{Key: "items_count", Value: bson.D{{Key: "$sum", Value: "$items.quantity"}}},
			}},
		},
		bson.D{
			{Key: "$group", Value: bson.D{
				{Key: "_id", Value: bson.D{
					{Key: "$dateToString", Value: bson.D{
						{Key: "format", Value: format},
						{Key: "date", Value: "$created_at"},
					}},
				}},
				{Key: "order_count", Value: bson.D{{Key: "$sum", Value: 1}}},
				{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$grand_total"}}},
				{Key: "avg_order_value", Value: bson.D{{Key: "$avg", Value: "$grand_total"}}},
				{Key: "items_sold", Value: bson.D{{Key: "$sum", Value: "$items_count"}}},
			}},
		},
		bson.D{
			{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}},
		},
	}

	cursor, err := GetCollection("orders").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var buckets []SalesBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}

	result := &SalesAnalyticsResult{Buckets: buckets}
	for _, bucket := range buckets {
		result.TotalRevenue += bucket.Revenue
		result.TotalOrders += bucket.OrderCount
	}
	return result, nil
}

type TopProduct struct {
	SKU       string  `json:"sku" bson:"_id"`
	Name      string  `json:"name" bson:"name"`
	UnitsSold int     `json:"units_sold" bson:"units_sold"`
	Revenue   float64 `json:"revenue" bson:"revenue"`
}

func GetTopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	pipeline := bson.A{
		bson.D{
			{Key: "$match", Value: bson.D{
				{Key: "status", Value: bson.D{
					{Key: "$nin", Value: bson.A{models.OrderCancelled, models.OrderRefunded}},
				}},
			}},
		},
		bson.D{{Key: "$unwind", Value: "$items"}},
		bson.D{
			{Key: "$group", Value: bson.D{
				{Key: "_id", Value: "$items.variant_sku"},
				{Key: "name", Value: bson.D{{Key: "$last", Value: "$items.product_snapshot.name"}}},
				{Key: "units_sold", Value: bson.D{{Key: "$sum", Value: "$items.quantity"}}},
				{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$items.total_price"}}},
			}},
		},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "units_sold", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
	}

	cursor, err := GetCollection("orders").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []TopProduct
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

type InventoryAnalyticsResult struct {
	TotalSKUs     int            `json:"total_skus"`
	TotalOnHand   int            `json:"total_on_hand"`
	TotalReserved int            `json:"total_reserved"`
	OutOfStock    int            `json:"out_of_stock"`
	LowStock      []models.Stock `json:"low_stock"`
}

// GetInventoryAnalytics summarises stock levels and lists SKUs at or
// below their low-stock threshold.
func GetInventoryAnalytics(ctx context.Context) (*InventoryAnalyticsResult, error) {
	pipeline := bson.A{
		bson.D{
			{Key: "$addFields", Value: bson.D{
				{Key: "available", Value: bson.D{
					{Key: "$max", Value: bson.A{
						0,
						bson.D{{Key: "$subtract", Value: bson.A{"$quantity", "$reserved_quantity"}}},
					}},
				}},
			}},
		},
		bson.D{
			{Key: "$group", Value: bson.D{
				{Key: "_id", Value: nil},
				{Key: "total_skus", Value: bson.D{{Key: "$sum", Value: 1}}},
				{Key: "total_on_hand", Value: bson.D{{Key: "$sum", Value: "$quantity"}}},
				{Key: "total_reserved", Value: bson.D{{Key: "$sum", Value: "$reserved_quantity"}}},
				{Key: "out_of_stock", Value: bson.D{
					{Key: "$sum", Value: bson.D{
						{Key: "$cond", Value: bson.A{
							bson.D{{Key: "$lte", Value: bson.A{"$available", 0}}}, 1, 0,
						}},
					}},
				}},
			}},
		},
	}

	cursor, err := GetCollection("stock").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var summary []struct {
		TotalSKUs     int `bson:"total_skus"`
		TotalOnHand   int `bson:"total_on_hand"`
		TotalReserved int `bson:"total_reserved"`
		OutOfStock    int `bson:"out_of_stock"`
	}
	if err := cursor.All(ctx, &summary); err != nil {
		return nil, err
	}

	result := &InventoryAnalyticsResult{LowStock: []models.Stock{}}
	if len(summary) > 0 {
		result.TotalSKUs = summary[0].TotalSKUs
		result.TotalOnHand = summary[0].TotalOnHand
		result.TotalReserved = summary[0].TotalReserved
		result.OutOfStock = summary[0].OutOfStock
	}

	lowCursor, err := GetCollection("stock").Find(ctx, bson.M{
		"$expr": bson.M{"$lte": bson.A{
			bson.M{"$max": bson.A{0, bson.M{"$subtract": bson.A{"$quantity", "$reserved_quantity"}}}},
			"$low_stock_threshold",
		}},
	})
	if err != nil {
		return nil, err
	}
	defer lowCursor.Close(ctx)

	if err := lowCursor.All(ctx, &result.LowStock); err != nil {
		return nil, err
	}
	return result, nil
}
