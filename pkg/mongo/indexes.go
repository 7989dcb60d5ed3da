package mongo

import (
	"log"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/inslanka/shop-api/pkg/global"
)

type IndexConfig struct {
	CollectionName string
	IndexModel     mongo.IndexModel
}

var requiredIndexes = []IndexConfig{
	// Users
	{
		CollectionName: "users",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_user_email_unique"),
		},
	},

	// Products: variant SKUs are globally unique across products
	{
		CollectionName: "products",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "variants.sku", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_variant_sku_unique"),
		},
	},
	{
		CollectionName: "products",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_product_slug_unique"),
		},
	},
	{
		CollectionName: "products",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "is_active", Value: 1},
			},
			Options: options.Index().SetName("idx_category_active"),
		},
	},
	// Full-text product search
	{
		CollectionName: "products",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "description", Value: "text"},
			},
			Options: options.Index().
				SetName("idx_product_text_search").
				SetWeights(bson.D{
					{Key: "name", Value: 10},
					{Key: "description", Value: 1},
				}),
		},
	},

	// Carts: one cart per user
	{
		CollectionName: "carts",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_cart_user_unique"),
		},
	},

	// Orders: order numbers must never collide, even under concurrent
	// checkouts. The per-day counter makes collisions impossible in the
	// normal path; this index is the backstop.
	{
		CollectionName: "orders",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "order_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_order_number_unique"),
		},
	},
	{
		CollectionName: "orders",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "status", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_user_orders"),
		},
	},

	// Inventory
	{
		CollectionName: "stock",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_stock_sku_unique"),
		},
	},
	{
		CollectionName: "stock_movements",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "sku", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_movement_sku_history"),
		},
	},

	// Promotions
	{
		CollectionName: "coupons",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_coupon_code_unique"),
		},
	},

	{
		CollectionName: "flash_sales",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "is_active", Value: 1},
				{Key: "ends_at", Value: -1},
			},
			Options: options.Index().SetName("idx_live_flash_sales"),
		},
	},

	// Shipping
	{
		CollectionName: "shipping_zones",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "districts", Value: 1}},
			Options: options.Index().SetName("idx_zone_districts"),
		},
	},
	{
		CollectionName: "shipping_methods",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "zone_id", Value: 1}},
			Options: options.Index().SetName("idx_methods_by_zone"),
		},
	},

	// Reviews
	{
		CollectionName: "reviews",
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "product_id", Value: 1}},
			Options: options.Index().SetName("idx_product_reviews"),
		},
	},
	{
		CollectionName: "reviews",
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "product_id", Value: 1},
				{Key: "user_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("idx_one_review_per_user"),
		},
	},
}

func EnsureIndexes() error {
	log.Println("Starting index creation...")

	for _, idxConfig := range requiredIndexes {
		collection := GetCollection(idxConfig.CollectionName)
		ctx, cancel := global.GetDefaultTimer()

		indexName, err := collection.Indexes().CreateOne(ctx, idxConfig.IndexModel)
		cancel()
		if err != nil {
			log.Printf("Error creating index on collection %s: %v",
				idxConfig.CollectionName, err)
			return err
		}

		log.Printf("✓ Created index '%s' on collection '%s'", indexName, idxConfig.CollectionName)
	}

	log.Println("All indexes created successfully!")
	return nil
}

func EnsureIndexesOnStartup() {
	if err := EnsureIndexes(); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}
}
