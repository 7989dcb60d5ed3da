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

// ProductFilter narrows product listings
type ProductFilter struct {
	Category   string
	Featured   bool
	NewArrival bool
	Search     string
	Page       int
	Limit      int
}

func CreateProducts(ctx context.Context, products []*models.Product) ([]*models.Product, error) {
	for _, product := range products {
		if err := models.Validate(product); err != nil {
			return nil, err
		}
	}

	docs := make([]interface{}, len(products))
	for i, product := range products {
		docs[i] = product
	}

	collection := GetCollection("products")
	if _, err := collection.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return products, nil
}

func GetAllProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := bson.M{"is_active": true}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Featured {
		query["is_featured"] = true
	}
	if filter.NewArrival {
		query["is_new_arrival"] = true
	}
	if filter.Search != "" {
		query["$text"] = bson.M{"$search": filter.Search}
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := GetCollection("products").Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := GetCollection("products").FindOne(ctx, bson.M{"slug": slug}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductByVariantSKU finds the product owning the given variant SKU
func GetProductByVariantSKU(ctx context.Context, sku string) (*models.Product, error) {
	var product models.Product
	err := GetCollection("products").FindOne(ctx, bson.M{"variants.sku": sku}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrVariantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductsByVariantSKUs loads the products owning the given variant
// SKUs and returns them keyed by SKU. SKUs with no owning product are
// simply absent from the map; callers decide whether that is an error.
func GetProductsByVariantSKUs(ctx context.Context, skus []string) (map[string]*models.Product, error) {
	cursor, err := GetCollection("products").Find(ctx, bson.M{"variants.sku": bson.M{"$in": skus}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	bySKU := make(map[string]*models.Product, len(skus))
	for i := range products {
		for _, variant := range products[i].Variants {
			bySKU[variant.SKU] = &products[i]
		}
	}
	return bySKU, nil
}

func UpdateProductBySlug(ctx context.Context, slug string, updates map[string]interface{}) (*models.Product, error) {
	updates["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	err := GetCollection("products").FindOneAndUpdate(
		ctx,
		bson.M{"slug": slug},
		bson.M{"$set": updates},
		opts,
	).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func DeleteProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := GetCollection("products").FindOneAndDelete(ctx, bson.M{"slug": slug}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func GetAllCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := GetCollection("products").Distinct(ctx, "category", bson.M{"is_active": true}).Decode(&categories)
	if err != nil {
		return nil, err
	}
	return categories, nil
}
