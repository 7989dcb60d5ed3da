package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/inslanka/shop-api/pkg/models"
)

const productCacheTTL = 24 * time.Hour

// CacheProduct stores a product under its slug and maps every variant
// SKU back to the slug so lookups by either key hit the cache.
func CacheProduct(ctx context.Context, product *models.Product) error {
	client := RedisClient()
	defer client.Close()

	productJSON, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product %s: %w", product.Slug, err)
	}

	pipe := client.TxPipeline()

	productKey := fmt.Sprintf("product:%s", product.Slug)
	pipe.Set(ctx, productKey, productJSON, productCacheTTL)

	for _, variant := range product.Variants {
		skuKey := fmt.Sprintf("sku:%s", variant.SKU)
		pipe.Set(ctx, skuKey, product.Slug, productCacheTTL)
	}

	categoryKey := fmt.Sprintf("category:%s", product.Category)
	pipe.LPush(ctx, categoryKey, product.Slug)
	pipe.Expire(ctx, categoryKey, productCacheTTL)

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to execute Redis pipeline for product %s: %w", product.Slug, err)
	}
	return nil
}

func GetProductFromCache(ctx context.Context, slug string) (*models.Product, error) {
	client := RedisClient()
	defer client.Close()

	productKey := fmt.Sprintf("product:%s", slug)
	productJSON, err := client.Get(ctx, productKey).Result()
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal([]byte(productJSON), &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}
	return &product, nil
}

func GetProductBySKUFromCache(ctx context.Context, sku string) (*models.Product, error) {
	client := RedisClient()
	defer client.Close()

	skuKey := fmt.Sprintf("sku:%s", sku)
	slug, err := client.Get(ctx, skuKey).Result()
	if err != nil {
		return nil, err
	}
	return GetProductFromCache(ctx, slug)
}

// RemoveProductFromCache drops a product and its SKU mappings
func RemoveProductFromCache(ctx context.Context, product *models.Product) error {
	client := RedisClient()
	defer client.Close()

	pipe := client.TxPipeline()

	pipe.Del(ctx, fmt.Sprintf("product:%s", product.Slug))
	for _, variant := range product.Variants {
		pipe.Del(ctx, fmt.Sprintf("sku:%s", variant.SKU))
	}
	pipe.LRem(ctx, fmt.Sprintf("category:%s", product.Category), 0, product.Slug)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove product from Redis cache: %w", err)
	}
	return nil
}
