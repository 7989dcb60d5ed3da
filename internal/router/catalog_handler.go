package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inslanka/shop-api/pkg/global"
	"github.com/inslanka/shop-api/pkg/models"
	"github.com/inslanka/shop-api/pkg/mongo"
	"github.com/inslanka/shop-api/pkg/redis"
)

func HealthCheck(c *gin.Context) {
	db := mongo.GetDatabase()
	if err := db.Client().Ping(c, nil); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Database connection failed", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "OK", "database": "Connected"}))
}

func GetAllProducts(c *gin.Context) {
	page, limit := pagination(c)
	filter := mongo.ProductFilter{
		Category:   c.Query("category"),
		Search:     c.Query("search"),
		Featured:   c.Query("featured") == "true",
		NewArrival: c.Query("new") == "true",
		Page:       page,
		Limit:      limit,
	}

	products, err := mongo.GetAllProducts(c.Request.Context(), filter)
	if err != nil {
		log.Printf("Error fetching products: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get products", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(products))
}

// GetProductBySlug retrieves a product by slug with Redis caching
func GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if len(slug) < 2 || len(slug) > 200 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid product slug", []global.ValidationError{
			{Field: "slug", Message: "Slug must be between 2 and 200 characters", Code: "invalid_format"},
		}))
		return
	}

	ctx := c.Request.Context()

	product, err := redis.GetProductFromCache(ctx, slug)
	if err == nil {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, global.SuccessResponse(product))
		return
	}

	product, err = mongo.GetProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
				{Field: "slug", Message: "No product exists with this slug", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error fetching product from MongoDB: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch product", nil))
		return
	}

	if cacheErr := redis.CacheProduct(ctx, product); cacheErr != nil {
		log.Printf("Warning: Failed to cache product in Redis: %v", cacheErr)
	}

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, global.SuccessResponse(product))
}

func CreateNewProducts(c *gin.Context) {
	var req []models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	if len(req) == 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("No products provided", []global.ValidationError{
			{Field: "products", Message: "At least one product is required", Code: "empty_array"},
		}))
		return
	}

	products := make([]*models.Product, len(req))
	for i, productReq := range req {
		products[i] = productReq.ToProduct()
	}

	created, err := mongo.CreateProducts(c.Request.Context(), products)
	if err != nil {
		log.Printf("Error creating products: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create products", nil))
		return
	}

	for _, p := range created {
		if cacheErr := redis.CacheProduct(c.Request.Context(), p); cacheErr != nil {
			log.Printf("Warning: Failed to cache product in Redis: %v", cacheErr)
		}
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(map[string]interface{}{
		"products": created,
		"count":    len(created),
	}))
}

// EditProductBySlug updates specific fields of a product by slug
func EditProductBySlug(c *gin.Context) {
	slug := c.Param("slug")
	ctx := c.Request.Context()

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid JSON format", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}

	// Immutable fields are stripped rather than rejected
	for _, field := range []string{"_id", "id", "slug", "created_at"} {
		if _, exists := updates[field]; exists {
			delete(updates, field)
			log.Printf("Warning: Removed immutable field '%s' from update request", field)
		}
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("No valid updates provided", []global.ValidationError{
			{Field: "body", Message: "Request body must contain at least one updatable field", Code: "empty_updates"},
		}))
		return
	}

	updated, err := mongo.UpdateProductBySlug(ctx, slug, updates)
	if err != nil {
		if errors.Is(err, mongo.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
				{Field: "slug", Message: "No product exists with this slug", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error updating product in MongoDB: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update product", nil))
		return
	}

	if cacheErr := redis.CacheProduct(ctx, updated); cacheErr != nil {
		log.Printf("Warning: Failed to update product cache in Redis: %v", cacheErr)
	}

	c.Header("X-Cache", "REFRESHED")
	c.JSON(http.StatusOK, global.SuccessResponse(updated))
}

// DeleteProductBySlug deletes a product from both database and cache
func DeleteProductBySlug(c *gin.Context) {
	slug := c.Param("slug")
	ctx := c.Request.Context()

	deleted, err := mongo.DeleteProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
				{Field: "slug", Message: "No product exists with this slug", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error deleting product from MongoDB: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to delete product", nil))
		return
	}

	if cacheErr := redis.RemoveProductFromCache(ctx, deleted); cacheErr != nil {
		log.Printf("Warning: Failed to remove product from Redis cache: %v", cacheErr)
	}

	c.Header("X-Cache", "DELETED")
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]interface{}{
		"deleted_product": deleted,
		"message":         "Product successfully deleted",
	}))
}

func GetAllCategories(c *gin.Context) {
	categories, err := mongo.GetAllCategories(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching categories: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get categories", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(categories))
}
